package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConfirmLockStore serializes payment confirmation across processes with a
// SETNX-style key per attempt. The TTL bounds how long a crashed confirmer
// can block retries; correctness does not depend on the lock, the
// repository's conditional update does.
type ConfirmLockStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewConfirmLockStore creates a ConfirmLockStore. A typical prefix is
// "payment:confirm:" and a TTL of 30 seconds comfortably covers one
// disbursement round trip.
func NewConfirmLockStore(client *redis.Client, prefix string, ttl time.Duration) *ConfirmLockStore {
	return &ConfirmLockStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Acquire takes the lock for an attempt. Returns false without error when
// another holder has it.
func (s *ConfirmLockStore) Acquire(ctx context.Context, attemptID string) (bool, error) {
	if attemptID == "" {
		return false, errors.New("attempt id cannot be empty")
	}

	ok, err := s.client.SetNX(ctx, s.buildKey(attemptID), 1, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire confirm lock: %w", err)
	}

	return ok, nil
}

// Release frees the lock. Releasing a lock that already expired is not an
// error.
func (s *ConfirmLockStore) Release(ctx context.Context, attemptID string) error {
	if attemptID == "" {
		return errors.New("attempt id cannot be empty")
	}

	if err := s.client.Del(ctx, s.buildKey(attemptID)).Err(); err != nil {
		return fmt.Errorf("failed to release confirm lock: %w", err)
	}

	return nil
}

func (s *ConfirmLockStore) buildKey(attemptID string) string {
	return s.prefix + attemptID
}
