// Package testutil provides in-memory collaborators for payment usecase
// tests. The attempt store implements the same conditional-update contract
// as the persistent repository so concurrency tests exercise real CAS
// semantics.
package testutil

import (
	"context"
	"strings"
	"sync"

	"lunaspay/internal/domain/merchant"
	"lunaspay/internal/domain/payment"
	vo "lunaspay/internal/domain/payment/valueobjects"
)

// AttemptStore is a mutex-guarded in-memory payment.AttemptRepository.
type AttemptStore struct {
	mu       sync.Mutex
	attempts map[string]*payment.Attempt
	nextID   uint

	CreateErr error
	GetErr    error
	ListErr   error
	UpdateErr error
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{attempts: make(map[string]*payment.Attempt)}
}

func (s *AttemptStore) Create(ctx context.Context, attempt *payment.Attempt) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	attempt.SetID(s.nextID)
	s.attempts[attempt.AttemptID()] = clone(attempt)
	return nil
}

func (s *AttemptStore) GetByAttemptID(ctx context.Context, attemptID string) (*payment.Attempt, error) {
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[attemptID]
	if !ok {
		return nil, nil
	}
	return clone(a), nil
}

func (s *AttemptStore) ListByWalletRef(ctx context.Context, walletRef string) ([]*payment.Attempt, error) {
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*payment.Attempt
	for _, a := range s.attempts {
		if a.WalletRef() == walletRef {
			out = append(out, clone(a))
		}
	}
	return out, nil
}

func (s *AttemptStore) UpdateStatusIf(ctx context.Context, attemptID string, expected, next vo.AttemptStatus, update payment.StatusUpdate) (bool, error) {
	if s.UpdateErr != nil {
		return false, s.UpdateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[attemptID]
	if !ok || a.Status() != expected {
		return false, nil
	}
	s.attempts[attemptID] = payment.ReconstructAttempt(
		a.ID(), a.AttemptID(), a.WalletRef(), next,
		a.Amount(), a.ServiceFee(), a.TotalAmount(), a.Merchant(),
		pick(update.CounterpartyTxRef, a.CounterpartyTxRef()),
		pick(update.GatewayRef, a.GatewayRef()),
		pick(update.FailureReason, a.FailureReason()),
		a.Version()+1, a.CreatedAt(), a.UpdatedAt(),
		pick(update.CompletedAt, a.CompletedAt()),
	)
	return true, nil
}

func clone(a *payment.Attempt) *payment.Attempt {
	return payment.ReconstructAttempt(
		a.ID(), a.AttemptID(), a.WalletRef(), a.Status(),
		a.Amount(), a.ServiceFee(), a.TotalAmount(), a.Merchant(),
		a.CounterpartyTxRef(), a.GatewayRef(), a.FailureReason(),
		a.Version(), a.CreatedAt(), a.UpdatedAt(), a.CompletedAt(),
	)
}

func pick[T any](update, current *T) *T {
	if update != nil {
		return update
	}
	return current
}

// RegistrationStore is a mutex-guarded in-memory merchant.RegistrationRepository.
type RegistrationStore struct {
	mu            sync.Mutex
	registrations []*merchant.Registration
	nextID        uint

	FindErr error
}

func NewRegistrationStore() *RegistrationStore {
	return &RegistrationStore{}
}

func (s *RegistrationStore) Create(ctx context.Context, reg *merchant.Registration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	reg.SetID(s.nextID)
	s.registrations = append(s.registrations, reg)
	return nil
}

func (s *RegistrationStore) Update(ctx context.Context, reg *merchant.Registration) error {
	return nil
}

func (s *RegistrationStore) GetByRegistrationID(ctx context.Context, registrationID string) (*merchant.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.registrations {
		if r.RegistrationID() == registrationID {
			return r, nil
		}
	}
	return nil, nil
}

func (s *RegistrationStore) FindActiveByNMID(ctx context.Context, nmid string) (*merchant.Registration, error) {
	if s.FindErr != nil {
		return nil, s.FindErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.registrations {
		if r.IsActive() && r.NMID() == nmid {
			return r, nil
		}
	}
	return nil, nil
}

func (s *RegistrationStore) FindActiveByNameContains(ctx context.Context, name string) (*merchant.Registration, error) {
	if s.FindErr != nil {
		return nil, s.FindErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.registrations {
		if r.IsActive() && namesOverlap(r.MerchantName(), name) {
			return r, nil
		}
	}
	return nil, nil
}

func (s *RegistrationStore) ListActive(ctx context.Context) ([]*merchant.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*merchant.Registration
	for _, r := range s.registrations {
		if r.IsActive() {
			out = append(out, r)
		}
	}
	return out, nil
}

func namesOverlap(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la == "" || lb == "" {
		return false
	}
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}
