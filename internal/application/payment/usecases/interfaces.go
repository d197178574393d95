package usecases

import (
	"context"

	"lunaspay/internal/domain/merchant"
)

// MerchantResolver matches a decoded QR identity against the registered
// merchant directory. A nil registration with a nil error means the
// merchant is not registered.
type MerchantResolver interface {
	Execute(ctx context.Context, ident merchant.Identifier) (*merchant.Registration, error)
}

// ConfirmLocker serializes confirmation of a single payment attempt across
// processes. Acquire returns false when another confirmation holds the lock.
type ConfirmLocker interface {
	Acquire(ctx context.Context, attemptID string) (bool, error)
	Release(ctx context.Context, attemptID string) error
}
