package payment

import (
	"context"
	"time"

	vo "lunaspay/internal/domain/payment/valueobjects"
)

// StatusUpdate carries the fields written together with a status transition.
// Status, completion time and references move as one unit or not at all.
type StatusUpdate struct {
	CounterpartyTxRef *string
	GatewayRef        *string
	FailureReason     *string
	CompletedAt       *time.Time
}

// AttemptRepository persists payment attempts. UpdateStatusIf is the
// compare-and-swap primitive the lifecycle's concurrency guarantee relies
// on: it must be a single conditional update, never a read-then-write pair.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *Attempt) error
	GetByAttemptID(ctx context.Context, attemptID string) (*Attempt, error)
	ListByWalletRef(ctx context.Context, walletRef string) ([]*Attempt, error)
	// UpdateStatusIf transitions the attempt from expected to next in one
	// conditional update and returns false when the expected status no
	// longer holds. Exactly one of two racing callers can win.
	UpdateStatusIf(ctx context.Context, attemptID string, expected, next vo.AttemptStatus, update StatusUpdate) (bool, error)
}
