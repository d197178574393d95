package payment

import (
	"fmt"
	"time"

	vo "lunaspay/internal/domain/payment/valueobjects"
	"lunaspay/internal/shared/biztime"
	"lunaspay/internal/shared/id"
)

// DefaultServiceFeeBasisPoints is the 0.1% platform fee applied to every
// attempt, rounded up to a whole rupiah.
const DefaultServiceFeeBasisPoints = 10

// Attempt is a single payment attempt against a scanned QR code. The
// lifecycle manager is its only writer; the persistent store is a dumb
// collaborator.
type Attempt struct {
	id        uint
	attemptID string
	walletRef string
	status    vo.AttemptStatus

	amount      vo.Money
	serviceFee  vo.Money
	totalAmount vo.Money

	merchant vo.MerchantSnapshot

	counterpartyTxRef *string
	gatewayRef        *string
	failureReason     *string

	version     int
	createdAt   time.Time
	updatedAt   time.Time
	completedAt *time.Time
}

// NewAttempt creates a pending attempt. The service fee is computed here
// once and never recomputed; amount must be positive.
func NewAttempt(walletRef string, amount vo.Money, feeBasisPoints int64, merchant vo.MerchantSnapshot) (*Attempt, error) {
	if walletRef == "" {
		return nil, fmt.Errorf("wallet reference is required")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive")
	}
	if feeBasisPoints < 0 {
		return nil, fmt.Errorf("fee basis points must not be negative")
	}

	fee := amount.ServiceFee(feeBasisPoints)
	now := biztime.NowUTC()

	return &Attempt{
		attemptID:   id.MustGenerateWithPrefix(id.PrefixPayment, id.DefaultLength),
		walletRef:   walletRef,
		status:      vo.AttemptStatusPending,
		amount:      amount,
		serviceFee:  fee,
		totalAmount: amount.Add(fee),
		merchant:    merchant,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// BeginProcessing moves a pending attempt to processing and records the
// counterparty transaction reference supplied by the caller. Confirmation is
// deliberately not idempotent: a second call on a non-pending attempt is an
// error, not a no-op.
func (a *Attempt) BeginProcessing(counterpartyTxRef string) error {
	if !a.status.CanTransitionTo(vo.AttemptStatusProcessing) {
		return fmt.Errorf("cannot begin processing with status %s", a.status)
	}
	if counterpartyTxRef == "" {
		return fmt.Errorf("counterparty transaction reference is required")
	}

	a.status = vo.AttemptStatusProcessing
	a.counterpartyTxRef = &counterpartyTxRef
	a.updatedAt = biztime.NowUTC()
	a.version++

	return nil
}

// MarkSuccess completes a processing attempt. completedAt is set exactly
// once, here or in MarkFailed.
func (a *Attempt) MarkSuccess(gatewayRef string) error {
	if !a.status.CanTransitionTo(vo.AttemptStatusSuccess) {
		return fmt.Errorf("cannot mark success with status %s", a.status)
	}

	now := biztime.NowUTC()
	a.status = vo.AttemptStatusSuccess
	a.gatewayRef = &gatewayRef
	a.completedAt = &now
	a.updatedAt = now
	a.version++

	return nil
}

// MarkFailed terminates a processing attempt with a reason.
func (a *Attempt) MarkFailed(reason string) error {
	if !a.status.CanTransitionTo(vo.AttemptStatusFailed) {
		return fmt.Errorf("cannot mark failed with status %s", a.status)
	}

	now := biztime.NowUTC()
	a.status = vo.AttemptStatusFailed
	a.failureReason = &reason
	a.completedAt = &now
	a.updatedAt = now
	a.version++

	return nil
}

func (a *Attempt) ID() uint {
	return a.id
}

func (a *Attempt) AttemptID() string {
	return a.attemptID
}

func (a *Attempt) WalletRef() string {
	return a.walletRef
}

func (a *Attempt) Status() vo.AttemptStatus {
	return a.status
}

func (a *Attempt) Amount() vo.Money {
	return a.amount
}

func (a *Attempt) ServiceFee() vo.Money {
	return a.serviceFee
}

func (a *Attempt) TotalAmount() vo.Money {
	return a.totalAmount
}

func (a *Attempt) Merchant() vo.MerchantSnapshot {
	return a.merchant
}

func (a *Attempt) CounterpartyTxRef() *string {
	return a.counterpartyTxRef
}

func (a *Attempt) GatewayRef() *string {
	return a.gatewayRef
}

func (a *Attempt) FailureReason() *string {
	return a.failureReason
}

func (a *Attempt) Version() int {
	return a.version
}

func (a *Attempt) CreatedAt() time.Time {
	return a.createdAt
}

func (a *Attempt) UpdatedAt() time.Time {
	return a.updatedAt
}

func (a *Attempt) CompletedAt() *time.Time {
	return a.completedAt
}

// SetID sets the attempt ID after persistence (used by the repository after Create)
func (a *Attempt) SetID(dbID uint) {
	a.id = dbID
}

// ReconstructAttempt recreates an Attempt from persistence.
func ReconstructAttempt(
	dbID uint,
	attemptID string,
	walletRef string,
	status vo.AttemptStatus,
	amount, serviceFee, totalAmount vo.Money,
	merchant vo.MerchantSnapshot,
	counterpartyTxRef, gatewayRef, failureReason *string,
	version int,
	createdAt, updatedAt time.Time,
	completedAt *time.Time,
) *Attempt {
	return &Attempt{
		id:                dbID,
		attemptID:         attemptID,
		walletRef:         walletRef,
		status:            status,
		amount:            amount,
		serviceFee:        serviceFee,
		totalAmount:       totalAmount,
		merchant:          merchant,
		counterpartyTxRef: counterpartyTxRef,
		gatewayRef:        gatewayRef,
		failureReason:     failureReason,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
		completedAt:       completedAt,
	}
}
