package usecases

import (
	"context"
	"time"

	"lunaspay/internal/domain/payment"
	"lunaspay/internal/shared/biztime"
	"lunaspay/internal/shared/errors"
)

// ListPaymentsUseCase returns the attempts recorded for a wallet, optionally
// narrowed to a single business day.
type ListPaymentsUseCase struct {
	attemptRepo payment.AttemptRepository
}

func NewListPaymentsUseCase(attemptRepo payment.AttemptRepository) *ListPaymentsUseCase {
	return &ListPaymentsUseCase{attemptRepo: attemptRepo}
}

type ListPaymentsQuery struct {
	WalletRef string
	// BusinessDate is an optional YYYY-MM-DD date in the business timezone.
	BusinessDate string
}

func (uc *ListPaymentsUseCase) Execute(ctx context.Context, q ListPaymentsQuery) ([]*payment.Attempt, error) {
	if q.WalletRef == "" {
		return nil, errors.NewValidationError("wallet reference is required")
	}

	var start, end time.Time
	if q.BusinessDate != "" {
		var err error
		start, err = biztime.ParseBusinessDate(q.BusinessDate)
		if err != nil {
			return nil, errors.NewValidationError("date must be in YYYY-MM-DD format")
		}
		// 36h past the day start lands inside the following business day
		// even when the zone shifts its offset.
		end = biztime.StartOfDayUTC(start.Add(36 * time.Hour))
	}

	attempts, err := uc.attemptRepo.ListByWalletRef(ctx, q.WalletRef)
	if err != nil {
		return nil, errors.NewStorageError("failed to list payment attempts")
	}
	if q.BusinessDate == "" {
		return attempts, nil
	}

	filtered := make([]*payment.Attempt, 0, len(attempts))
	for _, a := range attempts {
		created := a.CreatedAt()
		if !created.Before(start) && created.Before(end) {
			filtered = append(filtered, a)
		}
	}
	return filtered, nil
}
