package usecases

import (
	"context"

	"lunaspay/internal/domain/payment"
	"lunaspay/internal/shared/errors"
	"lunaspay/internal/shared/id"
)

// GetPaymentUseCase looks up a single payment attempt by its public ID.
type GetPaymentUseCase struct {
	attemptRepo payment.AttemptRepository
}

func NewGetPaymentUseCase(attemptRepo payment.AttemptRepository) *GetPaymentUseCase {
	return &GetPaymentUseCase{attemptRepo: attemptRepo}
}

func (uc *GetPaymentUseCase) Execute(ctx context.Context, attemptID string) (*payment.Attempt, error) {
	if attemptID == "" {
		return nil, errors.NewValidationError("attempt id is required")
	}
	if !id.HasPrefix(attemptID, id.PrefixPayment) {
		return nil, errors.NewValidationError("malformed attempt id")
	}

	attempt, err := uc.attemptRepo.GetByAttemptID(ctx, attemptID)
	if err != nil {
		return nil, errors.NewStorageError("failed to load payment attempt")
	}
	if attempt == nil {
		return nil, errors.NewNotFoundError("payment attempt not found")
	}
	return attempt, nil
}
