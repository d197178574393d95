package usecases

import (
	"context"

	"lunaspay/internal/domain/payment"
	vo "lunaspay/internal/domain/payment/valueobjects"
	"lunaspay/internal/shared/errors"
	"lunaspay/internal/shared/logger"
)

// CreatePaymentUseCase records a new payment attempt from a decoded QR
// payload. It performs no external calls; disbursement happens at
// confirmation time.
type CreatePaymentUseCase struct {
	attemptRepo    payment.AttemptRepository
	feeBasisPoints int64
	logger         logger.Interface
}

func NewCreatePaymentUseCase(
	attemptRepo payment.AttemptRepository,
	feeBasisPoints int64,
	logger logger.Interface,
) *CreatePaymentUseCase {
	return &CreatePaymentUseCase{
		attemptRepo:    attemptRepo,
		feeBasisPoints: feeBasisPoints,
		logger:         logger,
	}
}

type CreatePaymentCommand struct {
	WalletRef    string
	Amount       int64
	MerchantName string
	MerchantCity string
	NMID         string
}

type CreatePaymentResult struct {
	Attempt *payment.Attempt
}

func (uc *CreatePaymentUseCase) Execute(ctx context.Context, cmd CreatePaymentCommand) (*CreatePaymentResult, error) {
	if cmd.Amount <= 0 {
		return nil, errors.NewValidationError("payment amount must be positive")
	}
	if cmd.MerchantName == "" {
		return nil, errors.NewValidationError("merchant name is required")
	}

	snapshot := vo.NewMerchantSnapshot(cmd.MerchantName, cmd.MerchantCity, cmd.NMID)
	attempt, err := payment.NewAttempt(cmd.WalletRef, vo.NewIDR(cmd.Amount), uc.feeBasisPoints, snapshot)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.attemptRepo.Create(ctx, attempt); err != nil {
		uc.logger.Errorw("failed to persist payment attempt",
			"wallet_ref", cmd.WalletRef,
			"error", err,
		)
		return nil, errors.NewStorageError("failed to create payment attempt")
	}

	uc.logger.Infow("payment attempt created",
		"attempt_id", attempt.AttemptID(),
		"wallet_ref", cmd.WalletRef,
		"amount", cmd.Amount,
		"total", attempt.TotalAmount().Amount(),
	)

	return &CreatePaymentResult{Attempt: attempt}, nil
}
