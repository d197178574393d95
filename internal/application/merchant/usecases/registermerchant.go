package usecases

import (
	"context"

	"lunaspay/internal/domain/merchant"
	"lunaspay/internal/shared/errors"
	"lunaspay/internal/shared/logger"
)

// TransactionRunner executes a function within a storage transaction. The
// duplicate check and the insert must observe the same snapshot.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// RegisterMerchantUseCase creates a settlement mapping for a QRIS merchant.
type RegisterMerchantUseCase struct {
	registrationRepo merchant.RegistrationRepository
	tx               TransactionRunner
	logger           logger.Interface
}

func NewRegisterMerchantUseCase(
	registrationRepo merchant.RegistrationRepository,
	tx TransactionRunner,
	logger logger.Interface,
) *RegisterMerchantUseCase {
	return &RegisterMerchantUseCase{
		registrationRepo: registrationRepo,
		tx:               tx,
		logger:           logger,
	}
}

type RegisterMerchantCommand struct {
	NMID          string
	MerchantName  string
	BankCode      string
	AccountNumber string
	AccountName   string
	Description   string
}

func (uc *RegisterMerchantUseCase) Execute(ctx context.Context, cmd RegisterMerchantCommand) (*merchant.Registration, error) {
	registration, err := merchant.NewRegistration(cmd.NMID, cmd.MerchantName,
		cmd.BankCode, cmd.AccountNumber, cmd.AccountName)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Description != "" {
		registration.SetDescription(cmd.Description)
	}

	err = uc.tx.RunInTransaction(ctx, func(txCtx context.Context) error {
		if cmd.NMID != "" {
			existing, err := uc.registrationRepo.FindActiveByNMID(txCtx, cmd.NMID)
			if err != nil {
				uc.logger.Errorw("failed to check existing registration", "nmid", cmd.NMID, "error", err)
				return errors.NewStorageError("failed to check existing registration")
			}
			if existing != nil {
				return errors.NewConflictError("an active registration already exists for this NMID")
			}
		}

		if err := uc.registrationRepo.Create(txCtx, registration); err != nil {
			// Racing registrations can pass the pre-check together; the
			// unique index on nmid is the arbiter.
			if errors.IsDuplicateError(err) {
				return errors.NewConflictError("an active registration already exists for this NMID")
			}
			uc.logger.Errorw("failed to persist merchant registration",
				"merchant_name", cmd.MerchantName, "error", err)
			return errors.NewStorageError("failed to persist merchant registration")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Infow("merchant registered",
		"registration_id", registration.RegistrationID(),
		"nmid", registration.NMID())
	return registration, nil
}
