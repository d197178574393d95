package usecases

import (
	"context"

	"lunaspay/internal/domain/merchant"
	"lunaspay/internal/shared/errors"
	"lunaspay/internal/shared/logger"
)

// SetMerchantStatusUseCase activates or deactivates a settlement mapping.
// Deactivated registrations are invisible to merchant resolution but keep
// their history.
type SetMerchantStatusUseCase struct {
	registrationRepo merchant.RegistrationRepository
	logger           logger.Interface
}

func NewSetMerchantStatusUseCase(
	registrationRepo merchant.RegistrationRepository,
	logger logger.Interface,
) *SetMerchantStatusUseCase {
	return &SetMerchantStatusUseCase{
		registrationRepo: registrationRepo,
		logger:           logger,
	}
}

func (uc *SetMerchantStatusUseCase) Execute(ctx context.Context, registrationID string, active bool) (*merchant.Registration, error) {
	if registrationID == "" {
		return nil, errors.NewValidationError("registration id is required")
	}

	registration, err := uc.registrationRepo.GetByRegistrationID(ctx, registrationID)
	if err != nil {
		uc.logger.Errorw("failed to load merchant registration",
			"registration_id", registrationID, "error", err)
		return nil, errors.NewStorageError("failed to load merchant registration")
	}
	if registration == nil {
		return nil, errors.NewNotFoundError("merchant registration not found")
	}

	if active {
		registration.Activate()
	} else {
		registration.Deactivate()
	}

	if err := uc.registrationRepo.Update(ctx, registration); err != nil {
		uc.logger.Errorw("failed to update merchant registration",
			"registration_id", registrationID, "error", err)
		return nil, errors.NewStorageError("failed to update merchant registration")
	}

	return registration, nil
}
