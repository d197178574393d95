package usecases

import (
	"context"

	"lunaspay/internal/domain/merchant"
	"lunaspay/internal/shared/errors"
)

// ListMerchantsUseCase lists the active settlement mappings.
type ListMerchantsUseCase struct {
	registrationRepo merchant.RegistrationRepository
}

func NewListMerchantsUseCase(registrationRepo merchant.RegistrationRepository) *ListMerchantsUseCase {
	return &ListMerchantsUseCase{registrationRepo: registrationRepo}
}

func (uc *ListMerchantsUseCase) Execute(ctx context.Context) ([]*merchant.Registration, error) {
	registrations, err := uc.registrationRepo.ListActive(ctx)
	if err != nil {
		return nil, errors.NewStorageError("failed to list merchant registrations")
	}
	return registrations, nil
}
