package usecases

import (
	"context"
	"fmt"

	"lunaspay/internal/domain/merchant"
	"lunaspay/internal/shared/logger"
)

// ResolveMerchantUseCase maps a decoded merchant identifier to a registered
// settlement target. Lookup order is fixed: exact active NMID first, then
// case-insensitive name containment. First hit wins; results are never
// merged across the two paths.
type ResolveMerchantUseCase struct {
	registrationRepo merchant.RegistrationRepository
	logger           logger.Interface
}

func NewResolveMerchantUseCase(
	registrationRepo merchant.RegistrationRepository,
	logger logger.Interface,
) *ResolveMerchantUseCase {
	return &ResolveMerchantUseCase{
		registrationRepo: registrationRepo,
		logger:           logger,
	}
}

// Execute returns the matching registration or nil when the merchant is not
// registered. The caller decides the fallback policy.
func (uc *ResolveMerchantUseCase) Execute(ctx context.Context, ident merchant.Identifier) (*merchant.Registration, error) {
	if ident.IsEmpty() {
		return nil, nil
	}

	if ident.NMID != "" {
		reg, err := uc.registrationRepo.FindActiveByNMID(ctx, ident.NMID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up merchant by nmid: %w", err)
		}
		if reg != nil {
			uc.logger.Debugw("merchant resolved by nmid", "nmid", ident.NMID, "registration_id", reg.RegistrationID())
			return reg, nil
		}
	}

	if ident.MerchantName != "" {
		reg, err := uc.registrationRepo.FindActiveByNameContains(ctx, ident.MerchantName)
		if err != nil {
			return nil, fmt.Errorf("failed to look up merchant by name: %w", err)
		}
		if reg != nil {
			uc.logger.Debugw("merchant resolved by name", "name", ident.MerchantName, "registration_id", reg.RegistrationID())
			return reg, nil
		}
	}

	uc.logger.Infow("merchant not registered", "nmid", ident.NMID, "name", ident.MerchantName)
	return nil, nil
}
