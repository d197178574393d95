package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"lunaspay/internal/domain/merchant"
	"lunaspay/internal/infrastructure/persistence/mappers"
	"lunaspay/internal/infrastructure/persistence/models"
	"lunaspay/internal/shared/db"
)

type MerchantRegistrationRepository struct {
	db *gorm.DB
}

func NewMerchantRegistrationRepository(db *gorm.DB) *MerchantRegistrationRepository {
	return &MerchantRegistrationRepository{db: db}
}

func (r *MerchantRegistrationRepository) Create(ctx context.Context, reg *merchant.Registration) error {
	model := mappers.MerchantRegistrationToModel(reg)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create merchant registration: %w", err)
	}

	reg.SetID(model.ID)

	return nil
}

func (r *MerchantRegistrationRepository) Update(ctx context.Context, reg *merchant.Registration) error {
	model := mappers.MerchantRegistrationToModel(reg)

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.MerchantRegistrationModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"nmid":           model.NMID,
			"merchant_name":  model.MerchantName,
			"bank_code":      model.BankCode,
			"account_number": model.AccountNumber,
			"account_name":   model.AccountName,
			"description":    model.Description,
			"is_active":      model.IsActive,
			"updated_at":     model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update merchant registration: %w", result.Error)
	}

	return nil
}

func (r *MerchantRegistrationRepository) GetByRegistrationID(ctx context.Context, registrationID string) (*merchant.Registration, error) {
	var model models.MerchantRegistrationModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("registration_id = ?", registrationID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get merchant registration: %w", err)
	}

	return mappers.MerchantRegistrationToDomain(&model), nil
}

func (r *MerchantRegistrationRepository) FindActiveByNMID(ctx context.Context, nmid string) (*merchant.Registration, error) {
	if nmid == "" {
		return nil, nil
	}

	var model models.MerchantRegistrationModel

	if err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ActiveOnly()).
		Where("nmid = ?", nmid).
		Scopes(db.OldestFirst()).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find merchant by nmid: %w", err)
	}

	return mappers.MerchantRegistrationToDomain(&model), nil
}

// FindActiveByNameContains matches when either name contains the other,
// case-insensitively. The decoded-name-contains-registered-name direction
// cannot be expressed with a plain LIKE against a column; INSTR covers it
// and behaves the same on MySQL and SQLite.
func (r *MerchantRegistrationRepository) FindActiveByNameContains(ctx context.Context, name string) (*merchant.Registration, error) {
	if name == "" {
		return nil, nil
	}

	var model models.MerchantRegistrationModel

	pattern := "%" + name + "%"
	if err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ActiveOnly()).
		Where("LOWER(merchant_name) LIKE LOWER(?) OR INSTR(LOWER(?), LOWER(merchant_name)) > 0", pattern, name).
		Scopes(db.OldestFirst()).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find merchant by name: %w", err)
	}

	return mappers.MerchantRegistrationToDomain(&model), nil
}

func (r *MerchantRegistrationRepository) ListActive(ctx context.Context) ([]*merchant.Registration, error) {
	var modelList []models.MerchantRegistrationModel

	if err := db.GetTxFromContext(ctx, r.db).
		Scopes(db.ActiveOnly(), db.OldestFirst()).
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list merchant registrations: %w", err)
	}

	registrations := make([]*merchant.Registration, 0, len(modelList))
	for i := range modelList {
		registrations = append(registrations, mappers.MerchantRegistrationToDomain(&modelList[i]))
	}

	return registrations, nil
}
