package mappers

import (
	"lunaspay/internal/domain/merchant"
	"lunaspay/internal/infrastructure/persistence/models"
)

func MerchantRegistrationToModel(r *merchant.Registration) *models.MerchantRegistrationModel {
	return &models.MerchantRegistrationModel{
		ID:             r.ID(),
		RegistrationID: r.RegistrationID(),
		NMID:           nmidToColumn(r.NMID()),
		MerchantName:   r.MerchantName(),
		BankCode:       r.BankCode(),
		AccountNumber:  r.AccountNumber(),
		AccountName:    r.AccountName(),
		Description:    r.Description(),
		IsActive:       r.IsActive(),
		CreatedAt:      r.CreatedAt(),
		UpdatedAt:      r.UpdatedAt(),
	}
}

func MerchantRegistrationToDomain(model *models.MerchantRegistrationModel) *merchant.Registration {
	return merchant.ReconstructRegistration(
		model.ID,
		model.RegistrationID,
		nmidFromColumn(model.NMID),
		model.MerchantName,
		model.BankCode,
		model.AccountNumber,
		model.AccountName,
		model.Description,
		model.IsActive,
		model.CreatedAt,
		model.UpdatedAt,
	)
}

// The nmid column is NULL for merchants without one so the unique index
// never collides on the absent value. The domain uses "" for absent.

func nmidToColumn(nmid string) *string {
	if nmid == "" {
		return nil
	}
	return &nmid
}

func nmidFromColumn(nmid *string) string {
	if nmid == nil {
		return ""
	}
	return *nmid
}
