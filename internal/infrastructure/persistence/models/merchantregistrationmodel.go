package models

import (
	"time"

	"lunaspay/internal/shared/constants"
)

// MerchantRegistrationModel is the persistence model for merchant
// settlement mappings. This is the anti-corruption layer between domain
// and database.
type MerchantRegistrationModel struct {
	ID             uint   `gorm:"primarykey"`
	RegistrationID string `gorm:"uniqueIndex;not null;size:32"`
	// NULL when the merchant has no NMID; the unique index only bites on
	// real values, and empty-vs-NULL mapping lives in the mapper.
	NMID          *string `gorm:"column:nmid;uniqueIndex:uniq_nmid;size:32"`
	MerchantName  string  `gorm:"not null;size:100;index:idx_merchant_name"`
	BankCode      string  `gorm:"not null;size:10"`
	AccountNumber string  `gorm:"not null;size:32"`
	AccountName   string  `gorm:"not null;size:100"`
	Description   string  `gorm:"size:255"`
	IsActive      bool    `gorm:"default:true;index:idx_is_active"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName specifies the table name for GORM
func (MerchantRegistrationModel) TableName() string {
	return constants.TableMerchantRegistrations
}
