package models

import (
	"time"

	"lunaspay/internal/shared/constants"
)

// PaymentAttemptModel is the persistence model for payment attempts.
// Status transitions go through the repository's conditional update, so
// there is no optimistic-lock hook here; version is bumped in the same
// UPDATE that changes status.
type PaymentAttemptModel struct {
	ID        uint   `gorm:"primarykey"`
	AttemptID string `gorm:"uniqueIndex;not null;size:32"`
	WalletRef string `gorm:"not null;size:64;index:idx_wallet_ref"`
	Status    string `gorm:"not null;default:pending;size:20;index:idx_status"`

	Amount      int64  `gorm:"not null"`
	ServiceFee  int64  `gorm:"not null"`
	TotalAmount int64  `gorm:"not null"`
	Currency    string `gorm:"not null;size:3;default:IDR"`

	MerchantName string `gorm:"not null;size:100"`
	MerchantCity string `gorm:"size:100"`
	NMID         string `gorm:"column:nmid;size:32"`

	CounterpartyTxRef *string `gorm:"size:128"`
	GatewayRef        *string `gorm:"size:128"`
	FailureReason     *string `gorm:"size:255"`

	Version     int `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

// TableName specifies the table name for GORM
func (PaymentAttemptModel) TableName() string {
	return constants.TablePaymentAttempts
}
