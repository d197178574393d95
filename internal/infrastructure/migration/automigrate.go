package migration

import (
	"lunaspay/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.MerchantRegistrationModel{},
		&models.PaymentAttemptModel{},
	}
}
