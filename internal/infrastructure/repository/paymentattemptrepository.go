package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"lunaspay/internal/domain/payment"
	vo "lunaspay/internal/domain/payment/valueobjects"
	"lunaspay/internal/infrastructure/persistence/mappers"
	"lunaspay/internal/infrastructure/persistence/models"
	"lunaspay/internal/shared/biztime"
	"lunaspay/internal/shared/db"
)

type PaymentAttemptRepository struct {
	db *gorm.DB
}

func NewPaymentAttemptRepository(db *gorm.DB) *PaymentAttemptRepository {
	return &PaymentAttemptRepository{db: db}
}

func (r *PaymentAttemptRepository) Create(ctx context.Context, a *payment.Attempt) error {
	model := mappers.PaymentAttemptToModel(a)

	if err := db.GetTxFromContext(ctx, r.db).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create payment attempt: %w", err)
	}

	// Write back the auto-generated ID to the domain object
	a.SetID(model.ID)

	return nil
}

func (r *PaymentAttemptRepository) GetByAttemptID(ctx context.Context, attemptID string) (*payment.Attempt, error) {
	var model models.PaymentAttemptModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("attempt_id = ?", attemptID).
		First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get payment attempt: %w", err)
	}

	return mappers.PaymentAttemptToDomain(&model)
}

func (r *PaymentAttemptRepository) ListByWalletRef(ctx context.Context, walletRef string) ([]*payment.Attempt, error) {
	var modelList []models.PaymentAttemptModel

	if err := db.GetTxFromContext(ctx, r.db).
		Where("wallet_ref = ?", walletRef).
		Order("created_at DESC").
		Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list payment attempts: %w", err)
	}

	attempts := make([]*payment.Attempt, 0, len(modelList))
	for i := range modelList {
		attempt, err := mappers.PaymentAttemptToDomain(&modelList[i])
		if err != nil {
			return nil, fmt.Errorf("failed to map payment attempt: %w", err)
		}
		attempts = append(attempts, attempt)
	}

	return attempts, nil
}

// UpdateStatusIf is the single-statement compare-and-swap the lifecycle
// depends on. The WHERE clause carries the expected status, so of any
// number of racing callers exactly one sees an affected row.
//
// RowsAffected is reliable here because the update always changes
// updated_at, so MySQL never reports a no-op write.
func (r *PaymentAttemptRepository) UpdateStatusIf(ctx context.Context, attemptID string, expected, next vo.AttemptStatus, update payment.StatusUpdate) (bool, error) {
	fields := map[string]interface{}{
		"status":     next.String(),
		"version":    gorm.Expr("version + 1"),
		"updated_at": biztime.NowUTC(),
	}
	if update.CounterpartyTxRef != nil {
		fields["counterparty_tx_ref"] = *update.CounterpartyTxRef
	}
	if update.GatewayRef != nil {
		fields["gateway_ref"] = *update.GatewayRef
	}
	if update.FailureReason != nil {
		fields["failure_reason"] = *update.FailureReason
	}
	if update.CompletedAt != nil {
		fields["completed_at"] = *update.CompletedAt
	}

	result := db.GetTxFromContext(ctx, r.db).
		Model(&models.PaymentAttemptModel{}).
		Where("attempt_id = ? AND status = ?", attemptID, expected.String()).
		Updates(fields)

	if result.Error != nil {
		return false, fmt.Errorf("failed to update attempt status: %w", result.Error)
	}

	return result.RowsAffected == 1, nil
}
