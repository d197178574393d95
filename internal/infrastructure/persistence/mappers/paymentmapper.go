package mappers

import (
	"fmt"

	"lunaspay/internal/domain/payment"
	vo "lunaspay/internal/domain/payment/valueobjects"
	"lunaspay/internal/infrastructure/persistence/models"
)

func PaymentAttemptToModel(a *payment.Attempt) *models.PaymentAttemptModel {
	return &models.PaymentAttemptModel{
		ID:                a.ID(),
		AttemptID:         a.AttemptID(),
		WalletRef:         a.WalletRef(),
		Status:            a.Status().String(),
		Amount:            a.Amount().Amount(),
		ServiceFee:        a.ServiceFee().Amount(),
		TotalAmount:       a.TotalAmount().Amount(),
		Currency:          a.Amount().Currency(),
		MerchantName:      a.Merchant().Name(),
		MerchantCity:      a.Merchant().City(),
		NMID:              a.Merchant().NMID(),
		CounterpartyTxRef: a.CounterpartyTxRef(),
		GatewayRef:        a.GatewayRef(),
		FailureReason:     a.FailureReason(),
		Version:           a.Version(),
		CreatedAt:         a.CreatedAt(),
		UpdatedAt:         a.UpdatedAt(),
		CompletedAt:       a.CompletedAt(),
	}
}

func PaymentAttemptToDomain(model *models.PaymentAttemptModel) (*payment.Attempt, error) {
	status := vo.AttemptStatus(model.Status)
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid attempt status: %s", model.Status)
	}

	return payment.ReconstructAttempt(
		model.ID,
		model.AttemptID,
		model.WalletRef,
		status,
		vo.NewMoney(model.Amount, model.Currency),
		vo.NewMoney(model.ServiceFee, model.Currency),
		vo.NewMoney(model.TotalAmount, model.Currency),
		vo.NewMerchantSnapshot(model.MerchantName, model.MerchantCity, model.NMID),
		model.CounterpartyTxRef,
		model.GatewayRef,
		model.FailureReason,
		model.Version,
		model.CreatedAt,
		model.UpdatedAt,
		model.CompletedAt,
	), nil
}
