package handlers

import (
	"context"

	bridgeusecases "lunaspay/internal/application/bridge/usecases"
	merchantusecases "lunaspay/internal/application/merchant/usecases"
	paymentusecases "lunaspay/internal/application/payment/usecases"
	qrusecases "lunaspay/internal/application/qr/usecases"
	"lunaspay/internal/domain/merchant"
	"lunaspay/internal/domain/payment"
)

// Use case interfaces consumed by the handlers. Kept narrow so tests can
// substitute them without standing up repositories.

type decodeQRUseCase interface {
	Execute(cmd qrusecases.DecodeQRCommand) *qrusecases.DecodeQRResult
}

type createPaymentUseCase interface {
	Execute(ctx context.Context, cmd paymentusecases.CreatePaymentCommand) (*paymentusecases.CreatePaymentResult, error)
}

type confirmPaymentUseCase interface {
	Execute(ctx context.Context, cmd paymentusecases.ConfirmPaymentCommand) (*paymentusecases.ConfirmPaymentResult, error)
}

type getPaymentUseCase interface {
	Execute(ctx context.Context, attemptID string) (*payment.Attempt, error)
}

type listPaymentsUseCase interface {
	Execute(ctx context.Context, q paymentusecases.ListPaymentsQuery) ([]*payment.Attempt, error)
}

type submitBridgeRequestUseCase interface {
	Execute(ctx context.Context, cmd bridgeusecases.BuildBridgeRequestCommand) (*bridgeusecases.SubmitBridgeRequestResult, error)
}

type registerMerchantUseCase interface {
	Execute(ctx context.Context, cmd merchantusecases.RegisterMerchantCommand) (*merchant.Registration, error)
}

type listMerchantsUseCase interface {
	Execute(ctx context.Context) ([]*merchant.Registration, error)
}

type setMerchantStatusUseCase interface {
	Execute(ctx context.Context, registrationID string, active bool) (*merchant.Registration, error)
}
