package usecases

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunaspay/internal/application/payment/testutil"
	vo "lunaspay/internal/domain/payment/valueobjects"
	"lunaspay/internal/shared/errors"
	"lunaspay/internal/shared/logger"
)

func quietLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestCreatePaymentUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("creates pending attempt with fee", func(t *testing.T) {
		store := testutil.NewAttemptStore()
		uc := NewCreatePaymentUseCase(store, 10, quietLogger())

		result, err := uc.Execute(ctx, CreatePaymentCommand{
			WalletRef:    "wallet_abc",
			Amount:       100000,
			MerchantName: "TOKO SANJAYA",
			MerchantCity: "JAKARTA",
			NMID:         "ID1234567890123",
		})
		require.NoError(t, err)
		require.NotNil(t, result)

		attempt := result.Attempt
		assert.Equal(t, vo.AttemptStatusPending, attempt.Status())
		assert.Equal(t, int64(100000), attempt.Amount().Amount())
		assert.Equal(t, int64(100), attempt.ServiceFee().Amount())
		assert.Equal(t, int64(100100), attempt.TotalAmount().Amount())
		assert.Equal(t, "TOKO SANJAYA", attempt.Merchant().Name())
		assert.NotZero(t, attempt.ID())

		stored, err := store.GetByAttemptID(ctx, attempt.AttemptID())
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, vo.AttemptStatusPending, stored.Status())
	})

	t.Run("fee rounds up to whole rupiah", func(t *testing.T) {
		store := testutil.NewAttemptStore()
		uc := NewCreatePaymentUseCase(store, 10, quietLogger())

		result, err := uc.Execute(ctx, CreatePaymentCommand{
			WalletRef:    "wallet_abc",
			Amount:       100001,
			MerchantName: "WARUNG MAKAN",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(101), result.Attempt.ServiceFee().Amount())
		assert.Equal(t, int64(100102), result.Attempt.TotalAmount().Amount())
	})

	t.Run("rejects non positive amount", func(t *testing.T) {
		store := testutil.NewAttemptStore()
		uc := NewCreatePaymentUseCase(store, 10, quietLogger())

		for _, amount := range []int64{0, -1, -100000} {
			_, err := uc.Execute(ctx, CreatePaymentCommand{
				WalletRef:    "wallet_abc",
				Amount:       amount,
				MerchantName: "TOKO SANJAYA",
			})
			assert.True(t, errors.IsValidationError(err), "amount %d", amount)
		}
	})

	t.Run("rejects missing merchant name", func(t *testing.T) {
		store := testutil.NewAttemptStore()
		uc := NewCreatePaymentUseCase(store, 10, quietLogger())

		_, err := uc.Execute(ctx, CreatePaymentCommand{
			WalletRef: "wallet_abc",
			Amount:    15000,
		})
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("maps persistence failure to storage error", func(t *testing.T) {
		store := testutil.NewAttemptStore()
		store.CreateErr = fmt.Errorf("connection refused")
		uc := NewCreatePaymentUseCase(store, 10, quietLogger())

		_, err := uc.Execute(ctx, CreatePaymentCommand{
			WalletRef:    "wallet_abc",
			Amount:       15000,
			MerchantName: "TOKO SANJAYA",
		})
		assert.True(t, errors.IsStorageError(err))
	})
}
