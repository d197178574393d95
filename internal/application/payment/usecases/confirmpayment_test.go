package usecases

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	merchantusecases "lunaspay/internal/application/merchant/usecases"
	"lunaspay/internal/application/payment/disbursement"
	"lunaspay/internal/application/payment/testutil"
	"lunaspay/internal/domain/merchant"
	"lunaspay/internal/domain/payment"
	vo "lunaspay/internal/domain/payment/valueobjects"
	"lunaspay/internal/shared/errors"
)

type mockGateway struct {
	mu      sync.Mutex
	calls   int
	lastReq disbursement.DisburseRequest

	resp *disbursement.DisburseResponse
	err  error
}

func (m *mockGateway) Disburse(ctx context.Context, req disbursement.DisburseRequest) (*disbursement.DisburseResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func (m *mockGateway) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

type mockLock struct {
	denyAcquire bool
	acquireErr  error
}

func (m *mockLock) Acquire(ctx context.Context, attemptID string) (bool, error) {
	if m.acquireErr != nil {
		return false, m.acquireErr
	}
	return !m.denyAcquire, nil
}

func (m *mockLock) Release(ctx context.Context, attemptID string) error {
	return nil
}

type confirmFixture struct {
	store    *testutil.AttemptStore
	registry *testutil.RegistrationStore
	gateway  *mockGateway
	lock     *mockLock
	uc       *ConfirmPaymentUseCase
}

func newConfirmFixture(t *testing.T, policy DisbursementPolicy) *confirmFixture {
	t.Helper()
	f := &confirmFixture{
		store:    testutil.NewAttemptStore(),
		registry: testutil.NewRegistrationStore(),
		gateway:  &mockGateway{resp: &disbursement.DisburseResponse{ID: "disb_123", Status: "COMPLETED"}},
		lock:     &mockLock{},
	}
	resolver := merchantusecases.NewResolveMerchantUseCase(f.registry, quietLogger())
	f.uc = NewConfirmPaymentUseCase(f.store, resolver, f.gateway, f.lock, policy, quietLogger())
	return f
}

func (f *confirmFixture) registerMerchant(t *testing.T, name, nmid string) {
	t.Helper()
	reg, err := merchant.NewRegistration(nmid, name, "014", "1234567890", name)
	require.NoError(t, err)
	require.NoError(t, f.registry.Create(context.Background(), reg))
}

func (f *confirmFixture) pendingAttempt(t *testing.T, amount int64, name, nmid string) *payment.Attempt {
	t.Helper()
	attempt, err := payment.NewAttempt("wallet_abc", vo.NewIDR(amount), 10,
		vo.NewMerchantSnapshot(name, "JAKARTA", nmid))
	require.NoError(t, err)
	require.NoError(t, f.store.Create(context.Background(), attempt))
	return attempt
}

func (f *confirmFixture) status(t *testing.T, attemptID string) *payment.Attempt {
	t.Helper()
	a, err := f.store.GetByAttemptID(context.Background(), attemptID)
	require.NoError(t, err)
	require.NotNil(t, a)
	return a
}

func TestConfirmPaymentUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("disburses and succeeds for registered merchant", func(t *testing.T) {
		f := newConfirmFixture(t, PolicyRequireMapping)
		f.registerMerchant(t, "TOKO SANJAYA", "ID1234567890123")
		attempt := f.pendingAttempt(t, 100000, "TOKO SANJAYA", "ID1234567890123")

		result, err := f.uc.Execute(ctx, ConfirmPaymentCommand{
			AttemptID:         attempt.AttemptID(),
			WalletRef:         "wallet_abc",
			CounterpartyTxRef: "0xabc123",
		})
		require.NoError(t, err)

		assert.Equal(t, vo.AttemptStatusSuccess, result.Attempt.Status())
		require.NotNil(t, result.Attempt.GatewayRef())
		assert.Equal(t, "disb_123", *result.Attempt.GatewayRef())
		require.NotNil(t, result.Attempt.CounterpartyTxRef())
		assert.Equal(t, "0xabc123", *result.Attempt.CounterpartyTxRef())
		assert.NotNil(t, result.Attempt.CompletedAt())

		assert.Equal(t, 1, f.gateway.callCount())
		assert.Equal(t, attempt.AttemptID(), f.gateway.lastReq.ExternalID)
		assert.Equal(t, int64(100000), f.gateway.lastReq.Amount)
		assert.Equal(t, "014", f.gateway.lastReq.BankCode)
	})

	t.Run("requires attempt id, wallet ref and tx ref", func(t *testing.T) {
		f := newConfirmFixture(t, PolicyRequireMapping)

		_, err := f.uc.Execute(ctx, ConfirmPaymentCommand{WalletRef: "wallet_abc", CounterpartyTxRef: "0xabc"})
		assert.True(t, errors.IsValidationError(err))

		_, err = f.uc.Execute(ctx, ConfirmPaymentCommand{AttemptID: "pay_x", CounterpartyTxRef: "0xabc"})
		assert.True(t, errors.IsValidationError(err))

		_, err = f.uc.Execute(ctx, ConfirmPaymentCommand{AttemptID: "pay_x", WalletRef: "wallet_abc"})
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("unknown attempt is not found", func(t *testing.T) {
		f := newConfirmFixture(t, PolicyRequireMapping)

		_, err := f.uc.Execute(ctx, ConfirmPaymentCommand{
			AttemptID:         "pay_missing",
			WalletRef:         "wallet_abc",
			CounterpartyTxRef: "0xabc",
		})
		assert.True(t, errors.IsNotFoundError(err))
	})

	t.Run("another wallet cannot confirm the attempt", func(t *testing.T) {
		f := newConfirmFixture(t, PolicyRequireMapping)
		f.registerMerchant(t, "TOKO SANJAYA", "ID1234567890123")
		attempt := f.pendingAttempt(t, 100000, "TOKO SANJAYA", "ID1234567890123")

		_, err := f.uc.Execute(ctx, ConfirmPaymentCommand{
			AttemptID:         attempt.AttemptID(),
			WalletRef:         "wallet_intruder",
			CounterpartyTxRef: "0xabc",
		})
		assert.True(t, errors.IsForbiddenError(err))
		assert.Equal(t, vo.AttemptStatusPending, f.status(t, attempt.AttemptID()).Status())
		assert.Equal(t, 0, f.gateway.callCount())
	})

	t.Run("second confirmation conflicts instead of repeating", func(t *testing.T) {
		f := newConfirmFixture(t, PolicyRequireMapping)
		f.registerMerchant(t, "TOKO SANJAYA", "ID1234567890123")
		attempt := f.pendingAttempt(t, 100000, "TOKO SANJAYA", "ID1234567890123")

		cmd := ConfirmPaymentCommand{AttemptID: attempt.AttemptID(), WalletRef: "wallet_abc", CounterpartyTxRef: "0xabc"}
		_, err := f.uc.Execute(ctx, cmd)
		require.NoError(t, err)

		_, err = f.uc.Execute(ctx, cmd)
		assert.True(t, errors.IsConflictError(err))
		assert.Equal(t, 1, f.gateway.callCount())
	})

	t.Run("held lock rejects without touching the attempt", func(t *testing.T) {
		f := newConfirmFixture(t, PolicyRequireMapping)
		attempt := f.pendingAttempt(t, 100000, "TOKO SANJAYA", "")
		f.lock.denyAcquire = true

		_, err := f.uc.Execute(ctx, ConfirmPaymentCommand{
			AttemptID:         attempt.AttemptID(),
			WalletRef:         "wallet_abc",
			CounterpartyTxRef: "0xabc",
		})
		assert.True(t, errors.IsConflictError(err))
		assert.Equal(t, vo.AttemptStatusPending, f.status(t, attempt.AttemptID()).Status())
		assert.Equal(t, 0, f.gateway.callCount())
	})

	t.Run("lock backend outage falls back to conditional update", func(t *testing.T) {
		f := newConfirmFixture(t, PolicyRequireMapping)
		f.registerMerchant(t, "TOKO SANJAYA", "ID1234567890123")
		attempt := f.pendingAttempt(t, 100000, "TOKO SANJAYA", "ID1234567890123")
		f.lock.acquireErr = fmt.Errorf("redis: connection refused")

		result, err := f.uc.Execute(ctx, ConfirmPaymentCommand{
			AttemptID:         attempt.AttemptID(),
			WalletRef:         "wallet_abc",
			CounterpartyTxRef: "0xabc",
		})
		require.NoError(t, err)
		assert.Equal(t, vo.AttemptStatusSuccess, result.Attempt.Status())
	})

	t.Run("unregistered merchant fails under require mapping", func(t *testing.T) {
		f := newConfirmFixture(t, PolicyRequireMapping)
		attempt := f.pendingAttempt(t, 100000, "WARUNG TIDAK TERDAFTAR", "")

		_, err := f.uc.Execute(ctx, ConfirmPaymentCommand{
			AttemptID:         attempt.AttemptID(),
			WalletRef:         "wallet_abc",
			CounterpartyTxRef: "0xabc",
		})
		assert.True(t, errors.IsUnprocessableError(err))
		assert.Equal(t, 0, f.gateway.callCount())

		stored := f.status(t, attempt.AttemptID())
		assert.Equal(t, vo.AttemptStatusFailed, stored.Status())
		require.NotNil(t, stored.FailureReason())
		assert.Equal(t, "merchant not registered", *stored.FailureReason())
	})

	t.Run("unregistered merchant succeeds synthetically under fallback policy", func(t *testing.T) {
		f := newConfirmFixture(t, PolicyAllowSyntheticFallback)
		attempt := f.pendingAttempt(t, 100000, "WARUNG TIDAK TERDAFTAR", "")

		result, err := f.uc.Execute(ctx, ConfirmPaymentCommand{
			AttemptID:         attempt.AttemptID(),
			WalletRef:         "wallet_abc",
			CounterpartyTxRef: "0xabc",
		})
		require.NoError(t, err)
		assert.Equal(t, 0, f.gateway.callCount())

		assert.Equal(t, vo.AttemptStatusSuccess, result.Attempt.Status())
		require.NotNil(t, result.Attempt.GatewayRef())
		assert.Equal(t, "synthetic_"+attempt.AttemptID(), *result.Attempt.GatewayRef())
	})

	t.Run("gateway failure marks the attempt failed", func(t *testing.T) {
		f := newConfirmFixture(t, PolicyRequireMapping)
		f.registerMerchant(t, "TOKO SANJAYA", "ID1234567890123")
		attempt := f.pendingAttempt(t, 100000, "TOKO SANJAYA", "ID1234567890123")
		f.gateway.err = fmt.Errorf("insufficient balance")

		_, err := f.uc.Execute(ctx, ConfirmPaymentCommand{
			AttemptID:         attempt.AttemptID(),
			WalletRef:         "wallet_abc",
			CounterpartyTxRef: "0xabc",
		})
		assert.True(t, errors.IsGatewayError(err))

		stored := f.status(t, attempt.AttemptID())
		assert.Equal(t, vo.AttemptStatusFailed, stored.Status())
		require.NotNil(t, stored.FailureReason())
		assert.Contains(t, *stored.FailureReason(), "insufficient balance")
		assert.NotNil(t, stored.CompletedAt())
	})

	t.Run("registry outage leaves the attempt processing", func(t *testing.T) {
		f := newConfirmFixture(t, PolicyRequireMapping)
		f.registerMerchant(t, "TOKO SANJAYA", "ID1234567890123")
		attempt := f.pendingAttempt(t, 100000, "TOKO SANJAYA", "ID1234567890123")
		f.registry.FindErr = fmt.Errorf("mysql: connection refused")

		_, err := f.uc.Execute(ctx, ConfirmPaymentCommand{
			AttemptID:         attempt.AttemptID(),
			WalletRef:         "wallet_abc",
			CounterpartyTxRef: "0xabc",
		})
		assert.True(t, errors.IsStorageError(err))
		assert.Equal(t, 0, f.gateway.callCount())

		stored := f.status(t, attempt.AttemptID())
		assert.Equal(t, vo.AttemptStatusProcessing, stored.Status())
		assert.Nil(t, stored.CompletedAt())
		assert.Nil(t, stored.FailureReason())
	})

	t.Run("gateway timeout leaves the attempt processing", func(t *testing.T) {
		f := newConfirmFixture(t, PolicyRequireMapping)
		f.registerMerchant(t, "TOKO SANJAYA", "ID1234567890123")
		attempt := f.pendingAttempt(t, 100000, "TOKO SANJAYA", "ID1234567890123")
		f.gateway.err = fmt.Errorf("disburse: %w", context.DeadlineExceeded)

		_, err := f.uc.Execute(ctx, ConfirmPaymentCommand{
			AttemptID:         attempt.AttemptID(),
			WalletRef:         "wallet_abc",
			CounterpartyTxRef: "0xabc",
		})
		assert.True(t, errors.IsTimeoutError(err))

		stored := f.status(t, attempt.AttemptID())
		assert.Equal(t, vo.AttemptStatusProcessing, stored.Status())
		assert.Nil(t, stored.CompletedAt())
		assert.Nil(t, stored.FailureReason())
	})
}

func TestConfirmPaymentUseCase_ConcurrentConfirms(t *testing.T) {
	ctx := context.Background()
	f := newConfirmFixture(t, PolicyRequireMapping)
	f.registerMerchant(t, "TOKO SANJAYA", "ID1234567890123")
	attempt := f.pendingAttempt(t, 100000, "TOKO SANJAYA", "ID1234567890123")

	// The lock never denies here so the conditional update alone must
	// guarantee a single winner.
	const racers = 16
	results := make([]error, racers)
	var wg sync.WaitGroup
	var start sync.WaitGroup
	start.Add(1)
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			start.Wait()
			_, err := f.uc.Execute(ctx, ConfirmPaymentCommand{
				AttemptID:         attempt.AttemptID(),
				WalletRef:         "wallet_abc",
				CounterpartyTxRef: fmt.Sprintf("0xref%02d", i),
			})
			results[i] = err
		}(i)
	}
	start.Done()
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
		} else {
			assert.True(t, errors.IsConflictError(err))
		}
	}
	assert.Equal(t, 1, winners)
	assert.Equal(t, 1, f.gateway.callCount())
	assert.Equal(t, vo.AttemptStatusSuccess, f.status(t, attempt.AttemptID()).Status())
}
