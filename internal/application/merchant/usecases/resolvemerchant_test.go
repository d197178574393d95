package usecases

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunaspay/internal/domain/merchant"
	"lunaspay/internal/shared/logger"
)

type mockRegistrationRepo struct {
	registrations []*merchant.Registration
	findErr       error
	createErr     error
}

func (m *mockRegistrationRepo) Create(ctx context.Context, reg *merchant.Registration) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.registrations = append(m.registrations, reg)
	return nil
}

func (m *mockRegistrationRepo) Update(ctx context.Context, reg *merchant.Registration) error {
	return nil
}

func (m *mockRegistrationRepo) GetByRegistrationID(ctx context.Context, registrationID string) (*merchant.Registration, error) {
	for _, r := range m.registrations {
		if r.RegistrationID() == registrationID {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockRegistrationRepo) FindActiveByNMID(ctx context.Context, nmid string) (*merchant.Registration, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, r := range m.registrations {
		if r.IsActive() && r.NMID() == nmid {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockRegistrationRepo) FindActiveByNameContains(ctx context.Context, name string) (*merchant.Registration, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	needle := strings.ToLower(name)
	for _, r := range m.registrations {
		have := strings.ToLower(r.MerchantName())
		if r.IsActive() && (strings.Contains(have, needle) || strings.Contains(needle, have)) {
			return r, nil
		}
	}
	return nil, nil
}

func (m *mockRegistrationRepo) ListActive(ctx context.Context) ([]*merchant.Registration, error) {
	return m.registrations, nil
}

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func register(t *testing.T, repo *mockRegistrationRepo, nmid, name string) *merchant.Registration {
	t.Helper()
	reg, err := merchant.NewRegistration(nmid, name, "014", "1234567890", name)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), reg))
	return reg
}

func TestResolveMerchantUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves by exact nmid first", func(t *testing.T) {
		repo := &mockRegistrationRepo{}
		byNMID := register(t, repo, "ID1234567890123", "TOKO LAIN")
		register(t, repo, "", "TOKO SANJAYA")
		uc := NewResolveMerchantUseCase(repo, testLogger())

		got, err := uc.Execute(ctx, merchant.Identifier{
			NMID:         "ID1234567890123",
			MerchantName: "TOKO SANJAYA",
		})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, byNMID.RegistrationID(), got.RegistrationID())
	})

	t.Run("falls back to name containment", func(t *testing.T) {
		repo := &mockRegistrationRepo{}
		byName := register(t, repo, "", "TOKO SANJAYA CABANG PUSAT")
		uc := NewResolveMerchantUseCase(repo, testLogger())

		got, err := uc.Execute(ctx, merchant.Identifier{
			NMID:         "ID9999999999999",
			MerchantName: "toko sanjaya",
		})
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, byName.RegistrationID(), got.RegistrationID())
	})

	t.Run("unregistered merchant resolves to nil without error", func(t *testing.T) {
		repo := &mockRegistrationRepo{}
		uc := NewResolveMerchantUseCase(repo, testLogger())

		got, err := uc.Execute(ctx, merchant.Identifier{MerchantName: "WARUNG TIDAK ADA"})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("empty identifier resolves to nil", func(t *testing.T) {
		repo := &mockRegistrationRepo{}
		register(t, repo, "", "TOKO SANJAYA")
		uc := NewResolveMerchantUseCase(repo, testLogger())

		got, err := uc.Execute(ctx, merchant.Identifier{})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("inactive registrations are skipped", func(t *testing.T) {
		repo := &mockRegistrationRepo{}
		reg := register(t, repo, "ID1234567890123", "TOKO SANJAYA")
		reg.Deactivate()
		uc := NewResolveMerchantUseCase(repo, testLogger())

		got, err := uc.Execute(ctx, merchant.Identifier{
			NMID:         "ID1234567890123",
			MerchantName: "TOKO SANJAYA",
		})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("repository failure surfaces as error", func(t *testing.T) {
		repo := &mockRegistrationRepo{findErr: fmt.Errorf("connection reset")}
		uc := NewResolveMerchantUseCase(repo, testLogger())

		_, err := uc.Execute(ctx, merchant.Identifier{NMID: "ID1234567890123"})
		assert.Error(t, err)
	})
}
