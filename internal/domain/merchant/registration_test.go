package merchant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunaspay/internal/domain/qris"
)

func TestNewRegistration(t *testing.T) {
	tests := []struct {
		name          string
		nmid          string
		merchantName  string
		bankCode      string
		accountNumber string
		accountName   string
		wantErr       string
	}{
		{
			name:          "nmid only",
			nmid:          "ID1020123456789",
			bankCode:      "014",
			accountNumber: "1234567890",
			accountName:   "PT Sanjaya Retail",
		},
		{
			name:          "name only",
			merchantName:  "TOKO SANJAYA",
			bankCode:      "014",
			accountNumber: "1234567890",
			accountName:   "PT Sanjaya Retail",
		},
		{
			name:          "neither nmid nor name",
			bankCode:      "014",
			accountNumber: "1234567890",
			accountName:   "PT Sanjaya Retail",
			wantErr:       "either nmid or merchant name is required",
		},
		{
			name:          "missing bank code",
			nmid:          "ID1020123456789",
			accountNumber: "1234567890",
			accountName:   "PT Sanjaya Retail",
			wantErr:       "bank code is required",
		},
		{
			name:        "missing account number",
			nmid:        "ID1020123456789",
			bankCode:    "014",
			accountName: "PT Sanjaya Retail",
			wantErr:     "account number is required",
		},
		{
			name:          "missing account name",
			nmid:          "ID1020123456789",
			bankCode:      "014",
			accountNumber: "1234567890",
			wantErr:       "account name is required",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewRegistration(tc.nmid, tc.merchantName, tc.bankCode, tc.accountNumber, tc.accountName)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.True(t, r.IsActive())
			assert.True(t, len(r.RegistrationID()) > len("mch_"))
			assert.Equal(t, tc.nmid, r.NMID())
			assert.Equal(t, tc.merchantName, r.MerchantName())
		})
	}
}

func TestRegistration_DeactivateActivate(t *testing.T) {
	r, err := NewRegistration("ID123", "", "014", "1234567890", "PT Test")
	require.NoError(t, err)

	r.Deactivate()
	assert.False(t, r.IsActive())

	r.Activate()
	assert.True(t, r.IsActive())
}

func TestIdentifierFromPayload(t *testing.T) {
	tests := []struct {
		name     string
		payload  *qris.Payload
		wantNMID string
		wantName string
	}{
		{
			name: "merchant id preferred over pan",
			payload: &qris.Payload{
				MerchantAccountInfo: &qris.MerchantAccountInfo{
					MerchantPAN: "9360001234567890",
					MerchantID:  "ID1020123456789",
				},
				MerchantName: "TOKO SANJAYA",
			},
			wantNMID: "ID1020123456789",
			wantName: "TOKO SANJAYA",
		},
		{
			name: "pan used when merchant id absent",
			payload: &qris.Payload{
				MerchantAccountInfo: &qris.MerchantAccountInfo{
					MerchantPAN: "9360001234567890",
				},
				MerchantName: "TOKO SANJAYA",
			},
			wantNMID: "9360001234567890",
			wantName: "TOKO SANJAYA",
		},
		{
			name:     "no account info block",
			payload:  &qris.Payload{MerchantName: "TOKO SANJAYA"},
			wantName: "TOKO SANJAYA",
		},
		{
			name:    "nil payload",
			payload: nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ident := IdentifierFromPayload(tc.payload)
			assert.Equal(t, tc.wantNMID, ident.NMID)
			assert.Equal(t, tc.wantName, ident.MerchantName)
		})
	}
}

func TestIdentifier_IsEmpty(t *testing.T) {
	assert.True(t, Identifier{}.IsEmpty())
	assert.False(t, Identifier{NMID: "ID123"}.IsEmpty())
	assert.False(t, Identifier{MerchantName: "TOKO"}.IsEmpty())
}
