package disbursement

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appdisbursement "lunaspay/internal/application/payment/disbursement"
	"lunaspay/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testRequest() appdisbursement.DisburseRequest {
	return appdisbursement.DisburseRequest{
		ExternalID:        "pay_abc123",
		Amount:            100000,
		BankCode:          "014",
		AccountNumber:     "1234567890",
		AccountHolderName: "TOKO SANJAYA",
		Description:       "QRIS payment to TOKO SANJAYA",
	}
}

func TestHTTPGateway_Disburse(t *testing.T) {
	ctx := context.Background()

	t.Run("sends idempotency key and auth headers", func(t *testing.T) {
		var got disburseRequestBody
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/disbursements", r.URL.Path)
			assert.Equal(t, "Bearer secret-key", r.Header.Get("Authorization"))
			assert.Equal(t, "pay_abc123", r.Header.Get("X-Idempotency-Key"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(disburseResponseBody{ID: "disb_1", Status: "COMPLETED"})
		}))
		defer srv.Close()

		gw := NewHTTPGateway(srv.URL, "secret-key", 5*time.Second, testLogger())
		resp, err := gw.Disburse(ctx, testRequest())
		require.NoError(t, err)

		assert.Equal(t, "disb_1", resp.ID)
		assert.Equal(t, "COMPLETED", resp.Status)
		assert.Equal(t, "pay_abc123", got.ExternalID)
		assert.Equal(t, int64(100000), got.Amount)
		assert.Equal(t, "IDR", got.Currency)
	})

	t.Run("surfaces provider error message", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(errorResponseBody{ErrorCode: "INSUFFICIENT_BALANCE", Message: "insufficient balance"})
		}))
		defer srv.Close()

		gw := NewHTTPGateway(srv.URL, "secret-key", 5*time.Second, testLogger())
		_, err := gw.Disburse(ctx, testRequest())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "insufficient balance")
	})

	t.Run("rejects a success response without id", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]string{"status": "PENDING"})
		}))
		defer srv.Close()

		gw := NewHTTPGateway(srv.URL, "secret-key", 5*time.Second, testLogger())
		_, err := gw.Disburse(ctx, testRequest())
		assert.Error(t, err)
	})
}
