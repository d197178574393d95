package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunaspay/internal/application/qr/usecases"
	"lunaspay/internal/domain/qris"
	"lunaspay/internal/interfaces/http/handlers/testutil"
	"lunaspay/internal/shared/logger"
)

func tlv(tag, value string) string {
	return fmt.Sprintf("%s%02d%s", tag, len(value), value)
}

func sealPayload(body string) string {
	partial := body + "6304"
	return partial + qris.Checksum(partial)
}

func staticQRISPayload() string {
	body := tlv("00", "01") +
		tlv("01", "11") +
		tlv("26", tlv("00", "ID.CO.QRIS.WWW")+tlv("02", "ID1020123456789")) +
		tlv("52", "5812") +
		tlv("53", "360") +
		tlv("58", "ID") +
		tlv("59", "TOKO SANJAYA") +
		tlv("60", "JAKARTA")
	return sealPayload(body)
}

func newTestQRHandler(log logger.Interface) *QRHandler {
	return NewQRHandler(usecases.NewDecodeQRUseCase(log), log)
}

func TestQRHandler_DecodeQR_Valid(t *testing.T) {
	handler := newTestQRHandler(testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/qr/decode", DecodeQRRequest{
		Content: staticQRISPayload(),
	})
	handler.DecodeQR(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.True(t, resp.Success)

	var decoded DecodedQRResponse
	require.NoError(t, json.Unmarshal(resp.Data, &decoded))
	assert.True(t, decoded.IsValid)
	assert.Empty(t, decoded.Reason)
	assert.Equal(t, "TOKO SANJAYA", decoded.MerchantName)
	assert.Equal(t, "JAKARTA", decoded.MerchantCity)
	assert.Equal(t, "ID1020123456789", decoded.NMID)
	assert.Equal(t, "static", decoded.InitiationMethod)
	assert.Equal(t, "360", decoded.CurrencyCode)
}

func TestQRHandler_DecodeQR_NotQRIS(t *testing.T) {
	handler := newTestQRHandler(testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/qr/decode", DecodeQRRequest{
		Content: "https://example.com/not-a-qr",
	})
	handler.DecodeQR(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))

	var decoded DecodedQRResponse
	require.NoError(t, json.Unmarshal(resp.Data, &decoded))
	assert.False(t, decoded.IsValid)
	assert.Equal(t, "content is not a QRIS payment code", decoded.Reason)
	assert.Empty(t, decoded.MerchantName)
}

func TestQRHandler_DecodeQR_BadChecksum(t *testing.T) {
	handler := newTestQRHandler(testutil.NewMockLogger())

	payload := staticQRISPayload()
	broken := payload[:len(payload)-4] + "0000"

	c, w := testutil.NewTestContext(http.MethodPost, "/api/qr/decode", DecodeQRRequest{Content: broken})
	handler.DecodeQR(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))

	var decoded DecodedQRResponse
	require.NoError(t, json.Unmarshal(resp.Data, &decoded))
	assert.False(t, decoded.IsValid)
	assert.NotEmpty(t, decoded.Reason)
}

func TestQRHandler_DecodeQR_MissingContent(t *testing.T) {
	handler := newTestQRHandler(testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/qr/decode", map[string]string{})
	handler.DecodeQR(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
