package usecases

import (
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunaspay/internal/domain/qris"
	"lunaspay/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func tlv(tag, value string) string {
	return fmt.Sprintf("%s%02d%s", tag, len(value), value)
}

func seal(body string) string {
	body += "6304"
	return body + qris.Checksum(body)
}

func validStaticPayload() string {
	body := tlv("00", "01") +
		tlv("01", "11") +
		tlv("26", tlv("00", "ID.CO.QRIS.WWW")+tlv("02", "936000141234567890")) +
		tlv("52", "5812") +
		tlv("53", "360") +
		tlv("58", "ID") +
		tlv("59", "TOKO SANJAYA") +
		tlv("60", "JAKARTA")
	return seal(body)
}

func TestDecodeQRUseCase_Execute(t *testing.T) {
	uc := NewDecodeQRUseCase(testLogger())

	t.Run("decodes a valid static payload", func(t *testing.T) {
		result := uc.Execute(DecodeQRCommand{RawContent: validStaticPayload()})

		require.True(t, result.Payload.IsValid)
		assert.Empty(t, result.Reason)
		assert.Equal(t, "TOKO SANJAYA", result.Payload.MerchantName)
		assert.Equal(t, qris.InitiationStatic, result.Payload.InitiationMethod)
	})

	t.Run("rejects content that is not a QRIS code", func(t *testing.T) {
		result := uc.Execute(DecodeQRCommand{RawContent: "https://example.com/pay/123"})

		assert.False(t, result.Payload.IsValid)
		assert.Equal(t, qris.ValidationErrorDecodeFailure, result.Payload.ValidationError)
		assert.Equal(t, "content is not a QRIS payment code", result.Reason)
	})

	t.Run("surfaces checksum mismatch with reason", func(t *testing.T) {
		body := validStaticPayload()
		broken := body[:len(body)-4] + "0000"

		result := uc.Execute(DecodeQRCommand{RawContent: broken})

		assert.False(t, result.Payload.IsValid)
		assert.Equal(t, qris.ValidationErrorChecksumMismatch, result.Payload.ValidationError)
		assert.Equal(t, qris.ValidationErrorChecksumMismatch.Reason(), result.Reason)
	})

	t.Run("surfaces missing merchant name", func(t *testing.T) {
		body := tlv("00", "01") +
			tlv("01", "11") +
			tlv("26", tlv("00", "ID.CO.QRIS.WWW")) +
			tlv("58", "ID") +
			tlv("60", "JAKARTA")
		result := uc.Execute(DecodeQRCommand{RawContent: seal(body)})

		assert.False(t, result.Payload.IsValid)
		assert.Equal(t, qris.ValidationErrorMissingMerchantName, result.Payload.ValidationError)
		assert.NotEmpty(t, result.Reason)
	})
}
