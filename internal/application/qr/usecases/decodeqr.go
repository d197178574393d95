package usecases

import (
	"lunaspay/internal/domain/qris"
	"lunaspay/internal/shared/logger"
)

type DecodeQRCommand struct {
	RawContent string
}

type DecodeQRResult struct {
	Payload *qris.Payload
	// Reason is the human-readable decline reason when the payload is
	// invalid; empty for valid codes.
	Reason string
}

// DecodeQRUseCase wraps the pure decoder with the cheap classifier so the
// API layer can tell "not a QRIS code at all" apart from "a broken one".
type DecodeQRUseCase struct {
	logger logger.Interface
}

func NewDecodeQRUseCase(logger logger.Interface) *DecodeQRUseCase {
	return &DecodeQRUseCase{logger: logger}
}

func (uc *DecodeQRUseCase) Execute(cmd DecodeQRCommand) *DecodeQRResult {
	if !qris.LooksLikeQRIS(cmd.RawContent) {
		uc.logger.Debugw("content does not look like a QRIS code", "length", len(cmd.RawContent))
		return &DecodeQRResult{
			Payload: &qris.Payload{
				IsValid:         false,
				ValidationError: qris.ValidationErrorDecodeFailure,
			},
			Reason: "content is not a QRIS payment code",
		}
	}

	payload := qris.Decode(cmd.RawContent)
	if !payload.IsValid {
		uc.logger.Infow("QRIS decode rejected",
			"validation_error", payload.ValidationError,
			"detail", payload.ValidationDetail)
		return &DecodeQRResult{
			Payload: payload,
			Reason:  payload.ValidationError.Reason(),
		}
	}

	return &DecodeQRResult{Payload: payload}
}
