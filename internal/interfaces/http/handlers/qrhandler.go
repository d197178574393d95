package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lunaspay/internal/application/qr/usecases"
	"lunaspay/internal/shared/logger"
	"lunaspay/internal/shared/utils"
)

type QRHandler struct {
	decodeQRUC decodeQRUseCase
	logger     logger.Interface
}

func NewQRHandler(decodeQRUC decodeQRUseCase, log logger.Interface) *QRHandler {
	return &QRHandler{
		decodeQRUC: decodeQRUC,
		logger:     log,
	}
}

type DecodeQRRequest struct {
	Content string `json:"content" binding:"required"`
}

type DecodedQRResponse struct {
	IsValid          bool   `json:"is_valid"`
	Reason           string `json:"reason,omitempty"`
	InitiationMethod string `json:"initiation_method,omitempty"`
	MerchantName     string `json:"merchant_name,omitempty"`
	MerchantCity     string `json:"merchant_city,omitempty"`
	NMID             string `json:"nmid,omitempty"`
	MerchantPAN      string `json:"merchant_pan,omitempty"`
	Amount           string `json:"amount,omitempty"`
	CurrencyCode     string `json:"currency_code,omitempty"`
	CountryCode      string `json:"country_code,omitempty"`
	CategoryCode     string `json:"category_code,omitempty"`
}

// DecodeQR handles POST /api/qr/decode
func (h *QRHandler) DecodeQR(c *gin.Context) {
	var req DecodeQRRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "content is required")
		return
	}

	result := h.decodeQRUC.Execute(usecases.DecodeQRCommand{RawContent: req.Content})

	utils.OKResponse(c, toDecodedQRResponse(result))
}

func toDecodedQRResponse(result *usecases.DecodeQRResult) DecodedQRResponse {
	p := result.Payload
	resp := DecodedQRResponse{
		IsValid: p.IsValid,
		Reason:  result.Reason,
	}
	if !p.IsValid {
		return resp
	}

	resp.InitiationMethod = string(p.InitiationMethod)
	resp.MerchantName = p.MerchantName
	resp.MerchantCity = p.MerchantCity
	resp.CurrencyCode = p.CurrencyCode
	resp.CountryCode = p.CountryCode
	resp.CategoryCode = p.MerchantCategoryCode
	if p.TransactionAmount != nil {
		resp.Amount = p.TransactionAmount.String()
	}
	if info := p.MerchantAccountInfo; info != nil {
		resp.NMID = info.MerchantID
		resp.MerchantPAN = info.MerchantPAN
	}
	return resp
}
