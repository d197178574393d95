package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lunaspay/internal/application/merchant/usecases"
	"lunaspay/internal/domain/merchant"
	"lunaspay/internal/shared/logger"
	"lunaspay/internal/shared/utils"
)

type MerchantHandler struct {
	registerMerchantUC registerMerchantUseCase
	listMerchantsUC    listMerchantsUseCase
	setStatusUC        setMerchantStatusUseCase
	logger             logger.Interface
}

func NewMerchantHandler(
	registerMerchantUC registerMerchantUseCase,
	listMerchantsUC listMerchantsUseCase,
	setStatusUC setMerchantStatusUseCase,
	log logger.Interface,
) *MerchantHandler {
	return &MerchantHandler{
		registerMerchantUC: registerMerchantUC,
		listMerchantsUC:    listMerchantsUC,
		setStatusUC:        setStatusUC,
		logger:             log,
	}
}

type RegisterMerchantRequest struct {
	NMID          string `json:"nmid"`
	MerchantName  string `json:"merchant_name" validate:"required"`
	BankCode      string `json:"bank_code" validate:"required"`
	AccountNumber string `json:"account_number" validate:"required,bank_account"`
	AccountName   string `json:"account_name" validate:"required"`
	Description   string `json:"description"`
}

type UpdateMerchantStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive"`
}

type MerchantRegistrationResponse struct {
	RegistrationID string    `json:"registration_id"`
	NMID           string    `json:"nmid,omitempty"`
	MerchantName   string    `json:"merchant_name"`
	BankCode       string    `json:"bank_code"`
	AccountNumber  string    `json:"account_number"`
	AccountName    string    `json:"account_name"`
	Description    string    `json:"description,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

func toMerchantRegistrationResponse(r *merchant.Registration) MerchantRegistrationResponse {
	return MerchantRegistrationResponse{
		RegistrationID: r.RegistrationID(),
		NMID:           r.NMID(),
		MerchantName:   r.MerchantName(),
		BankCode:       r.BankCode(),
		AccountNumber:  r.AccountNumber(),
		AccountName:    r.AccountName(),
		Description:    r.Description(),
		IsActive:       r.IsActive(),
		CreatedAt:      r.CreatedAt(),
	}
}

// RegisterMerchant handles POST /api/merchants
func (h *MerchantHandler) RegisterMerchant(c *gin.Context) {
	var req RegisterMerchantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for register merchant", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	registration, err := h.registerMerchantUC.Execute(c.Request.Context(), usecases.RegisterMerchantCommand{
		NMID:          req.NMID,
		MerchantName:  req.MerchantName,
		BankCode:      req.BankCode,
		AccountNumber: req.AccountNumber,
		AccountName:   req.AccountName,
		Description:   req.Description,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, toMerchantRegistrationResponse(registration), "merchant registered")
}

// ListMerchants handles GET /api/merchants
func (h *MerchantHandler) ListMerchants(c *gin.Context) {
	registrations, err := h.listMerchantsUC.Execute(c.Request.Context())
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	items := make([]MerchantRegistrationResponse, 0, len(registrations))
	for _, r := range registrations {
		items = append(items, toMerchantRegistrationResponse(r))
	}
	utils.OKResponse(c, gin.H{"merchants": items, "total": len(items)})
}

// UpdateMerchantStatus handles PATCH /api/merchants/:id/status
func (h *MerchantHandler) UpdateMerchantStatus(c *gin.Context) {
	var req UpdateMerchantStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "status must be active or inactive")
		return
	}

	registration, err := h.setStatusUC.Execute(c.Request.Context(), c.Param("id"), req.Status == "active")
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, toMerchantRegistrationResponse(registration))
}
