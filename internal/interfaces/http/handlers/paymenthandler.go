package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lunaspay/internal/application/payment/usecases"
	"lunaspay/internal/domain/payment"
	"lunaspay/internal/interfaces/http/middleware"
	"lunaspay/internal/shared/errors"
	"lunaspay/internal/shared/logger"
	"lunaspay/internal/shared/utils"
)

type PaymentHandler struct {
	createPaymentUC  createPaymentUseCase
	confirmPaymentUC confirmPaymentUseCase
	getPaymentUC     getPaymentUseCase
	listPaymentsUC   listPaymentsUseCase
	logger           logger.Interface
}

func NewPaymentHandler(
	createPaymentUC createPaymentUseCase,
	confirmPaymentUC confirmPaymentUseCase,
	getPaymentUC getPaymentUseCase,
	listPaymentsUC listPaymentsUseCase,
	log logger.Interface,
) *PaymentHandler {
	return &PaymentHandler{
		createPaymentUC:  createPaymentUC,
		confirmPaymentUC: confirmPaymentUC,
		getPaymentUC:     getPaymentUC,
		listPaymentsUC:   listPaymentsUC,
		logger:           log,
	}
}

type CreatePaymentRequest struct {
	Amount       int64  `json:"amount" binding:"required,gt=0"`
	MerchantName string `json:"merchant_name" binding:"required"`
	MerchantCity string `json:"merchant_city"`
	NMID         string `json:"nmid"`
}

type ConfirmPaymentRequest struct {
	CounterpartyTxRef string `json:"counterparty_tx_ref" binding:"required"`
}

type PaymentAttemptResponse struct {
	AttemptID         string     `json:"attempt_id"`
	WalletRef         string     `json:"wallet_ref"`
	Status            string     `json:"status"`
	Amount            int64      `json:"amount"`
	ServiceFee        int64      `json:"service_fee"`
	TotalAmount       int64      `json:"total_amount"`
	Currency          string     `json:"currency"`
	MerchantName      string     `json:"merchant_name"`
	MerchantCity      string     `json:"merchant_city,omitempty"`
	NMID              string     `json:"nmid,omitempty"`
	CounterpartyTxRef *string    `json:"counterparty_tx_ref,omitempty"`
	GatewayRef        *string    `json:"gateway_ref,omitempty"`
	FailureReason     *string    `json:"failure_reason,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
}

func toPaymentAttemptResponse(a *payment.Attempt) PaymentAttemptResponse {
	return PaymentAttemptResponse{
		AttemptID:         a.AttemptID(),
		WalletRef:         a.WalletRef(),
		Status:            a.Status().String(),
		Amount:            a.Amount().Amount(),
		ServiceFee:        a.ServiceFee().Amount(),
		TotalAmount:       a.TotalAmount().Amount(),
		Currency:          a.Amount().Currency(),
		MerchantName:      a.Merchant().Name(),
		MerchantCity:      a.Merchant().City(),
		NMID:              a.Merchant().NMID(),
		CounterpartyTxRef: a.CounterpartyTxRef(),
		GatewayRef:        a.GatewayRef(),
		FailureReason:     a.FailureReason(),
		CreatedAt:         a.CreatedAt(),
		CompletedAt:       a.CompletedAt(),
	}
}

// CreatePayment handles POST /api/payments
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	walletRef := middleware.WalletRef(c)
	if walletRef == "" {
		utils.AppErrorResponse(c, errors.NewForbiddenError("wallet reference missing from token"))
		return
	}

	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create payment", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.createPaymentUC.Execute(c.Request.Context(), usecases.CreatePaymentCommand{
		WalletRef:    walletRef,
		Amount:       req.Amount,
		MerchantName: req.MerchantName,
		MerchantCity: req.MerchantCity,
		NMID:         req.NMID,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, toPaymentAttemptResponse(result.Attempt), "payment attempt created")
}

// ConfirmPayment handles POST /api/payments/:id/confirm
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	walletRef := middleware.WalletRef(c)
	if walletRef == "" {
		utils.AppErrorResponse(c, errors.NewForbiddenError("wallet reference missing from token"))
		return
	}

	attemptID := c.Param("id")

	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for confirm payment", "error", err, "attempt_id", attemptID)
		utils.ErrorResponse(c, http.StatusBadRequest, "counterparty_tx_ref is required")
		return
	}

	result, err := h.confirmPaymentUC.Execute(c.Request.Context(), usecases.ConfirmPaymentCommand{
		AttemptID:         attemptID,
		WalletRef:         walletRef,
		CounterpartyTxRef: req.CounterpartyTxRef,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.OKResponse(c, toPaymentAttemptResponse(result.Attempt))
}

// GetPayment handles GET /api/payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	attempt, err := h.getPaymentUC.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	if attempt.WalletRef() != middleware.WalletRef(c) {
		utils.AppErrorResponse(c, errors.NewForbiddenError("payment attempt belongs to another wallet"))
		return
	}

	utils.OKResponse(c, toPaymentAttemptResponse(attempt))
}

// ListPayments handles GET /api/payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	walletRef := middleware.WalletRef(c)
	if walletRef == "" {
		utils.AppErrorResponse(c, errors.NewForbiddenError("wallet reference missing from token"))
		return
	}

	attempts, err := h.listPaymentsUC.Execute(c.Request.Context(), usecases.ListPaymentsQuery{
		WalletRef:    walletRef,
		BusinessDate: c.Query("date"),
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	items := make([]PaymentAttemptResponse, 0, len(attempts))
	for _, a := range attempts {
		items = append(items, toPaymentAttemptResponse(a))
	}
	utils.OKResponse(c, gin.H{"payments": items, "total": len(items)})
}
