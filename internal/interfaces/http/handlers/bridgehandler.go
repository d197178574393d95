package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"lunaspay/internal/application/bridge/usecases"
	"lunaspay/internal/shared/logger"
	"lunaspay/internal/shared/utils"
)

type BridgeHandler struct {
	submitBridgeUC submitBridgeRequestUseCase
	logger         logger.Interface
}

func NewBridgeHandler(submitBridgeUC submitBridgeRequestUseCase, log logger.Interface) *BridgeHandler {
	return &BridgeHandler{
		submitBridgeUC: submitBridgeUC,
		logger:         log,
	}
}

type SubmitBridgeRequest struct {
	BurnTxRef          string `json:"burn_tx_ref" binding:"required"`
	SourceChainID      string `json:"source_chain_id" binding:"required"`
	DestinationAddress string `json:"destination_address" binding:"required"`
	AmountAfterFee     int64  `json:"amount_after_fee" binding:"required,gt=0"`
	BridgeNonce        string `json:"bridge_nonce" binding:"required"`
}

type BridgeRequestResponse struct {
	RequestRef         string    `json:"request_ref"`
	BurnTxRef          string    `json:"burn_tx_ref"`
	SourceChainID      string    `json:"source_chain_id"`
	DestChainID        string    `json:"dest_chain_id"`
	AmountAfterFee     int64     `json:"amount_after_fee"`
	BridgeNonce        string    `json:"bridge_nonce"`
	DestinationAddress string    `json:"destination_address"`
	Timestamp          time.Time `json:"timestamp"`
	RelayerRef         string    `json:"relayer_ref,omitempty"`
	Status             string    `json:"status,omitempty"`
}

// SubmitRequest handles POST /api/bridge/requests
func (h *BridgeHandler) SubmitRequest(c *gin.Context) {
	var req SubmitBridgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for bridge submission", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.submitBridgeUC.Execute(c.Request.Context(), usecases.BuildBridgeRequestCommand{
		BurnTxRef:          req.BurnTxRef,
		SourceChainID:      req.SourceChainID,
		DestinationAddress: req.DestinationAddress,
		AmountAfterFee:     req.AmountAfterFee,
		BridgeNonce:        req.BridgeNonce,
	})
	if err != nil {
		utils.AppErrorResponse(c, err)
		return
	}

	utils.CreatedResponse(c, BridgeRequestResponse{
		RequestRef:         result.Request.RequestRef,
		BurnTxRef:          result.Request.BurnTxRef,
		SourceChainID:      result.Request.SourceChainID,
		DestChainID:        result.Request.DestChainID,
		AmountAfterFee:     result.Request.AmountAfterFee,
		BridgeNonce:        result.Request.BridgeNonce,
		DestinationAddress: result.Request.DestinationAddress,
		Timestamp:          result.Request.Timestamp,
		RelayerRef:         result.RelayerRef,
		Status:             result.Status,
	}, "bridge request submitted")
}
