package disbursement

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	appdisbursement "lunaspay/internal/application/payment/disbursement"
	"lunaspay/internal/shared/constants"
	"lunaspay/internal/shared/logger"
)

const (
	disbursePath = "/v1/disbursements"
	// Maximum response body size (64KB)
	maxResponseSize = 64 << 10
)

type disburseRequestBody struct {
	ExternalID        string `json:"external_id"`
	Amount            int64  `json:"amount"`
	Currency          string `json:"currency"`
	BankCode          string `json:"bank_code"`
	AccountNumber     string `json:"account_number"`
	AccountHolderName string `json:"account_holder_name"`
	Description       string `json:"description"`
}

type disburseResponseBody struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type errorResponseBody struct {
	ErrorCode string `json:"error_code"`
	Message   string `json:"message"`
}

// HTTPGateway calls the fiat disbursement provider over HTTPS. The attempt
// id travels both in the body and the idempotency header so a retried
// request can never produce a second transfer.
type HTTPGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logger.Interface
}

func NewHTTPGateway(baseURL, apiKey string, timeout time.Duration, logger logger.Interface) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

var _ appdisbursement.Gateway = (*HTTPGateway)(nil)

func (g *HTTPGateway) Disburse(ctx context.Context, req appdisbursement.DisburseRequest) (*appdisbursement.DisburseResponse, error) {
	body, err := json.Marshal(disburseRequestBody{
		ExternalID:        req.ExternalID,
		Amount:            req.Amount,
		Currency:          constants.CurrencyIDR,
		BankCode:          req.BankCode,
		AccountNumber:     req.AccountNumber,
		AccountHolderName: req.AccountHolderName,
		Description:       req.Description,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode disburse request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+disbursePath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build disburse request: %w", err)
	}
	httpReq.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	httpReq.Header.Set(constants.HeaderAuthorization, "Bearer "+g.apiKey)
	httpReq.Header.Set(constants.HeaderIdempotencyKey, req.ExternalID)

	resp, err := g.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("disburse request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read disburse response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody errorResponseBody
		if json.Unmarshal(respBody, &errBody) == nil && errBody.Message != "" {
			return nil, fmt.Errorf("disbursement rejected (%d %s): %s",
				resp.StatusCode, errBody.ErrorCode, errBody.Message)
		}
		return nil, fmt.Errorf("disbursement rejected with status %d", resp.StatusCode)
	}

	var result disburseResponseBody
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode disburse response: %w", err)
	}
	if result.ID == "" {
		return nil, fmt.Errorf("disburse response missing id")
	}

	g.logger.Infow("disbursement accepted",
		"external_id", req.ExternalID,
		"disbursement_id", result.ID,
		"status", result.Status,
	)

	return &appdisbursement.DisburseResponse{
		ID:     result.ID,
		Status: result.Status,
	}, nil
}
