// Package bridge implements the HTTP client for the mint relayer.
package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"lunaspay/internal/application/bridge/relayer"
	appsigning "lunaspay/internal/application/bridge/signing"
	domainbridge "lunaspay/internal/domain/bridge"
	"lunaspay/internal/shared/constants"
	"lunaspay/internal/shared/logger"
)

const (
	headerTimestamp = "X-Timestamp"
	headerSignature = "X-Signature"
	// Maximum response body size (64KB)
	maxResponseSize = 64 << 10
)

type submitResponseBody struct {
	RelayerRef string `json:"relayer_ref"`
	Status     string `json:"status"`
	Message    string `json:"message"`
}

// HTTPRelayerClient posts signed mint requests to the relayer. The body
// bytes are produced by relayer.EncodeBody, the same bytes the builder
// signed; re-marshalling here would invalidate the signature.
type HTTPRelayerClient struct {
	baseURL    string
	submitPath string
	signer     appsigning.Signer
	httpClient *http.Client
	logger     logger.Interface
}

func NewHTTPRelayerClient(baseURL, submitPath string, signer appsigning.Signer, timeout time.Duration, logger logger.Interface) *HTTPRelayerClient {
	return &HTTPRelayerClient{
		baseURL:    baseURL,
		submitPath: submitPath,
		signer:     signer,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

var _ relayer.Client = (*HTTPRelayerClient)(nil)

func (c *HTTPRelayerClient) Submit(ctx context.Context, req *domainbridge.Request) (*relayer.SubmitResult, error) {
	body, err := relayer.EncodeBody(req)
	if err != nil {
		return nil, fmt.Errorf("failed to encode mint request: %w", err)
	}

	signature := req.Signature
	if signature == "" {
		signature = c.signer.Sign(req.Timestamp, http.MethodPost, c.submitPath, body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+c.submitPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build mint request: %w", err)
	}
	httpReq.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
	httpReq.Header.Set(headerTimestamp, strconv.FormatInt(req.Timestamp.Unix(), 10))
	httpReq.Header.Set(headerSignature, signature)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("mint submission failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read relayer response: %w", err)
	}

	var result submitResponseBody
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if json.Unmarshal(respBody, &result) == nil && result.Message != "" {
			return nil, fmt.Errorf("relayer rejected mint (%d): %s", resp.StatusCode, result.Message)
		}
		return nil, fmt.Errorf("relayer rejected mint with status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode relayer response: %w", err)
	}

	c.logger.Infow("mint request accepted",
		"burn_tx_ref", req.BurnTxRef,
		"relayer_ref", result.RelayerRef,
		"status", result.Status,
	)

	return &relayer.SubmitResult{
		RelayerRef: result.RelayerRef,
		Status:     result.Status,
	}, nil
}
