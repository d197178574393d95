package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lunaspay/internal/application/bridge/usecases"
	"lunaspay/internal/domain/bridge"
	"lunaspay/internal/interfaces/http/handlers/testutil"
	"lunaspay/internal/shared/errors"
)

type mockSubmitBridgeUC struct {
	result  *usecases.SubmitBridgeRequestResult
	err     error
	lastCmd usecases.BuildBridgeRequestCommand
}

func (m *mockSubmitBridgeUC) Execute(ctx context.Context, cmd usecases.BuildBridgeRequestCommand) (*usecases.SubmitBridgeRequestResult, error) {
	m.lastCmd = cmd
	return m.result, m.err
}

func validBridgeBody() SubmitBridgeRequest {
	return SubmitBridgeRequest{
		BurnTxRef:          "0xabc123",
		SourceChainID:      "lisk-mainnet",
		DestinationAddress: "0xdeadbeef",
		AmountAfterFee:     50000,
		BridgeNonce:        "nonce-1",
	}
}

func TestBridgeHandler_SubmitRequest_Success(t *testing.T) {
	req := &bridge.Request{
		BurnTxRef:          "0xabc123",
		SourceChainID:      "lisk-mainnet",
		DestChainID:        "base-mainnet",
		AmountAfterFee:     50000,
		BridgeNonce:        "nonce-1",
		DestinationAddress: "0xdeadbeef",
		Signature:          "deadbeef",
		Timestamp:          time.Now().UTC(),
	}
	mockUC := &mockSubmitBridgeUC{result: &usecases.SubmitBridgeRequestResult{
		Request:    req,
		RelayerRef: "relay_42",
		Status:     "accepted",
	}}
	handler := NewBridgeHandler(mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/bridge/requests", validBridgeBody())
	handler.SubmitRequest(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "0xabc123", mockUC.lastCmd.BurnTxRef)
	assert.Equal(t, int64(50000), mockUC.lastCmd.AmountAfterFee)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	require.True(t, resp.Success)

	var body BridgeRequestResponse
	require.NoError(t, json.Unmarshal(resp.Data, &body))
	assert.Equal(t, "relay_42", body.RelayerRef)
	assert.Equal(t, "accepted", body.Status)
	assert.Equal(t, "base-mainnet", body.DestChainID)
}

func TestBridgeHandler_SubmitRequest_MissingFields(t *testing.T) {
	handler := NewBridgeHandler(&mockSubmitBridgeUC{}, testutil.NewMockLogger())

	body := validBridgeBody()
	body.BurnTxRef = ""
	c, w := testutil.NewTestContext(http.MethodPost, "/api/bridge/requests", body)

	handler.SubmitRequest(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBridgeHandler_SubmitRequest_BelowMinimum(t *testing.T) {
	mockUC := &mockSubmitBridgeUC{err: errors.NewValidationError("transfer amount 15000 is below the minimum of 20000")}
	handler := NewBridgeHandler(mockUC, testutil.NewMockLogger())

	body := validBridgeBody()
	body.AmountAfterFee = 15000
	c, w := testutil.NewTestContext(http.MethodPost, "/api/bridge/requests", body)

	handler.SubmitRequest(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBridgeHandler_SubmitRequest_RelayerTimeout(t *testing.T) {
	mockUC := &mockSubmitBridgeUC{err: errors.NewTimeoutError("relayer submission outcome unknown")}
	handler := NewBridgeHandler(mockUC, testutil.NewMockLogger())

	c, w := testutil.NewTestContext(http.MethodPost, "/api/bridge/requests", validBridgeBody())
	handler.SubmitRequest(c)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)

	var resp testutil.APIResponse
	require.NoError(t, testutil.ParseResponse(w, &resp))
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "timeout", resp.Error.Type)
}
