// Package relayer defines the mint-side collaborator of the bridge.
package relayer

import (
	"context"
	"encoding/json"

	"lunaspay/internal/domain/bridge"
)

// SubmitResult is the relayer's acknowledgement of a mint request.
type SubmitResult struct {
	RelayerRef string
	Status     string
}

// Client submits signed mint requests to the relayer. A context deadline
// error means the outcome is unknown, not that the mint failed.
type Client interface {
	Submit(ctx context.Context, req *bridge.Request) (*SubmitResult, error)
}

type submitBody struct {
	BurnTxRef          string `json:"burn_tx_ref"`
	SourceChainID      string `json:"source_chain_id"`
	DestChainID        string `json:"dest_chain_id"`
	AmountAfterFee     int64  `json:"amount_after_fee"`
	BridgeNonce        string `json:"bridge_nonce"`
	DestinationAddress string `json:"destination_address"`
}

// EncodeBody renders the wire body for a mint request. The builder signs
// these exact bytes, so the HTTP client must send them verbatim; the
// signature itself travels in a header and is not part of the body.
func EncodeBody(req *bridge.Request) ([]byte, error) {
	return json.Marshal(submitBody{
		BurnTxRef:          req.BurnTxRef,
		SourceChainID:      req.SourceChainID,
		DestChainID:        req.DestChainID,
		AmountAfterFee:     req.AmountAfterFee,
		BridgeNonce:        req.BridgeNonce,
		DestinationAddress: req.DestinationAddress,
	})
}
