package usecases

import (
	"fmt"
	"net/http"

	"lunaspay/internal/application/bridge/relayer"
	"lunaspay/internal/application/bridge/signing"
	"lunaspay/internal/domain/bridge"
	"lunaspay/internal/shared/biztime"
	"lunaspay/internal/shared/errors"
	"lunaspay/internal/shared/id"
	"lunaspay/internal/shared/logger"
)

// BuildBridgeRequestUseCase turns a reported burn event into a signed mint
// request. It trusts the caller's amounts and nonce; its job is structural
// validation, the transfer floor, the same-chain guard and signing.
type BuildBridgeRequestUseCase struct {
	signer     signing.Signer
	destChain  bridge.ChainID
	minAmount  int64
	submitPath string
	logger     logger.Interface
}

func NewBuildBridgeRequestUseCase(
	signer signing.Signer,
	destChain bridge.ChainID,
	minAmount int64,
	submitPath string,
	logger logger.Interface,
) *BuildBridgeRequestUseCase {
	if minAmount <= 0 {
		minAmount = bridge.MinimumTransferAmount
	}
	return &BuildBridgeRequestUseCase{
		signer:     signer,
		destChain:  destChain,
		minAmount:  minAmount,
		submitPath: submitPath,
		logger:     logger,
	}
}

type BuildBridgeRequestCommand struct {
	BurnTxRef          string
	SourceChainID      string
	DestinationAddress string
	AmountAfterFee     int64
	BridgeNonce        string
}

func (uc *BuildBridgeRequestUseCase) Execute(cmd BuildBridgeRequestCommand) (*bridge.Request, error) {
	event := bridge.BurnEvent{
		BurnTxRef:      cmd.BurnTxRef,
		AmountAfterFee: cmd.AmountAfterFee,
		BridgeNonce:    cmd.BridgeNonce,
	}
	if err := event.Validate(); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.DestinationAddress == "" {
		return nil, errors.NewValidationError("destination address is required")
	}

	source, err := bridge.NewChainID(cmd.SourceChainID)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if source.Equals(uc.destChain) {
		return nil, errors.NewValidationError(
			fmt.Sprintf("source and destination chain are both %s", uc.destChain),
		)
	}
	if cmd.AmountAfterFee < uc.minAmount {
		return nil, errors.NewValidationError(
			fmt.Sprintf("transfer amount %d is below the minimum of %d", cmd.AmountAfterFee, uc.minAmount),
		)
	}

	req := &bridge.Request{
		RequestRef:         id.MustGenerateWithPrefix(id.PrefixBridge, id.DefaultLength),
		BurnTxRef:          cmd.BurnTxRef,
		SourceChainID:      source.String(),
		DestChainID:        uc.destChain.String(),
		AmountAfterFee:     cmd.AmountAfterFee,
		BridgeNonce:        cmd.BridgeNonce,
		DestinationAddress: cmd.DestinationAddress,
		Timestamp:          biztime.NowUTC(),
	}

	body, err := relayer.EncodeBody(req)
	if err != nil {
		return nil, errors.NewInternalError("failed to encode bridge request")
	}
	req.Signature = uc.signer.Sign(req.Timestamp, http.MethodPost, uc.submitPath, body)

	uc.logger.Debugw("bridge request built",
		"request_ref", req.RequestRef,
		"burn_tx_ref", cmd.BurnTxRef,
		"source_chain", source.String(),
		"dest_chain", uc.destChain.String(),
		"amount_after_fee", cmd.AmountAfterFee,
	)
	return req, nil
}
