package usecases

import (
	"context"
	stderrors "errors"

	"lunaspay/internal/application/bridge/relayer"
	"lunaspay/internal/domain/bridge"
	"lunaspay/internal/shared/errors"
	"lunaspay/internal/shared/logger"
)

// SubmitBridgeRequestUseCase builds a signed mint request and hands it to
// the relayer.
type SubmitBridgeRequestUseCase struct {
	builder *BuildBridgeRequestUseCase
	client  relayer.Client
	logger  logger.Interface
}

func NewSubmitBridgeRequestUseCase(
	builder *BuildBridgeRequestUseCase,
	client relayer.Client,
	logger logger.Interface,
) *SubmitBridgeRequestUseCase {
	return &SubmitBridgeRequestUseCase{
		builder: builder,
		client:  client,
		logger:  logger,
	}
}

type SubmitBridgeRequestResult struct {
	Request    *bridge.Request
	RelayerRef string
	Status     string
}

func (uc *SubmitBridgeRequestUseCase) Execute(ctx context.Context, cmd BuildBridgeRequestCommand) (*SubmitBridgeRequestResult, error) {
	req, err := uc.builder.Execute(cmd)
	if err != nil {
		return nil, err
	}

	result, err := uc.client.Submit(ctx, req)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
			// The relayer may have accepted the mint; only reconciliation
			// against the burn nonce can tell.
			uc.logger.Warnw("relayer submission outcome unknown",
				"burn_tx_ref", req.BurnTxRef,
				"bridge_nonce", req.BridgeNonce,
				"error", err,
			)
			return nil, errors.NewTimeoutError("relayer submission outcome unknown")
		}
		uc.logger.Errorw("relayer rejected bridge request",
			"burn_tx_ref", req.BurnTxRef,
			"error", err,
		)
		return nil, errors.NewGatewayError("relayer submission failed")
	}

	uc.logger.Infow("bridge request submitted",
		"burn_tx_ref", req.BurnTxRef,
		"relayer_ref", result.RelayerRef,
		"status", result.Status,
	)
	return &SubmitBridgeRequestResult{
		Request:    req,
		RelayerRef: result.RelayerRef,
		Status:     result.Status,
	}, nil
}
