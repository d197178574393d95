package usecases

import (
	"context"
	stderrors "errors"
	"fmt"

	"lunaspay/internal/application/payment/disbursement"
	"lunaspay/internal/domain/merchant"
	"lunaspay/internal/domain/payment"
	vo "lunaspay/internal/domain/payment/valueobjects"
	"lunaspay/internal/shared/biztime"
	"lunaspay/internal/shared/errors"
	"lunaspay/internal/shared/logger"
)

// ConfirmPaymentUseCase drives a pending attempt through disbursement.
// Concurrency safety rests on two layers: a distributed lock keeps racing
// confirmations from doing duplicate gateway work, and the repository's
// conditional status update is the correctness backstop when the lock is
// unavailable or expires.
type ConfirmPaymentUseCase struct {
	attemptRepo payment.AttemptRepository
	resolver    MerchantResolver
	gateway     disbursement.Gateway
	lock        ConfirmLocker
	policy      DisbursementPolicy
	logger      logger.Interface
}

func NewConfirmPaymentUseCase(
	attemptRepo payment.AttemptRepository,
	resolver MerchantResolver,
	gateway disbursement.Gateway,
	lock ConfirmLocker,
	policy DisbursementPolicy,
	logger logger.Interface,
) *ConfirmPaymentUseCase {
	return &ConfirmPaymentUseCase{
		attemptRepo: attemptRepo,
		resolver:    resolver,
		gateway:     gateway,
		lock:        lock,
		policy:      policy,
		logger:      logger,
	}
}

type ConfirmPaymentCommand struct {
	AttemptID         string
	WalletRef         string
	CounterpartyTxRef string
}

type ConfirmPaymentResult struct {
	Attempt *payment.Attempt
}

func (uc *ConfirmPaymentUseCase) Execute(ctx context.Context, cmd ConfirmPaymentCommand) (*ConfirmPaymentResult, error) {
	if cmd.AttemptID == "" {
		return nil, errors.NewValidationError("attempt id is required")
	}
	if cmd.WalletRef == "" {
		return nil, errors.NewValidationError("wallet reference is required")
	}
	if cmd.CounterpartyTxRef == "" {
		return nil, errors.NewValidationError("counterparty transaction reference is required")
	}

	acquired, err := uc.lock.Acquire(ctx, cmd.AttemptID)
	if err != nil {
		uc.logger.Warnw("confirm lock unavailable, relying on conditional update",
			"attempt_id", cmd.AttemptID,
			"error", err,
		)
	} else if !acquired {
		return nil, errors.NewConflictError("payment attempt is being confirmed by another request")
	} else {
		defer func() {
			if err := uc.lock.Release(context.WithoutCancel(ctx), cmd.AttemptID); err != nil {
				uc.logger.Warnw("failed to release confirm lock", "attempt_id", cmd.AttemptID, "error", err)
			}
		}()
	}

	attempt, err := uc.attemptRepo.GetByAttemptID(ctx, cmd.AttemptID)
	if err != nil {
		return nil, errors.NewStorageError("failed to load payment attempt")
	}
	if attempt == nil {
		return nil, errors.NewNotFoundError("payment attempt not found")
	}
	if attempt.WalletRef() != cmd.WalletRef {
		return nil, errors.NewForbiddenError("payment attempt belongs to another wallet")
	}
	if attempt.Status() != vo.AttemptStatusPending {
		return nil, errors.NewConflictError(
			fmt.Sprintf("payment attempt already %s", attempt.Status()),
		)
	}

	won, err := uc.attemptRepo.UpdateStatusIf(ctx, cmd.AttemptID,
		vo.AttemptStatusPending, vo.AttemptStatusProcessing,
		payment.StatusUpdate{CounterpartyTxRef: &cmd.CounterpartyTxRef},
	)
	if err != nil {
		return nil, errors.NewStorageError("failed to start payment processing")
	}
	if !won {
		return nil, errors.NewConflictError("payment attempt was confirmed by another request")
	}

	registration, err := uc.resolver.Execute(ctx, merchant.Identifier{
		NMID:         attempt.Merchant().NMID(),
		MerchantName: attempt.Merchant().Name(),
	})
	if err != nil {
		// Transient lookup failure, not a verdict on the merchant. No
		// terminal transition: the attempt stays processing until
		// reconciliation settles it, same as an unknown gateway outcome.
		uc.logger.Warnw("merchant resolution unavailable",
			"attempt_id", cmd.AttemptID,
			"error", err,
		)
		return nil, errors.NewStorageError("failed to resolve merchant")
	}

	if registration == nil {
		if uc.policy == PolicyAllowSyntheticFallback {
			syntheticRef := "synthetic_" + cmd.AttemptID
			uc.logger.Infow("completing attempt with synthetic disbursement",
				"attempt_id", cmd.AttemptID,
				"merchant_name", attempt.Merchant().Name(),
			)
			return uc.succeed(ctx, cmd.AttemptID, syntheticRef)
		}
		return nil, uc.fail(ctx, cmd.AttemptID, "merchant not registered",
			errors.NewUnprocessableError("merchant has no settlement mapping",
				attempt.Merchant().Name()))
	}

	resp, err := uc.gateway.Disburse(ctx, disbursement.DisburseRequest{
		ExternalID:        cmd.AttemptID,
		Amount:            attempt.Amount().Amount(),
		BankCode:          registration.BankCode(),
		AccountNumber:     registration.AccountNumber(),
		AccountHolderName: registration.AccountName(),
		Description: fmt.Sprintf("QRIS payment to %s on %s",
			attempt.Merchant().Name(),
			biztime.FormatBusiness(biztime.NowUTC(), "2 Jan 2006")),
	})
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(err, context.Canceled) {
			// Outcome unknown: the disbursement may have gone through. The
			// attempt stays processing until reconciliation settles it.
			uc.logger.Warnw("disbursement outcome unknown",
				"attempt_id", cmd.AttemptID,
				"error", err,
			)
			return nil, errors.NewTimeoutError("disbursement outcome unknown")
		}
		return nil, uc.fail(ctx, cmd.AttemptID, err.Error(),
			errors.NewGatewayError("disbursement failed"))
	}

	return uc.succeed(ctx, cmd.AttemptID, resp.ID)
}

// fail moves the attempt to failed and returns result. The original error
// is returned to the caller even if the status write itself fails.
func (uc *ConfirmPaymentUseCase) fail(ctx context.Context, attemptID, reason string, result *errors.AppError) error {
	now := biztime.NowUTC()
	ok, err := uc.attemptRepo.UpdateStatusIf(ctx, attemptID,
		vo.AttemptStatusProcessing, vo.AttemptStatusFailed,
		payment.StatusUpdate{FailureReason: &reason, CompletedAt: &now},
	)
	if err != nil || !ok {
		uc.logger.Errorw("failed to record attempt failure",
			"attempt_id", attemptID,
			"reason", reason,
			"error", err,
		)
	}
	return result
}

func (uc *ConfirmPaymentUseCase) succeed(ctx context.Context, attemptID, gatewayRef string) (*ConfirmPaymentResult, error) {
	now := biztime.NowUTC()
	ok, err := uc.attemptRepo.UpdateStatusIf(ctx, attemptID,
		vo.AttemptStatusProcessing, vo.AttemptStatusSuccess,
		payment.StatusUpdate{GatewayRef: &gatewayRef, CompletedAt: &now},
	)
	if err != nil {
		return nil, errors.NewStorageError("failed to record attempt success")
	}
	if !ok {
		return nil, errors.NewConflictError("payment attempt left processing unexpectedly")
	}

	attempt, err := uc.attemptRepo.GetByAttemptID(ctx, attemptID)
	if err != nil {
		return nil, errors.NewStorageError("failed to reload payment attempt")
	}

	uc.logger.Infow("payment attempt succeeded",
		"attempt_id", attemptID,
		"gateway_ref", gatewayRef,
	)
	return &ConfirmPaymentResult{Attempt: attempt}, nil
}
