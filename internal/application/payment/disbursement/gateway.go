// Package disbursement defines the off-chain bank transfer collaborator the
// payment lifecycle dispatches to.
package disbursement

import "context"

// Gateway is the fiat disbursement collaborator. Implementations must treat
// ExternalID as a deduplication key: a retried request with the same
// ExternalID must not produce a second transfer.
type Gateway interface {
	Disburse(ctx context.Context, req DisburseRequest) (*DisburseResponse, error)
}

// DisburseRequest describes a single bank transfer.
// Amount is in integer IDR; fractional rupiah are floored by the caller.
type DisburseRequest struct {
	// ExternalID is the payment attempt id, reused verbatim on any retry
	// so the gateway can deduplicate.
	ExternalID        string
	Amount            int64
	BankCode          string
	AccountNumber     string
	AccountHolderName string
	Description       string
}

// DisburseResponse is the gateway's acknowledgement.
type DisburseResponse struct {
	ID     string
	Status string
}
