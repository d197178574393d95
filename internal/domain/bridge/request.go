// Package bridge models the burn-and-mint transfer between chains. A burn on
// the source chain is reported by a trusted caller; the service assembles a
// signed mint request for the relayer. Nothing here is persisted.
package bridge

import (
	"fmt"
	"time"
)

// MinimumTransferAmount is the default floor in minor currency units below
// which a bridge transfer is rejected outright.
const MinimumTransferAmount int64 = 20000

// BurnEvent carries the values already emitted on the source chain. The
// amount after fee and the nonce are trusted verbatim; the fee is never
// recomputed here.
type BurnEvent struct {
	BurnTxRef      string
	AmountAfterFee int64
	BridgeNonce    string
}

// Validate checks the structural completeness of a burn event.
func (e BurnEvent) Validate() error {
	if e.BurnTxRef == "" {
		return fmt.Errorf("burn transaction reference is required")
	}
	if e.BridgeNonce == "" {
		return fmt.Errorf("bridge nonce is required")
	}
	if e.AmountAfterFee <= 0 {
		return fmt.Errorf("amount after fee must be positive")
	}
	return nil
}

// Request is the assembled, signed submission for the relayer. Ephemeral:
// built once per burn event, submitted, discarded. RequestRef is a local
// correlation id for logs and responses; it is not part of the signed body.
type Request struct {
	RequestRef         string
	BurnTxRef          string
	SourceChainID      string
	DestChainID        string
	AmountAfterFee     int64
	BridgeNonce        string
	DestinationAddress string
	Signature          string
	Timestamp          time.Time
}
