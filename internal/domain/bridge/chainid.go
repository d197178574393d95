package bridge

import (
	"fmt"
	"strings"
)

// ChainID names a chain in relayer configuration, e.g. "base-mainnet".
// Comparison is case-insensitive so config typos don't silently route a
// transfer back to its source chain.
type ChainID string

func NewChainID(s string) (ChainID, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", fmt.Errorf("chain id is required")
	}
	return ChainID(strings.ToLower(trimmed)), nil
}

func (c ChainID) String() string {
	return string(c)
}

func (c ChainID) Equals(other ChainID) bool {
	return strings.EqualFold(string(c), string(other))
}
