package usecases

import "fmt"

// DisbursementPolicy controls how confirmation treats a merchant that has
// no settlement mapping.
type DisbursementPolicy string

const (
	// PolicyRequireMapping rejects confirmation for unregistered merchants.
	PolicyRequireMapping DisbursementPolicy = "require_mapping"
	// PolicyAllowSyntheticFallback completes the attempt with a synthetic
	// gateway reference instead of calling the disbursement gateway. Meant
	// for demo and sandbox deployments only.
	PolicyAllowSyntheticFallback DisbursementPolicy = "allow_synthetic_fallback"
)

// ParseDisbursementPolicy maps a config value to a policy, defaulting to
// PolicyRequireMapping for the empty string.
func ParseDisbursementPolicy(s string) (DisbursementPolicy, error) {
	switch DisbursementPolicy(s) {
	case PolicyRequireMapping, PolicyAllowSyntheticFallback:
		return DisbursementPolicy(s), nil
	case "":
		return PolicyRequireMapping, nil
	default:
		return "", fmt.Errorf("unknown disbursement policy: %q", s)
	}
}
