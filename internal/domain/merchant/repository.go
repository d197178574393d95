package merchant

import "context"

// RegistrationRepository is the read side the payment flow depends on.
// Implementations must be deterministic: when several active registrations
// match a name lookup, the one with the lowest id wins.
type RegistrationRepository interface {
	Create(ctx context.Context, registration *Registration) error
	Update(ctx context.Context, registration *Registration) error
	GetByRegistrationID(ctx context.Context, registrationID string) (*Registration, error)
	// FindActiveByNMID returns the active registration with exactly this
	// NMID, or nil when none exists. The match is case-sensitive.
	FindActiveByNMID(ctx context.Context, nmid string) (*Registration, error)
	// FindActiveByNameContains returns the first active registration whose
	// name and the given name contain one another case-insensitively, in
	// either direction, or nil when none match.
	FindActiveByNameContains(ctx context.Context, name string) (*Registration, error)
	ListActive(ctx context.Context) ([]*Registration, error)
}
