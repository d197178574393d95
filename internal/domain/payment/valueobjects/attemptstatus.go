package valueobjects

// AttemptStatus is the lifecycle state of a payment attempt. Transitions are
// one-directional: pending → processing → success/failed. A terminal status
// is never left.
type AttemptStatus string

const (
	AttemptStatusPending    AttemptStatus = "pending"
	AttemptStatusProcessing AttemptStatus = "processing"
	AttemptStatusSuccess    AttemptStatus = "success"
	AttemptStatusFailed     AttemptStatus = "failed"
)

func (s AttemptStatus) IsValid() bool {
	switch s {
	case AttemptStatusPending, AttemptStatusProcessing, AttemptStatusSuccess, AttemptStatusFailed:
		return true
	default:
		return false
	}
}

func (s AttemptStatus) IsPending() bool {
	return s == AttemptStatusPending
}

func (s AttemptStatus) IsProcessing() bool {
	return s == AttemptStatusProcessing
}

func (s AttemptStatus) IsFinal() bool {
	return s == AttemptStatusSuccess || s == AttemptStatusFailed
}

// CanTransitionTo reports whether moving to next is a legal forward step.
func (s AttemptStatus) CanTransitionTo(next AttemptStatus) bool {
	switch s {
	case AttemptStatusPending:
		return next == AttemptStatusProcessing
	case AttemptStatusProcessing:
		return next == AttemptStatusSuccess || next == AttemptStatusFailed
	default:
		return false
	}
}

func (s AttemptStatus) String() string {
	return string(s)
}
