package state

// Phase is the persistent state of the scene transition machine.
type Phase int

const (
	// PhaseUninitialized: no scene has been installed yet.
	PhaseUninitialized Phase = iota
	// PhaseIdle: a scene is current and no transition is in flight.
	PhaseIdle
	// PhaseTransitionPending: a scene type was accepted; the swap happens on
	// the next Update.
	PhaseTransitionPending
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "Uninitialized"
	case PhaseIdle:
		return "Idle"
	case PhaseTransitionPending:
		return "TransitionPending"
	default:
		return "Unknown"
	}
}
