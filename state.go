package scratch

import "fmt"

// State is the lifecycle state of a Card.
type State uint8

const (
	// StateLocked rejects pointer input. Cards start locked and lock again
	// while Set repaints and after a clear.
	StateLocked State = iota

	// StateReady accepts a pointer-down.
	StateReady

	// StateStroking erases on every pointer-move.
	StateStroking

	// StateClearing is fading out the cover after completion.
	StateClearing

	// StateCleared has removed the cover and fired OnSuccess.
	StateCleared
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case StateLocked:
		return "Locked"
	case StateReady:
		return "Ready"
	case StateStroking:
		return "Stroking"
	case StateClearing:
		return "Clearing"
	case StateCleared:
		return "Cleared"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}
