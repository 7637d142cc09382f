// Package input defines the per-frame input snapshot consumed by components.
package input

// State holds the input for one frame.
type State struct {
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Confirm bool // just pressed
	Cancel  bool // just pressed
	Fire    bool // just pressed
}

// Source yields one State per call. Live sources sample devices; replay
// sources return recorded frames.
type Source interface {
	GetInput() State
}

// Axis returns the horizontal and vertical direction as -1, 0 or 1.
func (s State) Axis() (x, y int) {
	if s.Left {
		x--
	}
	if s.Right {
		x++
	}
	if s.Up {
		y--
	}
	if s.Down {
		y++
	}
	return x, y
}

// Fixed is a Source that always returns the same State.
type Fixed State

func (f Fixed) GetInput() State { return State(f) }
