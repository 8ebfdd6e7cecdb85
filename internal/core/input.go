package core

// Action represents a semantic game action, abstracted from physical key presses.
// Games consume logical intents; the platform decides which keys produce them.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A - shift one lane left
	ActionRight          // Right arrow, D - shift one lane right
	ActionJump           // Space, W, Up - jump (second press mid-air double-jumps)
	ActionConfirm        // Enter - confirm selection in menus
	ActionBack           // B - go back
	ActionRestart        // R key - restart after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P, Escape - pause/unpause game
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame holds the discrete key-down events collected between two
// simulation ticks. Events keep their arrival order because lane changes
// are not commutative with pause (a "right" after "pause" is rejected).
type InputFrame struct {
	events []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set appends an action to this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.events = append(f.events, a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	for _, e := range f.events {
		if e == a {
			return true
		}
	}
	return false
}

// Count returns how many times an action was triggered this frame.
func (f InputFrame) Count(a Action) int {
	n := 0
	for _, e := range f.events {
		if e == a {
			n++
		}
	}
	return n
}

// Events returns the actions in arrival order.
func (f InputFrame) Events() []Action {
	return f.events
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return len(f.events) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.events = f.events[:0]
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := InputFrame{events: make([]Action, len(f.events))}
	copy(clone.events, f.events)
	return clone
}
