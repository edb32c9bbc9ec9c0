package core

// Action represents a semantic host action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart after the run ends
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
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

// InputFrame represents the input state for a single simulation tick.
// Move is the joystick vector; its length never exceeds 1. Host actions
// such as pause or restart are handled by the host, not the simulation.
type InputFrame struct {
	Move Vec
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// MoveInput creates an input frame carrying only a movement vector.
func MoveInput(x, y float64) InputFrame {
	f := NewInputFrame()
	f.SetMove(x, y)
	return f
}

// SetMove sets the movement vector, clamping its length to 1.
func (f *InputFrame) SetMove(x, y float64) {
	v := V(ClampF(x, -1, 1), ClampF(y, -1, 1))
	if v.LenSq() > 1 {
		v = v.Norm()
	}
	f.Move = v
}
