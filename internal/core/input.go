package core

import "math"

// Action represents a semantic game action, abstracted from physical key presses,
// touch gestures and on-screen buttons.
type Action int

const (
	ActionNone        Action = iota
	ActionLeft               // A, Left arrow, swipe left
	ActionRight              // D, Right arrow, swipe right
	ActionConfirm            // Space, Enter - start from the title screen
	ActionPause              // Esc, P - pause/resume
	ActionRestart            // R - restart after game over or while paused
	ActionTap                // Tap gesture - start, restart or resume depending on state
	ActionAbort              // X - end the current run
	ActionToggleSound        // M - mute/unmute feedback tones
	ActionQuit               // Q, Ctrl+C - exit
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
	case ActionConfirm:
		return "Confirm"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionTap:
		return "Tap"
	case ActionAbort:
		return "Abort"
	case ActionToggleSound:
		return "ToggleSound"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// InputFrame collects the actions triggered between two simulation ticks.
type InputFrame struct {
	// Actions keeps arrival order so that two moves in one frame both apply.
	Actions []Action
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make([]Action, 0, 4)}
}

// Set records an action for this frame.
func (f *InputFrame) Set(a Action) {
	if a == ActionNone {
		return
	}
	f.Actions = append(f.Actions, a)
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.Actions = f.Actions[:0]
}

// DefaultSwipeThreshold is the minimum travel, in playfield units, for a
// pointer drag to count as a swipe.
const DefaultSwipeThreshold = 30

// ClassifySwipe turns a pointer drag into an action.
// Horizontal travel beyond the threshold that dominates vertical travel is a
// lane change; a drag shorter than the threshold on both axes is a tap.
// Anything else (mostly vertical swipes) is ignored.
func ClassifySwipe(dx, dy, threshold float64) Action {
	ax, ay := math.Abs(dx), math.Abs(dy)

	if ax > ay && ax > threshold {
		if dx > 0 {
			return ActionRight
		}
		return ActionLeft
	}
	if ax < threshold && ay < threshold {
		return ActionTap
	}
	return ActionNone
}
