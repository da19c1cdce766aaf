package core

import "strings"

// Button is a bit index into a Buttons mask.
type Button uint8

// Bit layout of the input mask. Entity 2 uses the same four effects shifted
// up by four bits.
const (
	P1Left  Button = iota // decrease x
	P1Up                  // decrease y
	P1Right               // increase x
	P1Down                // increase y
	P2Left
	P2Up
	P2Right
	P2Down
)

// EntityShift is the bit distance between entity 1 and entity 2 buttons.
const EntityShift Button = 4

// String returns a human-readable name for the button.
func (b Button) String() string {
	switch b {
	case P1Left:
		return "P1Left"
	case P1Up:
		return "P1Up"
	case P1Right:
		return "P1Right"
	case P1Down:
		return "P1Down"
	case P2Left:
		return "P2Left"
	case P2Up:
		return "P2Up"
	case P2Right:
		return "P2Right"
	case P2Down:
		return "P2Down"
	default:
		return "Unknown"
	}
}

// Buttons is an active-low input mask: a cleared bit requests the action.
// This matches the pull-up wiring of the gamepad port and is the only
// encoding the simulation accepts.
type Buttons uint8

// ButtonsReleased is the idle mask (nothing pressed).
const ButtonsReleased Buttons = 0xFF

// Pressed reports whether the given button is requested.
func (m Buttons) Pressed(b Button) bool {
	return m&(1<<b) == 0
}

// Press returns the mask with the given button requested.
func (m Buttons) Press(b Button) Buttons {
	return m &^ (1 << b)
}

// Release returns the mask with the given button cleared from the request set.
func (m Buttons) Release(b Button) Buttons {
	return m | (1 << b)
}

// String lists the pressed buttons, e.g. "P1Left|P2Down".
func (m Buttons) String() string {
	var names []string
	for b := P1Left; b <= P2Down; b++ {
		if m.Pressed(b) {
			names = append(names, b.String())
		}
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "|")
}
