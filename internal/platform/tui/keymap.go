package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/twinpass/internal/core"
	"github.com/vovakirdan/twinpass/internal/sim"
)

// KeyMap defines the key bindings of the play screen.
type KeyMap struct {
	Moves     [8]key.Binding // indexed by core.Button
	Autopilot key.Binding
	Pause     key.Binding
	Restart   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns WASD for entity 1 and the arrow keys for entity 2.
func DefaultKeyMap() KeyMap {
	move := func(k, help string) key.Binding {
		return key.NewBinding(key.WithKeys(k), key.WithHelp(k, help))
	}
	return KeyMap{
		Moves: [8]key.Binding{
			core.P1Left:  move("a", "left"),
			core.P1Up:    move("w", "up"),
			core.P1Right: move("d", "right"),
			core.P1Down:  move("s", "down"),
			core.P2Left:  move("left", "left"),
			core.P2Up:    move("up", "up"),
			core.P2Right: move("right", "right"),
			core.P2Down:  move("down", "down"),
		},
		Autopilot: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "autopilot"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Autopilot, k.Pause, k.Restart, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Moves[core.P1Up], k.Moves[core.P1Left], k.Moves[core.P1Down], k.Moves[core.P1Right]},
		{k.Moves[core.P2Up], k.Moves[core.P2Left], k.Moves[core.P2Down], k.Moves[core.P2Right]},
		{k.Autopilot, k.Pause, k.Restart, k.Quit},
	}
}

// Button returns the movement button bound to msg, if any.
func (k KeyMap) Button(msg tea.KeyMsg) (core.Button, bool) {
	for b, binding := range k.Moves {
		if key.Matches(msg, binding) {
			return core.Button(b), true
		}
	}
	return 0, false
}

// DefaultHoldTicks is how long a key press keeps its button down. Terminals
// report presses and auto-repeats but never releases, so a press is turned
// into a short hold that repeats keep topping up.
const DefaultHoldTicks = 24

// Keyboard is the sim.InputSource fed from terminal key presses.
// It must only be used from the goroutine that steps the engine.
type Keyboard struct {
	hold int
	held [8]int
}

// NewKeyboard creates a keyboard whose presses last hold ticks.
func NewKeyboard(hold int) *Keyboard {
	if hold <= 0 {
		hold = DefaultHoldTicks
	}
	return &Keyboard{hold: hold}
}

// Press holds b down for the configured window and releases the opposite
// direction of the same entity.
func (k *Keyboard) Press(b core.Button) {
	if int(b) >= len(k.held) {
		return
	}
	// +1 because the engine ages holds before it samples them.
	k.held[b] = k.hold + 1
	k.held[b^2] = 0
}

// ReleaseAll drops every held button.
func (k *Keyboard) ReleaseAll() {
	k.held = [8]int{}
}

// ClearPending ages every hold by one tick. The engine calls it once at the
// start of each tick.
func (k *Keyboard) ClearPending() {
	for i := range k.held {
		if k.held[i] > 0 {
			k.held[i]--
		}
	}
}

// Buttons implements sim.InputSource.
func (k *Keyboard) Buttons(*sim.Round) core.Buttons {
	mask := core.ButtonsReleased
	for b, n := range k.held {
		if n > 0 {
			mask = mask.Press(core.Button(b))
		}
	}
	return mask
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	}

	return MenuActionNone
}
