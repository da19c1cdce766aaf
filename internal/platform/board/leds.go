package board

import (
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// LEDs is the status LED bank. State changes are logged at debug level.
type LEDs struct {
	logger  *log.Logger
	on      atomic.Bool
	toggles atomic.Uint64
}

// NewLEDs creates an LED bank, initially off.
func NewLEDs(logger *log.Logger) *LEDs {
	return &LEDs{logger: logger}
}

// Toggle flips all LEDs.
func (l *LEDs) Toggle() {
	on := !l.on.Load()
	l.on.Store(on)
	n := l.toggles.Add(1)
	if l.logger != nil {
		l.logger.Debug("leds", "on", on, "toggles", n)
	}
}

// On reports whether the LEDs are lit.
func (l *LEDs) On() bool {
	return l.on.Load()
}

// Toggles returns how many times the LEDs have changed state.
func (l *LEDs) Toggles() uint64 {
	return l.toggles.Load()
}
