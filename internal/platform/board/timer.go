package board

import (
	"context"
	"time"
)

// SysTickPeriod is the emulated SysTick interval.
const SysTickPeriod = time.Millisecond

// Timer emulates the SysTick interrupt with a ticker goroutine.
type Timer struct {
	period  time.Duration
	handler func()
}

// NewTimer creates a timer firing every period.
func NewTimer(period time.Duration) *Timer {
	if period <= 0 {
		period = SysTickPeriod
	}
	return &Timer{period: period}
}

// Handle registers the interrupt handler.
func (t *Timer) Handle(fn func()) {
	t.handler = fn
}

// Run fires the handler every period until ctx is done. Ticks that fall
// behind are dropped by the ticker, like a missed interrupt.
func (t *Timer) Run(ctx context.Context) error {
	ticker := time.NewTicker(t.period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if t.handler != nil {
				t.handler()
			}
		}
	}
}
