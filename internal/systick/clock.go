// Package systick provides the millisecond time base and the services built
// on it: busy-wait delays, throughput sampling and the LED blink patterns
// used to signal faults.
package systick

import (
	"context"
	"runtime"
	"sync/atomic"
)

// Clock counts SysTick interrupts. OnTick must only be called from the
// timer that drives the clock; everything else may be called from any
// goroutine.
type Clock struct {
	ms    atomic.Uint64
	hooks atomic.Pointer[[]func(ms uint64)]
}

// NewClock creates a clock at zero.
func NewClock() *Clock {
	return &Clock{}
}

// OnTick advances the clock by one millisecond and runs the subscribed
// hooks with the new count. It takes no locks.
func (c *Clock) OnTick() {
	ms := c.ms.Add(1)

	hooks := c.hooks.Load()
	if hooks == nil {
		return
	}
	for _, h := range *hooks {
		h(ms)
	}
}

// Subscribe registers fn to run on every tick, on the timer's goroutine.
// fn must not block. The hook list is replaced, never modified in place.
func (c *Clock) Subscribe(fn func(ms uint64)) {
	for {
		old := c.hooks.Load()
		var hooks []func(uint64)
		if old != nil {
			hooks = make([]func(uint64), len(*old), len(*old)+1)
			copy(hooks, *old)
		}
		hooks = append(hooks, fn)
		if c.hooks.CompareAndSwap(old, &hooks) {
			return
		}
	}
}

// Millis returns the milliseconds elapsed since the clock started.
func (c *Clock) Millis() uint64 {
	return c.ms.Load()
}

// Delay spins until ms milliseconds have elapsed on the clock or ctx is
// done. It yields the processor between polls.
func (c *Clock) Delay(ctx context.Context, ms uint64) error {
	start := c.Millis()
	for c.Millis()-start < ms {
		if err := ctx.Err(); err != nil {
			return err
		}
		runtime.Gosched()
	}
	return nil
}
