package systick

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// runClock ticks c as fast as possible until the returned stop is called.
func runClock(c *Clock) (stop func()) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-done:
				return
			default:
				c.OnTick()
			}
		}
	}()
	return func() {
		close(done)
		wg.Wait()
	}
}

type countingLEDs struct {
	toggles atomic.Int32
}

func (l *countingLEDs) Toggle() { l.toggles.Add(1) }

func TestClockHooks(t *testing.T) {
	c := NewClock()
	var seen []uint64
	c.Subscribe(func(ms uint64) { seen = append(seen, ms) })

	for i := 0; i < 3; i++ {
		c.OnTick()
	}

	if c.Millis() != 3 {
		t.Errorf("Millis() = %d, expected 3", c.Millis())
	}
	if len(seen) != 3 || seen[0] != 1 || seen[2] != 3 {
		t.Errorf("hook saw %v, expected [1 2 3]", seen)
	}
}

func TestClockSubscribeWhileTicking(t *testing.T) {
	c := NewClock()
	stop := runClock(c)

	var counts [4]atomic.Uint64
	for i := range counts {
		n := &counts[i]
		c.Subscribe(func(uint64) { n.Add(1) })
	}
	target := c.Millis() + 100
	for c.Millis() < target {
		time.Sleep(time.Millisecond)
	}
	stop()

	for i := range counts {
		if counts[i].Load() == 0 {
			t.Errorf("hook %d never ran", i)
		}
	}
}

func TestClockDelay(t *testing.T) {
	c := NewClock()
	stop := runClock(c)
	defer stop()

	start := c.Millis()
	if err := c.Delay(context.Background(), 50); err != nil {
		t.Fatalf("Delay() error = %v", err)
	}
	if elapsed := c.Millis() - start; elapsed < 50 {
		t.Errorf("Delay returned after %d ms, expected at least 50", elapsed)
	}
}

func TestClockDelayCancelled(t *testing.T) {
	c := NewClock() // never ticks
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := c.Delay(ctx, 1); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Delay() error = %v, expected deadline exceeded", err)
	}
}

func TestThroughputSampling(t *testing.T) {
	var samples []uint32
	tp := NewThroughput(func(s uint32) { samples = append(samples, s) })
	c := NewClock()
	c.Subscribe(tp.OnSysTick)

	for i := 0; i < 42; i++ {
		tp.Processed()
	}
	for i := 0; i < SampleMillis-1; i++ {
		c.OnTick()
	}
	if tp.Last() != 0 {
		t.Fatalf("Last() = %d before the first sample, expected 0", tp.Last())
	}

	c.OnTick()
	if tp.Last() != 42 {
		t.Errorf("Last() = %d, expected 42", tp.Last())
	}

	tp.Processed()
	for i := 0; i < SampleMillis; i++ {
		c.OnTick()
	}
	if tp.Last() != 1 {
		t.Errorf("second sample = %d, expected 1", tp.Last())
	}

	if len(samples) != 2 || samples[0] != 42 || samples[1] != 1 {
		t.Errorf("notified %v, expected [42 1]", samples)
	}
}

func TestBlink(t *testing.T) {
	c := NewClock()
	stop := runClock(c)
	defer stop()

	leds := &countingLEDs{}
	if err := Blink(context.Background(), c, leds, 3); err != nil {
		t.Fatalf("Blink() error = %v", err)
	}
	if n := leds.toggles.Load(); n != 6 {
		t.Errorf("toggles = %d, expected 6", n)
	}
	if c.Millis() < 6*BlinkMillis {
		t.Errorf("Blink finished after %d ms, expected at least %d", c.Millis(), 6*BlinkMillis)
	}
}

func TestFailStop(t *testing.T) {
	c := NewClock()
	stop := runClock(c)
	defer stop()

	ctx, cancel := context.WithCancel(context.Background())
	leds := &countingLEDs{}

	done := make(chan error, 1)
	go func() { done <- FailStop(ctx, c, leds) }()

	for leds.toggles.Load() < 4 {
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("FailStop() error = %v, expected context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("FailStop did not return after cancel")
	}
}
