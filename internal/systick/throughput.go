package systick

import "sync/atomic"

// SampleMillis is the throughput sampling period.
const SampleMillis = 1000

// Throughput counts simulation ticks and publishes the count once per
// sampling period. It implements sim.TickCounter.
type Throughput struct {
	count atomic.Uint32
	last  atomic.Uint32

	notify func(sample uint32)
}

// NewThroughput creates a counter. notify, if non-nil, is called with each
// sample on the timer's goroutine.
func NewThroughput(notify func(sample uint32)) *Throughput {
	return &Throughput{notify: notify}
}

// Processed records one completed tick.
func (t *Throughput) Processed() {
	t.count.Add(1)
}

// Last returns the most recent sample.
func (t *Throughput) Last() uint32 {
	return t.last.Load()
}

// OnSysTick is a Clock hook. Every SampleMillis it moves the running count
// into the published sample and starts counting again.
func (t *Throughput) OnSysTick(ms uint64) {
	if ms%SampleMillis != 0 {
		return
	}
	sample := t.count.Swap(0)
	t.last.Store(sample)
	if t.notify != nil {
		t.notify(sample)
	}
}
