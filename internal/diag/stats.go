// Package diag exposes read-only runtime diagnostics over HTTP.
//
// The simulation loop publishes immutable Stats values; HTTP handlers only
// ever read the latest one, so serving diagnostics never blocks or races
// with the loop.
package diag

import (
	"sync/atomic"
	"time"

	"github.com/vovakirdan/twinpass/internal/sim"
)

// Stats is one published diagnostics sample.
type Stats struct {
	Frontend    string       `json:"frontend"`
	Seed        int64        `json:"seed"`
	Round       sim.Snapshot `json:"round"`
	TicksPerSec uint32       `json:"ticks_per_sec"`
	Frames      uint32       `json:"frames"`
	Scroll      int32        `json:"scroll"`
	UptimeMs    uint64       `json:"uptime_ms"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Publisher holds the latest Stats. The zero value is ready to use.
type Publisher struct {
	latest atomic.Pointer[Stats]
}

// NewPublisher creates an empty publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// Publish replaces the latest sample. s must not be modified afterwards.
func (p *Publisher) Publish(s *Stats) {
	p.latest.Store(s)
}

// Latest returns the most recent sample, or nil before the first Publish.
func (p *Publisher) Latest() *Stats {
	return p.latest.Load()
}
