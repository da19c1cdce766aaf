// Package machine assembles a runnable simulation: the emulated board, the
// scan-out buffer and the engine drawing into it. Frontends own a Machine
// and decide how often to step and scan it.
package machine

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/twinpass/internal/core"
	"github.com/vovakirdan/twinpass/internal/diag"
	"github.com/vovakirdan/twinpass/internal/display"
	"github.com/vovakirdan/twinpass/internal/platform/board"
	"github.com/vovakirdan/twinpass/internal/random"
	"github.com/vovakirdan/twinpass/internal/registry"
	"github.com/vovakirdan/twinpass/internal/sim"
)

// Machine is one board running one engine. Step, Scan and Publish must be
// called from a single goroutine; the board's timer runs on its own.
type Machine struct {
	Board  *board.Board
	FB     *display.FrameBuffer
	Engine *sim.Engine

	frontend string
	rng      *random.Rand
	stats    *diag.Publisher
	logger   *log.Logger
	started  time.Time
}

// New builds a machine for frontend. A zero seed is replaced with a
// time-based one. An error means the display failed bring-up; the board is
// returned anyway so the caller can fail-stop on it.
func New(frontend string, env registry.Env, input sim.InputSource) (*Machine, error) {
	logger := env.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.WithPrefix(frontend)

	seed := env.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m := &Machine{
		Board:    board.New(env.Board, logger),
		FB:       display.New(),
		frontend: frontend,
		rng:      random.New(seed),
		stats:    env.Stats,
		logger:   logger,
		started:  time.Now(),
	}

	if err := m.FB.Init(); err != nil {
		return m, fmt.Errorf("machine: display bring-up: %w", err)
	}

	m.Engine = sim.NewEngine(m.FB, input, m.rng,
		sim.WithLogger(logger),
		sim.WithTickCounter(m.Board.Throughput),
	)
	logger.Debug("machine ready", "seed", seed)
	return m, nil
}

// Seed returns the obstacle generator seed in use.
func (m *Machine) Seed() int64 {
	return m.rng.Seed()
}

// Logger returns the machine's logger, prefixed with the frontend ID.
func (m *Machine) Logger() *log.Logger {
	return m.logger
}

// Step runs n simulation ticks. It stops at the first invariant violation.
func (m *Machine) Step(n int) error {
	for i := 0; i < n; i++ {
		if _, err := m.Engine.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Scan refreshes the panel into dst, which must hold board.PanelPixels.
func (m *Machine) Scan(dst []core.RGB565) {
	m.Board.Raster.Scan(m.FB, dst)
}

// Publish sends the current counters to the diagnostics publisher, if any.
func (m *Machine) Publish() {
	if m.stats == nil {
		return
	}
	m.stats.Publish(&diag.Stats{
		Frontend:    m.frontend,
		Seed:        m.rng.Seed(),
		Round:       m.Engine.Snapshot(),
		TicksPerSec: m.Board.Throughput.Last(),
		Frames:      m.Board.Sync.Frames(),
		Scroll:      m.Board.Sync.Scroll(),
		UptimeMs:    m.Board.Clock.Millis(),
		UpdatedAt:   time.Now(),
	})
}

// Result summarises the session so far.
func (m *Machine) Result() registry.Result {
	s := m.Engine.Snapshot()
	return registry.Result{
		Frontend: m.frontend,
		Seed:     m.rng.Seed(),
		Ticks:    s.Ticks,
		Rounds:   s.Rounds,
		MaxScore: s.MaxScore,
		Elapsed:  time.Since(m.started),
	}
}

// FailStop signals a fatal fault on the board LEDs until ctx is done and
// returns cause. The board timer must be running.
func (m *Machine) FailStop(ctx context.Context, cause error) error {
	return m.Board.FailStop(ctx, cause)
}
