package sim

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/twinpass/internal/core"
	"github.com/vovakirdan/twinpass/internal/random"
)

// HUD positions as scan-out buffer offsets.
const (
	ScorePos    = 250 + 10*VirtualWidth
	MaxScorePos = 276 + 10*VirtualWidth
)

// Display is the drawing capability of the scan-out buffer. All calls are
// fire-and-forget writes; the engine never reads pixels back.
type Display interface {
	Clear()
	DrawEntity(e Entity)
	EraseEntity(e Entity)
	DrawObstacle(o *Obstacle)
	DrawNumber(value int, pos int, color core.RGB565)
	DrawThroughput(value uint32)
}

// InputSource supplies the active-low button mask for a tick.
type InputSource interface {
	Buttons(r *Round) core.Buttons
}

// pendingClearer is implemented by input sources that latch edge signals
// which must be dropped at the start of every tick.
type pendingClearer interface {
	ClearPending()
}

// TickCounter receives one Processed call per completed tick and reports the
// most recent per-second sample.
type TickCounter interface {
	Processed()
	Last() uint32
}

// Round is the state of one play session. All of it except MaxScore is
// discarded on restart.
//
// Tick is both the number of ticks since the current obstacle was generated
// and the row the obstacle's gap is aligned to for collision and autopilot
// purposes. It resets to 1 when a new obstacle is generated.
type Round struct {
	Entity1  Entity
	Entity2  Entity
	Obstacle Obstacle
	Score    int
	MaxScore int
	Tick     int
}

// NewRound starts a fresh round carrying maxScore over.
func NewRound(maxScore int, src random.Source) Round {
	return Round{
		Entity1:  NewEntity(Entity1SpawnX, Entity1SpawnY, Entity1Hue),
		Entity2:  NewEntity(Entity2SpawnX, Entity2SpawnY, Entity2Hue),
		Obstacle: GenerateObstacle(src),
		MaxScore: maxScore,
	}
}

// advanceObstacle moves the obstacle one row and, once a cycle completes,
// scores it and swaps in a freshly generated obstacle. It reports whether a
// new obstacle was generated.
func (r *Round) advanceObstacle(src random.Source) bool {
	r.Obstacle.Rect.Y = core.Max(r.Tick-2, 0)
	r.Tick++
	r.Obstacle.ScanOffset += VirtualWidth

	if r.Tick != CycleTicks {
		return false
	}

	r.Score++
	if r.Score > r.MaxScore {
		r.MaxScore = r.Score
	}
	r.Tick = 1
	r.Obstacle = GenerateObstacle(src)
	return true
}

// StepResult describes what happened during one tick.
type StepResult struct {
	Buttons   core.Buttons
	Reverts   int  // separation corrections applied
	Restarted bool // a lethal contact ended the round
	Cycled    bool // an obstacle was passed and replaced
}

// Snapshot is a copy of the round counters for readers outside the loop.
type Snapshot struct {
	Score    int    `json:"score"`
	MaxScore int    `json:"max_score"`
	Tick     int    `json:"tick"`
	Rounds   int    `json:"rounds"`
	Ticks    uint64 `json:"ticks"`
	Gap1     Gap    `json:"gap1"`
	Gap2     *Gap   `json:"gap2,omitempty"`
}

// Engine is the tick orchestrator. It is not safe for concurrent use: one
// loop owns it and calls Step repeatedly.
type Engine struct {
	display Display
	input   InputSource
	rng     random.Source
	counter TickCounter
	logger  *log.Logger

	round  Round
	rounds int
	ticks  uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for round events.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithTickCounter sets the throughput counter fed by Step.
func WithTickCounter(c TickCounter) Option {
	return func(e *Engine) {
		e.counter = c
	}
}

// nopCounter is used when no throughput reporting is wired.
type nopCounter struct{}

func (nopCounter) Processed()   {}
func (nopCounter) Last() uint32 { return 0 }

// NewEngine creates an engine and starts its first round.
func NewEngine(d Display, in InputSource, src random.Source, opts ...Option) *Engine {
	e := &Engine{
		display: d,
		input:   in,
		rng:     src,
		counter: nopCounter{},
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.restart(0)
	return e
}

// Round returns the live round state. The pointer is only valid on the
// goroutine that calls Step.
func (e *Engine) Round() *Round {
	return &e.round
}

// SetInput swaps the input source between ticks.
func (e *Engine) SetInput(in InputSource) {
	e.input = in
}

// Restart discards the current round and starts a new one, keeping the
// running max score.
func (e *Engine) Restart() {
	e.restart(e.round.MaxScore)
}

func (e *Engine) restart(maxScore int) {
	e.display.Clear()
	e.round = NewRound(maxScore, e.rng)
	e.rounds++
}

// Step runs one simulation tick: input, movement, separation, obstacle
// contact, obstacle advance and drawing, in that order. A lethal contact
// restarts the round and skips the rest of the tick.
//
// The returned error is always an *InvariantError and means the simulation
// state can no longer be trusted.
func (e *Engine) Step() (StepResult, error) {
	var res StepResult
	r := &e.round

	if c, ok := e.input.(pendingClearer); ok {
		c.ClearPending()
	}

	prev1, prev2 := r.Entity1.Rect, r.Entity2.Rect
	e.display.EraseEntity(r.Entity1)
	e.display.EraseEntity(r.Entity2)

	res.Buttons = e.input.Buttons(r)
	r.Entity1.Apply(res.Buttons, 0)
	r.Entity2.Apply(res.Buttons, core.EntityShift)

	reverts, err := Resolve(&r.Entity1, &r.Entity2, prev1, prev2)
	res.Reverts = reverts
	if err != nil {
		return res, err
	}

	e.ticks++

	if Collides(r, r.Entity1.Rect) || Collides(r, r.Entity2.Rect) {
		e.logger.Debug("round lost", "score", r.Score, "max_score", r.MaxScore, "tick", r.Tick)
		e.restart(r.MaxScore)
		res.Restarted = true
		return res, nil
	}

	if res.Cycled = r.advanceObstacle(e.rng); res.Cycled {
		e.logger.Debug("obstacle passed", "score", r.Score, "max_score", r.MaxScore, "two_gaps", r.Obstacle.Gap2 != nil, "gap_width", r.Obstacle.Gap1.Width())
	}
	e.display.DrawObstacle(&r.Obstacle)

	e.display.DrawEntity(r.Entity1)
	r.Entity1.advanceHue()
	e.display.DrawEntity(r.Entity2)
	r.Entity2.advanceHue()

	e.display.DrawNumber(r.Score, ScorePos, core.ColorWhite)
	e.display.DrawNumber(r.MaxScore, MaxScorePos, core.ColorMaxScore)

	e.counter.Processed()
	e.display.DrawThroughput(e.counter.Last())

	return res, nil
}

// Snapshot copies the round counters.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Score:    e.round.Score,
		MaxScore: e.round.MaxScore,
		Tick:     e.round.Tick,
		Rounds:   e.rounds,
		Ticks:    e.ticks,
		Gap1:     e.round.Obstacle.Gap1,
	}
	if g := e.round.Obstacle.Gap2; g != nil {
		gap := *g
		s.Gap2 = &gap
	}
	return s
}
