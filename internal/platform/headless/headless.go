// Package headless runs the simulation with no presentation at all. It is
// the benchmark frontend: the autopilot drives both entities as fast as the
// host allows while the board's SysTick samples throughput.
package headless

import (
	"context"
	"sync"
	"time"

	"github.com/vovakirdan/twinpass/internal/platform/machine"
	"github.com/vovakirdan/twinpass/internal/registry"
	"github.com/vovakirdan/twinpass/internal/sim"
)

// ID is the registry identifier of the headless frontend.
const ID = "headless"

// batch is the number of ticks run between checks for cancellation and
// progress reports.
const batch = 256

// Frontend is the headless benchmark frontend.
type Frontend struct{}

func init() {
	registry.Register(ID, func() registry.Frontend { return Frontend{} })
}

// ID implements registry.Frontend.
func (Frontend) ID() string { return ID }

// Title implements registry.Frontend.
func (Frontend) Title() string { return "Headless autopilot benchmark" }

// Run implements registry.Frontend.
func (Frontend) Run(ctx context.Context, env registry.Env) (registry.Result, error) {
	if env.Duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, env.Duration)
		defer cancel()
	}
	reportEvery := env.ReportEvery
	if reportEvery <= 0 {
		reportEvery = time.Second
	}

	m, initErr := machine.New(ID, env, sim.NewAutopilot())

	boardCtx, stopBoard := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		//nolint:errcheck // Only returns once boardCtx is done
		m.Board.Run(boardCtx)
	}()
	defer func() {
		stopBoard()
		wg.Wait()
	}()

	if initErr != nil {
		return registry.Result{Frontend: ID, Seed: m.Seed()}, m.FailStop(ctx, initErr)
	}

	logger := m.Logger()
	logger.Info("benchmark started", "seed", m.Seed(), "duration", env.Duration)

	report := time.NewTicker(reportEvery)
	defer report.Stop()

	for {
		select {
		case <-ctx.Done():
			m.Publish()
			res := m.Result()
			logger.Info("benchmark finished",
				"ticks", res.Ticks,
				"rounds", res.Rounds,
				"max_score", res.MaxScore,
				"ticks_per_sec", int64(res.TicksPerSec()),
			)
			return res, nil
		case <-report.C:
			m.Publish()
			s := m.Engine.Snapshot()
			logger.Info("progress",
				"ticks", s.Ticks,
				"score", s.Score,
				"max_score", s.MaxScore,
				"rounds", s.Rounds,
				"ticks_per_sec", m.Board.Throughput.Last(),
			)
		default:
		}

		if err := m.Step(batch); err != nil {
			m.Publish()
			res := m.Result()
			return res, m.FailStop(ctx, err)
		}
	}
}
