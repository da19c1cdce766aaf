package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/vovakirdan/twinpass/internal/core"
	"github.com/vovakirdan/twinpass/internal/diag"
	"github.com/vovakirdan/twinpass/internal/platform/board"
	"github.com/vovakirdan/twinpass/internal/registry"
)

// signalContext is cancelled on Ctrl+C or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// terminalSize returns the size of stdout, or 80x24 when it is not a
// terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}

// runtimeConfig builds the frontend runtime settings from the loaded
// configuration and the current terminal size.
func runtimeConfig() core.RuntimeConfig {
	w, h := terminalSize()
	return core.RuntimeConfig{
		ScreenW:       w,
		ScreenH:       h,
		TickRate:      cfg.Sim.TickRate,
		StepsPerFrame: cfg.Sim.StepsPerFrame,
		Seed:          cfg.Sim.Seed,
		Autopilot:     cfg.Sim.Autopilot,
	}
}

func boardConfig() board.Config {
	return board.Config{
		RefreshHz:  cfg.Scan.RefreshHz,
		ScrollStep: cfg.Scan.ScrollStep,
		Porch:      cfg.Scan.Porch,
		TickPeriod: cfg.Scan.TickPeriod,
	}
}

// frontendEnv assembles the environment handed to a frontend.
func frontendEnv(rt core.RuntimeConfig, stats *diag.Publisher) registry.Env {
	return registry.Env{
		Runtime:     rt,
		Board:       boardConfig(),
		Logger:      logger,
		Stats:       stats,
		Duration:    cfg.Bench.Duration,
		ReportEvery: cfg.Bench.ReportEvery,
	}
}

// runFrontend creates and runs a registered frontend, logging its outcome.
func runFrontend(ctx context.Context, id string, env registry.Env) (registry.Result, error) {
	f, err := registry.Create(id)
	if err != nil {
		return registry.Result{}, err
	}
	res, err := f.Run(ctx, env)
	logger.Debug("frontend finished",
		"frontend", id,
		"ticks", res.Ticks,
		"rounds", res.Rounds,
		"max_score", res.MaxScore,
		"elapsed", res.Elapsed,
	)
	return res, err
}
