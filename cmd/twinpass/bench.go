package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/twinpass/internal/diag"
	"github.com/vovakirdan/twinpass/internal/platform/headless"
	"github.com/vovakirdan/twinpass/internal/registry"
	"github.com/vovakirdan/twinpass/internal/statsview"
	"github.com/vovakirdan/twinpass/internal/storage"
)

var (
	flagDuration  time.Duration
	flagRecord    bool
	flagBenchHTTP string
	flagStatsview bool
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run a headless autopilot benchmark",
	Long: `Run the simulation with no presentation as fast as the host allows,
with the autopilot steering both circles. Throughput is sampled once per
emulated second and logged; the finished run is recorded in the history
database unless --record=false.

While running, diagnostics are served over HTTP when --http is set:
  GET /healthz   - liveness of the simulation loop
  GET /stats     - throughput, frames, scroll and round counters

Examples:
  twinpass bench
  twinpass bench --duration 1m --seed 7
  twinpass bench --duration 0 --http :8089   # until Ctrl+C
  twinpass bench --statsview                 # needs -tags statsview`,
	Args: cobra.NoArgs,
	RunE: runBench,
}

func init() {
	benchCmd.Flags().DurationVar(&flagDuration, "duration", 0, "Run length, 0 = until interrupted (default from config)")
	benchCmd.Flags().BoolVar(&flagRecord, "record", true, "Record the run in the history database (default from config)")
	benchCmd.Flags().StringVar(&flagBenchHTTP, "http", "", "Serve diagnostics on this address (host:port)")
	benchCmd.Flags().BoolVar(&flagStatsview, "statsview", false, "Serve Go runtime charts on "+statsview.DefaultAddress)
}

func runBench(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	duration := cfg.Bench.Duration
	if flags.Changed("duration") {
		duration = flagDuration
	}
	record := cfg.Bench.Record
	if flags.Changed("record") {
		record = flagRecord
	}

	ctx, cancel := signalContext()
	defer cancel()

	return bench(ctx, duration, record, flagBenchHTTP, flagStatsview)
}

// bench runs the headless frontend with optional diagnostics and records
// the result.
func bench(ctx context.Context, duration time.Duration, record bool, httpAddr string, withStatsview bool) error {
	ctx, stop := context.WithCancel(ctx)
	stats := diag.NewPublisher()

	var wg sync.WaitGroup
	defer func() {
		stop()
		wg.Wait()
	}()

	if httpAddr != "" {
		srv := diag.NewServer(httpAddr, stats, logger.WithPrefix("diag"))
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := srv.Run(ctx); err != nil {
				logger.Error("diagnostics server failed", "error", err)
			}
		}()
	}
	if withStatsview {
		statsview.Launch(ctx, statsview.DefaultAddress, logger)
	}

	rt := runtimeConfig()
	rt.Autopilot = true
	env := frontendEnv(rt, stats)
	env.Duration = duration

	res, err := runFrontend(ctx, headless.ID, env)
	if err != nil {
		return describeFault(err)
	}

	printBenchResult(res)
	if record {
		return recordRun(res)
	}
	return nil
}

func printBenchResult(res registry.Result) {
	fmt.Println()
	fmt.Println("Benchmark result")
	fmt.Printf("  %-12s %d\n", "Seed", res.Seed)
	fmt.Printf("  %-12s %s\n", "Elapsed", res.Elapsed.Round(time.Millisecond))
	fmt.Printf("  %-12s %d\n", "Ticks", res.Ticks)
	fmt.Printf("  %-12s %.0f\n", "Ticks/s", res.TicksPerSec())
	fmt.Printf("  %-12s %d\n", "Rounds", res.Rounds)
	fmt.Printf("  %-12s %d\n", "Best score", res.MaxScore)
}

// recordRun stores a finished run. The history is diagnostics only; it is
// never read back into a simulation.
func recordRun(res registry.Result) error {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.SaveRun(storage.BenchRun{
		Frontend:    res.Frontend,
		Seed:        res.Seed,
		Ticks:       res.Ticks,
		Rounds:      res.Rounds,
		BestScore:   res.MaxScore,
		TicksPerSec: res.TicksPerSec(),
		Duration:    res.Elapsed,
	})
	if err != nil {
		return err
	}
	logger.Info("benchmark recorded", "id", id, "db", cfg.Storage.DBPath)
	return nil
}
