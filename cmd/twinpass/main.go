// twinpass runs a two-entity avoidance simulation: two circles must pass
// through the gaps of an obstacle that sweeps down the screen.
//
// Usage:
//
//	twinpass                 - Launcher menu
//	twinpass list            - List available frontends
//	twinpass play            - Play in the terminal (keyboard or autopilot)
//	twinpass window          - Play in a desktop window (needs -tags ebiten)
//	twinpass bench           - Headless autopilot benchmark
//	twinpass serve           - SSH spectator server with HTTP diagnostics
//	twinpass history         - Recorded benchmark runs
//
// Global flags:
//
//	--config <path>     - Configuration file (default: search order, then embedded)
//	--log-level <lvl>   - debug, info, warn or error
//	--fps <rate>        - Frontend frames per second
//	--steps <n>         - Simulation ticks per frame
//	--seed <value>      - Obstacle generator seed (0 = time based)
//	--db <path>         - Benchmark history database
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/twinpass/internal/config"

	// Import frontends to register them
	_ "github.com/vovakirdan/twinpass/internal/platform/headless"
	_ "github.com/vovakirdan/twinpass/internal/platform/tui"
	_ "github.com/vovakirdan/twinpass/internal/platform/window"
)

var (
	// Global flags
	flagConfig   string
	flagLogLevel string
	flagFPS      int
	flagSteps    int
	flagSeed     int64
	flagDBPath   string

	// Set by the root command's pre-run hook.
	cfg    config.Config
	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "twinpass",
	Short: "twinpass - steer two circles through a sweeping gap",
	Long: `twinpass simulates two circles that must slip through the one or two
gaps of an obstacle sweeping down the screen. Every obstacle passed scores a
point; touching it restarts the round.

Without a subcommand an interactive launcher is shown.

Examples:
  twinpass play
  twinpass play --autopilot
  twinpass bench --duration 30s
  twinpass serve --ssh :23235 --http :8089
  twinpass history`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runMenu,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to configuration YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frontend frames per second (default from config)")
	rootCmd.PersistentFlags().IntVar(&flagSteps, "steps", 0, "Simulation ticks per frame (default from config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Obstacle generator seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to benchmark history database (default from config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
}

// setup loads the configuration, applies flag overrides and builds the root
// logger.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level: %w", err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "twinpass",
	})

	cfg, err = config.Load(flagConfig)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Sim.TickRate = flagFPS
	}
	if flags.Changed("steps") {
		cfg.Sim.StepsPerFrame = flagSteps
	}
	if flags.Changed("seed") {
		cfg.Sim.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.Storage.DBPath = flagDBPath
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.Debug("configuration loaded", "path", flagConfig, "tick_rate", cfg.Sim.TickRate, "steps_per_frame", cfg.Sim.StepsPerFrame)
	return nil
}
