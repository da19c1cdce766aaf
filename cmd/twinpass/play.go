package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/twinpass/internal/platform/tui"
	"github.com/vovakirdan/twinpass/internal/sim"
)

var flagAutopilot bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Run the simulation in the terminal, drawn with half-block characters.

Controls:
  W/A/S/D     - Move the first circle
  Arrow keys  - Move the second circle
  Tab         - Toggle the autopilot
  P/Space     - Pause
  R           - Restart the round
  ?           - Full help
  Q/Ctrl+C    - Quit

Terminals report key presses but not releases, so a press moves a circle
for a short while and holding a key keeps it moving.

Examples:
  twinpass play
  twinpass play --autopilot --seed 42
  twinpass play --fps 30 --steps 8`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagAutopilot, "autopilot", false, "Start with the autopilot in control (default from config)")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	rt := runtimeConfig()
	if cmd.Flags().Changed("autopilot") {
		rt.Autopilot = flagAutopilot
	}

	ctx, cancel := signalContext()
	defer cancel()

	_, err := runFrontend(ctx, tui.ID, frontendEnv(rt, nil))
	return describeFault(err)
}

// describeFault adds a hint to simulation faults; other errors pass through.
func describeFault(err error) error {
	var inv *sim.InvariantError
	if errors.As(err, &inv) {
		logger.Error("simulation stopped on an invariant violation", "error", inv)
	}
	return err
}
