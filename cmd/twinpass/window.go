package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/twinpass/internal/platform/window"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Run the simulation in a desktop window at the panel's native 320x240
resolution, scaled up. Controls are the same as for 'play', with real
key releases. Escape or Q closes the window.

The window frontend is only compiled with the ebiten build tag:
  go build -tags ebiten ./cmd/twinpass`,
	Args: cobra.NoArgs,
	RunE: runWindow,
}

func init() {
	windowCmd.Flags().BoolVar(&flagAutopilot, "autopilot", false, "Start with the autopilot in control (default from config)")
}

func runWindow(cmd *cobra.Command, _ []string) error {
	if !window.Available() {
		return errors.New("window frontend not compiled in; rebuild with -tags ebiten")
	}

	rt := runtimeConfig()
	if cmd.Flags().Changed("autopilot") {
		rt.Autopilot = flagAutopilot
	}

	ctx, cancel := signalContext()
	defer cancel()

	_, err := runFrontend(ctx, window.ID, frontendEnv(rt, nil))
	return describeFault(err)
}
