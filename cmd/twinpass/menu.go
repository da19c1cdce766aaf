package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/twinpass/internal/platform/headless"
	"github.com/vovakirdan/twinpass/internal/platform/tui"
	"github.com/vovakirdan/twinpass/internal/storage"
)

// runMenu shows the launcher and starts whatever was picked.
func runMenu(_ *cobra.Command, _ []string) error {
	result, err := tui.RunMenu(runtimeConfig())
	if err != nil || result.Quit {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	switch result.Item.ID {
	case tui.HistoryItem:
		store, err := storage.Open(cfg.Storage.DBPath)
		if err != nil {
			return err
		}
		defer store.Close()
		return tui.RunHistory(store, result.Config.ScreenW, result.Config.ScreenH)

	case headless.ID:
		return bench(ctx, cfg.Bench.Duration, cfg.Bench.Record, "", false)
	}

	_, err = runFrontend(ctx, result.Item.ID, frontendEnv(result.Config, nil))
	return describeFault(err)
}
