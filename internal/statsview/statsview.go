//go:build statsview

package statsview

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

// Launch starts the statistics server on addr in a new goroutine and stops
// it when ctx is done.
func Launch(ctx context.Context, addr string, logger *log.Logger) {
	viewer.SetConfiguration(viewer.WithAddr(addr))
	mgr := statsview.New()

	go func() {
		//nolint:errcheck // Returns when stopped
		mgr.Start()
	}()
	go func() {
		<-ctx.Done()
		mgr.Stop()
	}()

	logger.Info("stats server available", "url", "http://"+addr+path)
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return true
}
