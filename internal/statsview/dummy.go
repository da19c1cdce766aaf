//go:build !statsview

package statsview

import (
	"context"

	"github.com/charmbracelet/log"
)

// Launch is a no-op without the statsview build tag.
func Launch(_ context.Context, _ string, logger *log.Logger) {
	logger.Debug("statsview not compiled in; rebuild with -tags statsview")
}

// Available returns true if a statsview is available to launch.
func Available() bool {
	return false
}
