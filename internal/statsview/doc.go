// Package statsview is an optional package that is built only when the
// statsview build constraint is present.
//
// It serves graphical Go runtime statistics for the running simulation,
// provided by "github.com/go-echarts/statsview". After launch they are
// viewable at:
//
//	localhost:12600/debug/statsview
//
// Without the build tag Available reports false and Launch does nothing.
package statsview

// DefaultAddress is where the statistics server listens.
const DefaultAddress = "localhost:12600"

const path = "/debug/statsview"
