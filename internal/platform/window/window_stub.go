//go:build !ebiten

package window

// Available reports whether the window frontend is compiled in.
func Available() bool {
	return false
}
