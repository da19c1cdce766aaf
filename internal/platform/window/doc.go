// Package window is the desktop frontend, built only with the ebiten build
// constraint. It shows the scanned panel at its native 320x240 resolution,
// scaled by the window, and reads WASD and the arrow keys with real key-up
// events.
//
// Without the build tag Available reports false and nothing is registered.
package window

// ID is the registry identifier of the window frontend.
const ID = "window"

// DefaultScale is the initial window size as a multiple of the panel.
const DefaultScale = 3
