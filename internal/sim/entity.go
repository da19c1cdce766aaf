// Package sim implements the per-tick simulation of the two-circle avoidance
// game: entity movement, separation enforcement between the two entities,
// obstacle generation and contact detection, the autopilot, and the tick
// orchestrator that sequences them.
//
// The package is pure logic. Drawing, input and randomness are reached
// through the Display, InputSource and random.Source interfaces so the same
// engine runs on the emulated board, in a terminal, in a window or in tests.
package sim

import "github.com/vovakirdan/twinpass/internal/core"

// Geometry of the display and arena.
const (
	DisplayWidth  = 320
	DisplayHeight = 240

	// VirtualWidth is the row pitch of the scan-out buffer in pixels. It is
	// wider than the panel to leave room for horizontal virtual scrolling.
	VirtualWidth  = 672
	BytesPerPixel = 2

	Diameter = 51
	Radius   = 25 // offset from the top-left corner to the collision center

	// Arena bounds for the top-left corner of an entity.
	ArenaMaxX = 268
	ArenaMaxY = 189

	// ScanCenterOffset maps an entity's top-left corner to its drawing
	// center in the scan-out buffer.
	ScanCenterOffset = 24*VirtualWidth + 24
)

// Hue animation ring.
const (
	Entity1Hue core.RGB565 = 2000
	Entity2Hue core.RGB565 = 12000
	HueStep                = 32
	HueSamples             = 4 + 33*4
)

// Spawn positions (top-left corners) of a fresh round.
const (
	Entity1SpawnX, Entity1SpawnY = 76, 76
	Entity2SpawnX, Entity2SpawnY = 176, 150
)

// Entity is one of the two player-controlled circles.
//
// ScanIndex is the linear offset of the entity's drawing center in the
// scan-out buffer. Every movement adjusts it by the same delta as Rect so
// that ScanIndex == Rect.Y*VirtualWidth + Rect.X + ScanCenterOffset always
// holds without being recomputed.
type Entity struct {
	Rect      core.Rect
	ScanIndex int
	Hue       core.RGB565
	BaseHue   core.RGB565
}

// NewEntity places an entity with its top-left corner at (x, y).
func NewEntity(x, y int, hue core.RGB565) Entity {
	return Entity{
		Rect:      core.NewRect(x, y, Diameter, Diameter),
		ScanIndex: y*VirtualWidth + x + ScanCenterOffset,
		Hue:       hue,
		BaseHue:   hue,
	}
}

// Center returns the collision center of the entity.
func (e Entity) Center() (int, int) {
	return e.Rect.Center()
}

// shiftX moves the entity horizontally by delta pixels.
func (e *Entity) shiftX(delta int) {
	e.Rect.X += delta
	e.ScanIndex += delta
}

// shiftY moves the entity vertically by delta pixels.
func (e *Entity) shiftY(delta int) {
	e.Rect.Y += delta
	e.ScanIndex += delta * VirtualWidth
}

// Apply moves the entity one pixel per requested direction, clamped to the
// arena. shift selects the entity's nibble of the mask (0 or
// core.EntityShift). Opposite directions are applied in turn, so pressing
// both cancels out except at an arena edge.
func (e *Entity) Apply(m core.Buttons, shift core.Button) {
	if m.Pressed(core.P1Left + shift) {
		e.moveX(-1)
	}
	if m.Pressed(core.P1Up + shift) {
		e.moveY(-1)
	}
	if m.Pressed(core.P1Right + shift) {
		e.moveX(1)
	}
	if m.Pressed(core.P1Down + shift) {
		e.moveY(1)
	}
}

// moveX shifts the entity by delta, stopping at the arena edge.
func (e *Entity) moveX(delta int) {
	e.shiftX(core.Clamp(e.Rect.X+delta, 0, ArenaMaxX) - e.Rect.X)
}

// moveY shifts the entity by delta, stopping at the arena edge.
func (e *Entity) moveY(delta int) {
	e.shiftY(core.Clamp(e.Rect.Y+delta, 0, ArenaMaxY) - e.Rect.Y)
}

// advanceHue steps the outline colour around its ring.
func (e *Entity) advanceHue() {
	e.Hue += HueStep
	if int(e.Hue)+2*HueStep > int(e.BaseHue)+HueSamples*HueStep {
		e.Hue = e.BaseHue
	}
}
