package sim

import "github.com/vovakirdan/twinpass/internal/core"

// SafetyLineY is the center height below which the entity leading toward a
// shared gap is allowed to climb. Above it, climbing would drive it into the
// other entity still clearing the gap.
const SafetyLineY = 165

// Autopilot is the heuristic controller used for benchmarking. It steers
// both entities toward the current obstacle's gaps using only this tick's
// geometry and keeps no state between ticks.
type Autopilot struct{}

// NewAutopilot creates an autopilot input source.
func NewAutopilot() *Autopilot {
	return &Autopilot{}
}

// target is a gap center the entities steer toward.
type target struct {
	x, y int
}

func gapTarget(g Gap, y int) target {
	return target{x: g.Center(), y: y}
}

// distSq returns the squared distance from an entity's center to t.
func (t target) distSq(e *Entity) int {
	cx, cy := e.Center()
	return core.DistSq(cx, cy, t.x, t.y)
}

// Buttons implements InputSource. The result follows the active-low
// convention of the gamepad port.
func (a *Autopilot) Buttons(r *Round) core.Buttons {
	// The gap sits on the row given by the tick counter.
	gap1 := gapTarget(r.Obstacle.Gap1, r.Tick)

	var pressed uint8
	if r.Obstacle.Gap2 == nil {
		pressed = bothToTarget(r, gap1)
	} else {
		gap2 := gapTarget(*r.Obstacle.Gap2, r.Tick)

		d11 := gap1.distSq(&r.Entity1)
		d21 := gap1.distSq(&r.Entity2)
		d12 := gap2.distSq(&r.Entity1)
		d22 := gap2.distSq(&r.Entity2)

		switch {
		case d11 > d12 && d21 > d22:
			pressed = bothToTarget(r, gap2)
		case d11 < d12 && d21 < d22:
			pressed = bothToTarget(r, gap1)
		case d11 < d12:
			pressed = toTarget(&r.Entity1, 0, gap1) | toTarget(&r.Entity2, core.EntityShift, gap2)
		default:
			pressed = toTarget(&r.Entity1, 0, gap2) | toTarget(&r.Entity2, core.EntityShift, gap1)
		}
	}

	return core.Buttons(^pressed)
}

// bit returns the active-high mask for a button.
func bit(b core.Button) uint8 {
	return 1 << b
}

// horizontal returns the button steering e toward t on the x axis.
func horizontal(e *Entity, shift core.Button, t target) uint8 {
	cx, _ := e.Center()
	if t.x < cx {
		return bit(core.P1Left + shift)
	}
	return bit(core.P1Right + shift)
}

// bothToTarget steers both entities toward one shared gap. The entity nearer
// to the gap leads; it climbs only once below the safety line while the other
// drops back to make room.
func bothToTarget(r *Round, t target) uint8 {
	pressed := horizontal(&r.Entity1, 0, t) | horizontal(&r.Entity2, core.EntityShift, t)

	leader, follower := &r.Entity1, core.EntityShift
	leaderShift := core.Button(0)
	if t.distSq(&r.Entity1) >= t.distSq(&r.Entity2) {
		leader, leaderShift, follower = &r.Entity2, core.EntityShift, 0
	}

	pressed |= bit(core.P1Down + follower)
	if _, cy := leader.Center(); cy > SafetyLineY {
		pressed |= bit(core.P1Up + leaderShift)
	}
	return pressed
}

// toTarget steers a single entity toward its own gap while it drops back.
func toTarget(e *Entity, shift core.Button, t target) uint8 {
	return bit(core.P1Down+shift) | horizontal(e, shift, t)
}
