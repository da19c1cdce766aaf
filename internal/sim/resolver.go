package sim

import (
	"fmt"

	"github.com/vovakirdan/twinpass/internal/core"
)

// MinSeparationSq is the squared minimum distance between the two entities.
const MinSeparationSq = 50 * 50

// InvariantError reports a broken simulation invariant. These are bugs, not
// recoverable conditions: callers are expected to halt.
type InvariantError struct {
	Check  string
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("sim: invariant %s violated: %s", e.Check, e.Detail)
}

// Axis selects the coordinate a correction reverts.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// correction is one reversible axis move of one entity.
type correction struct {
	name   string
	entity *Entity
	other  *Entity
	prev   core.Rect
	axis   Axis
}

// step returns the signed size of the move this correction would undo.
func (c correction) step() int {
	if c.axis == AxisX {
		return c.entity.Rect.X - c.prev.X
	}
	return c.entity.Rect.Y - c.prev.Y
}

// reverted returns the entity's rectangle with this axis move undone.
func (c correction) reverted() core.Rect {
	r := c.entity.Rect
	if c.axis == AxisX {
		r.X = c.prev.X
	} else {
		r.Y = c.prev.Y
	}
	return r
}

// apply puts the entity back on its pre-move coordinate, compensating the
// scan index by the same delta.
func (c correction) apply() {
	if c.axis == AxisX {
		c.entity.shiftX(-c.step())
	} else {
		c.entity.shiftY(-c.step())
	}
}

// separationSq returns the squared distance between the two entities.
// Both share the same size, so top-left corners are as good as centers.
func separationSq(a, b core.Rect) int {
	return core.DistSq(a.X, a.Y, b.X, b.Y)
}

// Resolve enforces the minimum separation between the two entities after a
// movement step.
//
// Candidate reverts are evaluated in fixed priority: entity 1 x, entity 1 y,
// entity 2 x, entity 2 y. A candidate is applied when undoing that axis move
// strictly increases the separation; the search stops as soon as the
// separation is restored. Resolve returns the number of reverts applied.
//
// An InvariantError is returned if a reverted move was not exactly one pixel
// or if the separation still falls short after all candidates.
func Resolve(e1, e2 *Entity, prev1, prev2 core.Rect) (int, error) {
	d := separationSq(e1.Rect, e2.Rect)
	if d >= MinSeparationSq {
		return 0, nil
	}

	candidates := [...]correction{
		{name: "entity1", entity: e1, other: e2, prev: prev1, axis: AxisX},
		{name: "entity1", entity: e1, other: e2, prev: prev1, axis: AxisY},
		{name: "entity2", entity: e2, other: e1, prev: prev2, axis: AxisX},
		{name: "entity2", entity: e2, other: e1, prev: prev2, axis: AxisY},
	}

	applied := 0
	for _, c := range candidates {
		if d >= MinSeparationSq {
			break
		}

		score := separationSq(c.reverted(), c.other.Rect)
		if score <= d {
			continue
		}

		if step := c.step(); core.Abs(step) != 1 {
			return applied, &InvariantError{
				Check:  "unit-step",
				Detail: fmt.Sprintf("%s %s moved by %d", c.name, c.axis, step),
			}
		}

		c.apply()
		applied++
		d = score
	}

	if d < MinSeparationSq {
		return applied, &InvariantError{
			Check:  "separation",
			Detail: fmt.Sprintf("distance² %d < %d after %d reverts", d, MinSeparationSq, applied),
		}
	}
	return applied, nil
}
