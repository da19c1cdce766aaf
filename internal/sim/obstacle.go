package sim

import (
	"github.com/vovakirdan/twinpass/internal/core"
	"github.com/vovakirdan/twinpass/internal/random"
)

// Obstacle generation parameters.
const (
	TwoGapWidth    = 70  // width of each gap when two are generated
	TwoGapBand     = 90  // horizontal band the gap start is drawn from
	Gap2BandOffset = 160 // offset of the second gap's band
	OneGapWidth    = 90
	OneGapBand     = 230

	ObstacleHeight = 5

	// CycleTicks is the number of ticks after which a new obstacle replaces
	// the current one and the score increments.
	CycleTicks = 240

	// EdgeRadiusSq is the squared radius of the collider tested against each
	// gap boundary post.
	EdgeRadiusSq = Radius * Radius
)

// Gap is a passable column range of an obstacle. End is Start+width+1, so
// the passable columns are [Start, End-1).
type Gap struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Width returns the number of passable columns.
func (g Gap) Width() int {
	return g.End - g.Start - 1
}

// Center returns the horizontal center of the gap.
func (g Gap) Center() int {
	return (g.Start + g.End) / 2
}

// Inside reports whether x lies strictly between the gap's boundary posts.
func (g Gap) Inside(x int) bool {
	return x > g.Start && x < g.End
}

// Passable reports whether column col is cleared in the obstacle mask.
func (g Gap) Passable(col int) bool {
	return col >= g.Start && col < g.End-1
}

// Obstacle is the horizontal wall that falls toward the entities.
//
// Columns[i] is true for opaque columns; exactly the columns inside Gap1 and
// Gap2 (when present) are false. Obstacles are replaced wholesale by the
// generator; only ScanOffset and Rect.Y change between generations.
type Obstacle struct {
	Rect       core.Rect
	Columns    [DisplayWidth]bool
	ScanOffset int
	Gap1       Gap
	Gap2       *Gap
}

// Opaque reports whether column col blocks passage. Columns outside the
// display are opaque.
func (o *Obstacle) Opaque(col int) bool {
	if col < 0 || col >= DisplayWidth {
		return true
	}
	return o.Columns[col]
}

// Gaps returns the obstacle's gaps in order.
func (o *Obstacle) Gaps() []Gap {
	if o.Gap2 == nil {
		return []Gap{o.Gap1}
	}
	return []Gap{o.Gap1, *o.Gap2}
}

// GenerateObstacle draws a new obstacle from src. One boolean draw decides
// between one wide gap and two narrow ones; each gap start is then drawn
// uniformly from its band. Identical draws produce identical obstacles.
func GenerateObstacle(src random.Source) Obstacle {
	o := Obstacle{
		Rect: core.NewRect(0, 0, DisplayWidth, ObstacleHeight),
	}
	for i := range o.Columns {
		o.Columns[i] = true
	}

	twoGaps := src.UniformBool()
	width, band := OneGapWidth, OneGapBand
	if twoGaps {
		width, band = TwoGapWidth, TwoGapBand
	}

	start := src.UniformInt(0, band)
	o.Gap1 = Gap{Start: start, End: start + width + 1}

	if twoGaps {
		start2 := Gap2BandOffset + src.UniformInt(0, band)
		o.Gap2 = &Gap{Start: start2, End: start2 + width + 1}
	}

	for _, g := range o.Gaps() {
		for col := g.Start; g.Passable(col); col++ {
			o.Columns[col] = false
		}
	}

	return o
}

// Collides reports whether an entity occupying rect is in lethal contact with
// the round's obstacle this tick.
//
// Only rows where the entity's vertical span covers the obstacle's
// alignment row (the round tick) are considered. An entity whose center is
// strictly inside a gap survives unless it is within Radius of either
// boundary post at the current vertical offset; anywhere else is lethal.
func Collides(r *Round, rect core.Rect) bool {
	cx, cy := rect.X+Radius, rect.Y+Radius
	if !rect.Contains(cx, r.Tick) {
		return false
	}

	gap, ok := r.Obstacle.gapAround(cx)
	if !ok {
		return true
	}

	if core.DistSq(cx, cy, gap.Start, r.Tick) < EdgeRadiusSq {
		return true
	}
	return core.DistSq(cx, cy, gap.End, r.Tick) < EdgeRadiusSq
}

// gapAround returns the first gap whose boundary posts strictly enclose x.
func (o *Obstacle) gapAround(x int) (Gap, bool) {
	if o.Gap1.Inside(x) {
		return o.Gap1, true
	}
	if o.Gap2 != nil && o.Gap2.Inside(x) {
		return *o.Gap2, true
	}
	return Gap{}, false
}
