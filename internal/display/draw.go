package display

import (
	"math"
	"sort"

	"github.com/vovakirdan/twinpass/internal/core"
	"github.com/vovakirdan/twinpass/internal/sim"
)

// circleOffsets returns the buffer offsets of a circle outline of radius r
// around a center word, ordered by angle so consecutive samples are
// neighbours on screen.
func circleOffsets(r int) []int {
	type point struct{ x, y int }

	seen := make(map[point]bool)
	var pts []point
	add := func(x, y int) {
		p := point{x, y}
		if !seen[p] {
			seen[p] = true
			pts = append(pts, p)
		}
	}

	// Midpoint circle, one octant mirrored eight ways.
	x, y, d := 0, r, 1-r
	for x <= y {
		add(x, y)
		add(y, x)
		add(-x, y)
		add(-y, x)
		add(x, -y)
		add(y, -x)
		add(-x, -y)
		add(-y, -x)

		x++
		if d < 0 {
			d += 2*x + 1
		} else {
			y--
			d += 2*(x-y) + 1
		}
	}

	sort.SliceStable(pts, func(i, j int) bool {
		return math.Atan2(float64(pts[i].y), float64(pts[i].x)) <
			math.Atan2(float64(pts[j].y), float64(pts[j].x))
	})

	offsets := make([]int, len(pts))
	for i, p := range pts {
		offsets[i] = p.y*Width + p.x
	}
	return offsets
}

// drawCircle writes the outline around center, stepping the colour by
// sim.HueStep per sample. Samples outside the buffer are skipped.
func (fb *FrameBuffer) drawCircle(center int, c core.RGB565, step core.RGB565) {
	for _, off := range fb.circle {
		fb.set(center+off, c)
		c += step
	}
}

// DrawEntity draws the entity outline starting at its current hue.
func (fb *FrameBuffer) DrawEntity(e sim.Entity) {
	fb.drawCircle(e.ScanIndex, e.Hue, sim.HueStep)
}

// EraseEntity blanks the entity outline.
func (fb *FrameBuffer) EraseEntity(e sim.Entity) {
	fb.drawCircle(e.ScanIndex, core.ColorBlack, 0)
}

// Trail rows drawn behind the obstacle's leading edge. A row is only drawn
// once the leading edge is at least minPos words into the buffer.
var trail = []struct {
	rows   int
	minPos int
	color  core.RGB565
}{
	{0, 0, core.ColorObstacle},
	{1, 600, core.ColorTrail},
	{2, 1200, core.ColorTrailFaint},
	{3, 2000, core.ColorBlack},
}

// DrawObstacle draws the opaque columns of the obstacle's leading edge and
// the fading rows behind it. The oldest trail row is blanked.
func (fb *FrameBuffer) DrawObstacle(o *sim.Obstacle) {
	pos := o.ScanOffset
	for _, t := range trail {
		if pos < t.minPos {
			continue
		}
		row := pos - t.rows*Width
		for col := 0; col < sim.DisplayWidth; col++ {
			if o.Opaque(col) {
				fb.set(row+col, t.color)
			}
		}
	}
}

// DrawNumber draws the last three decimal digits of value, right-aligned
// so the ones digit starts at pos+16.
func (fb *FrameBuffer) DrawNumber(value int, pos int, color core.RGB565) {
	fb.drawDigits(value, 3, pos, color)
}

// DrawThroughput draws the ticks-per-second counter in the top-left corner.
func (fb *FrameBuffer) DrawThroughput(value uint32) {
	fb.drawDigits(int(value), ThroughputDigits, ThroughputPos, core.ColorWhite)
}

// drawDigits draws the last n decimal digits of value right to left,
// zero-padded. pos is the top-left word of the leftmost digit.
func (fb *FrameBuffer) drawDigits(value, n, pos int, color core.RGB565) {
	if value < 0 {
		value = -value
	}
	p := pos + (n-1)*glyphAdvance
	for i := 0; i < n; i++ {
		fb.drawGlyph(value%10, p, color)
		value /= 10
		p -= glyphAdvance
	}
}
