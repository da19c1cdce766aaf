// Package display implements the scan-out buffer the simulation draws into.
//
// The buffer is wider than the visible panel: each line holds VirtualWidth
// pixels of which the first DisplayWidth are shown. Positions are word
// offsets into the buffer, the same units the simulation uses for scan
// indices and HUD positions.
package display

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/twinpass/internal/core"
	"github.com/vovakirdan/twinpass/internal/sim"
)

// Buffer geometry.
const (
	Width  = sim.VirtualWidth
	Height = sim.DisplayHeight
	Words  = Width * Height
	Bytes  = Words * sim.BytesPerPixel
)

// ThroughputPos is where the ticks-per-second counter is drawn.
const ThroughputPos = 10 * Width

// ThroughputDigits is the number of digits shown for throughput.
const ThroughputDigits = 6

// ErrNotReady is returned by Init when the buffer fails its bring-up check.
var ErrNotReady = errors.New("display: scan-out buffer not ready")

// FrameBuffer is an RGB565 scan-out buffer. It implements sim.Display.
//
// A FrameBuffer is not safe for concurrent use. Frontends draw and scan on
// the same goroutine.
type FrameBuffer struct {
	words  []core.RGB565
	circle []int
}

var _ sim.Display = (*FrameBuffer)(nil)

// New allocates a cleared frame buffer.
func New() *FrameBuffer {
	return &FrameBuffer{
		words:  make([]core.RGB565, Words),
		circle: circleOffsets(sim.Radius - 1),
	}
}

// Init verifies the buffer can hold a pattern across its full range and
// leaves it cleared.
func (fb *FrameBuffer) Init() error {
	if len(fb.words) != Words {
		return fmt.Errorf("%w: %d words, expected %d", ErrNotReady, len(fb.words), Words)
	}

	probes := []int{0, Width - 1, Words / 2, Words - 1}
	for _, p := range probes {
		fb.words[p] = core.RGB565(0xA5A5)
		if fb.words[p] != 0xA5A5 {
			return fmt.Errorf("%w: probe at word %d", ErrNotReady, p)
		}
	}

	fb.Clear()
	return nil
}

// Clear blanks the whole buffer.
func (fb *FrameBuffer) Clear() {
	for i := range fb.words {
		fb.words[i] = core.ColorBlack
	}
}

// set writes one word, ignoring offsets outside the buffer.
func (fb *FrameBuffer) set(pos int, c core.RGB565) {
	if pos < 0 || pos >= len(fb.words) {
		return
	}
	fb.words[pos] = c
}

// Pixel returns the colour at visible coordinates (x, y).
func (fb *FrameBuffer) Pixel(x, y int) core.RGB565 {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return core.ColorBlack
	}
	return fb.words[y*Width+x]
}

// Row returns the visible part of a buffer line. The slice aliases the
// buffer and is only valid until the next draw.
func (fb *FrameBuffer) Row(line int) []core.RGB565 {
	if line < 0 || line >= Height {
		return nil
	}
	start := line * Width
	return fb.words[start : start+sim.DisplayWidth]
}

// ReadAt copies pixels starting at byte address addr into dst, the way the
// panel controller fetches a line. It returns the number of pixels copied.
func (fb *FrameBuffer) ReadAt(addr uint32, dst []core.RGB565) int {
	start := int(addr / sim.BytesPerPixel)
	if start >= len(fb.words) {
		return 0
	}
	return copy(dst, fb.words[start:])
}
