// Package scanout keeps the panel's refresh in step with the scan-out
// buffer.
//
// Sync is driven by the panel controller's frame and line events. It never
// touches simulation state: its only side effect is programming the base
// address the panel fetches the next line from. Counters are written only
// by the event handlers and may be read from any goroutine.
package scanout

import (
	"sync/atomic"

	"github.com/vovakirdan/twinpass/internal/sim"
)

// DefaultPorch is the number of raster lines the controller reports before
// the first visible line.
const DefaultPorch = 3

// DefaultScrollStep is how far the virtual scroll counter advances per frame.
const DefaultScrollStep = 1

// LineBytes is the size of one scan-out buffer line.
const LineBytes = sim.VirtualWidth * sim.BytesPerPixel

// Panel is the controller-side capability Sync programs.
type Panel interface {
	// VCount returns the raster line currently being fetched.
	VCount() uint32

	// SetFrameBase sets the byte address of the next line to fetch.
	SetFrameBase(addr uint32)
}

// Sync handles frame and line events.
type Sync struct {
	panel Panel
	step  int32
	porch uint32

	frames atomic.Uint32
	scroll atomic.Int32
}

// Option configures a Sync.
type Option func(*Sync)

// WithScrollStep sets the per-frame scroll increment.
func WithScrollStep(step int) Option {
	return func(s *Sync) {
		s.step = int32(step)
	}
}

// WithPorch sets the number of blank lines before the first visible one.
func WithPorch(lines int) Option {
	return func(s *Sync) {
		if lines >= 0 {
			s.porch = uint32(lines)
		}
	}
}

// New creates a Sync programming panel.
func New(panel Panel, opts ...Option) *Sync {
	s := &Sync{
		panel: panel,
		step:  DefaultScrollStep,
		porch: DefaultPorch,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnFrame handles the start-of-frame event.
func (s *Sync) OnFrame() {
	s.frames.Add(1)
	s.scroll.Add(s.step)
}

// OnLine handles the line event: the next line fetched is the buffer line
// matching the visible raster line.
func (s *Sync) OnLine() {
	line := s.panel.VCount()
	if line >= s.porch {
		line -= s.porch
	}
	s.panel.SetFrameBase(line * LineBytes)
}

// Frames returns the number of frames started.
func (s *Sync) Frames() uint32 {
	return s.frames.Load()
}

// Scroll returns the virtual scroll counter. It is tracked but not applied
// to the line base address.
func (s *Sync) Scroll() int32 {
	return s.scroll.Load()
}

// Porch returns the configured porch.
func (s *Sync) Porch() int {
	return int(s.porch)
}
