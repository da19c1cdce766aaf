// Package board emulates the hardware the simulation runs on: the panel
// controller that scans the frame buffer out, the 1 kHz SysTick timer and
// the status LEDs.
package board

import (
	"sync/atomic"

	"github.com/vovakirdan/twinpass/internal/core"
	"github.com/vovakirdan/twinpass/internal/scanout"
	"github.com/vovakirdan/twinpass/internal/sim"
)

// Panel geometry.
const (
	PanelWidth  = sim.DisplayWidth
	PanelHeight = sim.DisplayHeight
	PanelPixels = PanelWidth * PanelHeight
)

// Memory is the scan-out buffer as seen by the panel controller.
type Memory interface {
	ReadAt(addr uint32, dst []core.RGB565) int
}

// Raster emulates the panel controller. Each refresh raises a frame event
// followed by one line event per raster line, porch included; the line
// handler programs the base address the visible line is fetched from.
//
// Raster implements scanout.Panel.
type Raster struct {
	porch int

	vcount atomic.Uint32
	base   atomic.Uint32

	onFrame func()
	onLine  func()
}

var _ scanout.Panel = (*Raster)(nil)

// NewRaster creates a controller reporting porch blank lines per frame.
func NewRaster(porch int) *Raster {
	return &Raster{porch: porch}
}

// VCount implements scanout.Panel.
func (r *Raster) VCount() uint32 {
	return r.vcount.Load()
}

// SetFrameBase implements scanout.Panel.
func (r *Raster) SetFrameBase(addr uint32) {
	r.base.Store(addr)
}

// FrameBase returns the last programmed base address.
func (r *Raster) FrameBase() uint32 {
	return r.base.Load()
}

// HandleFrame registers the start-of-frame handler.
func (r *Raster) HandleFrame(fn func()) {
	r.onFrame = fn
}

// HandleLine registers the line handler.
func (r *Raster) HandleLine(fn func()) {
	r.onLine = fn
}

// Lines returns the raster lines per refresh.
func (r *Raster) Lines() int {
	return r.porch + PanelHeight
}

// Refresh raises the events of one refresh without fetching pixels.
func (r *Raster) Refresh() {
	r.refresh(nil, nil)
}

// Scan performs one refresh and copies the visible lines from mem into dst,
// which must hold PanelPixels pixels.
func (r *Raster) Scan(mem Memory, dst []core.RGB565) {
	r.refresh(mem, dst)
}

func (r *Raster) refresh(mem Memory, dst []core.RGB565) {
	if r.onFrame != nil {
		r.onFrame()
	}

	for v := 0; v < r.Lines(); v++ {
		r.vcount.Store(uint32(v))
		if r.onLine != nil {
			r.onLine()
		}

		visible := v - r.porch
		if mem == nil || visible < 0 {
			continue
		}
		start := visible * PanelWidth
		if start+PanelWidth > len(dst) {
			return
		}
		mem.ReadAt(r.base.Load(), dst[start:start+PanelWidth])
	}
}
