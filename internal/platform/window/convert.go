package window

import (
	"github.com/vovakirdan/twinpass/internal/core"
	"github.com/vovakirdan/twinpass/internal/sim"
)

// ToRGBA expands a scanned panel frame into 8-bit RGBA, four bytes per
// pixel, as ebiten.Image.WritePixels expects. dst must hold 4*len(src)
// bytes.
func ToRGBA(src []core.RGB565, dst []byte) {
	for i, c := range src {
		r, g, b := c.RGB()
		p := dst[i*4 : i*4+4]
		p[0], p[1], p[2], p[3] = r, g, b, 0xFF
	}
}

// heldInput is the InputSource of a window: every button is pressed or
// released from the keyboard state before each frame, so there is nothing
// pending to clear.
type heldInput struct {
	mask core.Buttons
}

func (h *heldInput) set(pressed func(core.Button) bool) {
	for b := core.P1Left; b <= core.P2Down; b++ {
		if pressed(b) {
			h.mask = h.mask.Press(b)
		} else {
			h.mask = h.mask.Release(b)
		}
	}
}

// Buttons implements sim.InputSource.
func (h *heldInput) Buttons(*sim.Round) core.Buttons {
	return h.mask
}
