package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/twinpass/internal/core"
	"github.com/vovakirdan/twinpass/internal/platform/board"
)

// maxStyles bounds the style cache. The hue ring alone produces a few
// hundred colour pairs, so the cache is simply dropped when it overflows.
const maxStyles = 4096

type cellKey struct {
	top, bottom core.RGB565
	text        bool
}

// Painter converts a Screen into a styled string. Each pixel cell is drawn
// as an upper half block with the top pixel as foreground and the bottom
// pixel as background.
type Painter struct {
	renderer *lipgloss.Renderer
	styles   map[cellKey]lipgloss.Style
}

// NewPainter creates a painter for r. A nil renderer uses lipgloss's
// default, which targets the process's own terminal.
func NewPainter(r *lipgloss.Renderer) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Painter{renderer: r, styles: make(map[cellKey]lipgloss.Style)}
}

func (p *Painter) style(k cellKey) lipgloss.Style {
	if st, ok := p.styles[k]; ok {
		return st
	}
	if len(p.styles) >= maxStyles {
		p.styles = make(map[cellKey]lipgloss.Style)
	}
	st := p.renderer.NewStyle().Background(lipgloss.Color(k.bottom.Hex()))
	if k.text {
		st = st.Foreground(lipgloss.Color(core.ColorWhite.Hex())).Bold(true)
	} else {
		st = st.Foreground(lipgloss.Color(k.top.Hex()))
	}
	p.styles[k] = st
	return st
}

// Render groups adjacent cells with the same colours into one styled run
// to minimize ANSI escape sequences.
func (p *Painter) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	var run strings.Builder
	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := keyOf(s.Cell(x, y))

			run.Reset()
			for x < s.Width() {
				cell := s.Cell(x, y)
				if keyOf(cell) != start {
					break
				}
				if cell.Rune != 0 {
					run.WriteRune(cell.Rune)
				} else {
					run.WriteRune('▀')
				}
				x++
			}
			sb.WriteString(p.style(start).Render(run.String()))
		}
	}
	return sb.String()
}

func keyOf(c core.Cell) cellKey {
	if c.Rune != 0 {
		// Text is drawn over black; pixel colours under it are irrelevant.
		return cellKey{text: true}
	}
	return cellKey{top: c.Top, bottom: c.Bottom}
}

// FitPanel returns the largest pixel size with the panel's 4:3 aspect ratio
// that fits in width columns and pixelRows half-cell rows.
func FitPanel(width, pixelRows int) (w, h int) {
	w = width
	if maxW := pixelRows * board.PanelWidth / board.PanelHeight; w > maxW {
		w = maxW
	}
	if w <= 0 {
		return 0, 0
	}
	return w, w * board.PanelHeight / board.PanelWidth
}

// Downsample draws a scanned panel frame into s, scaled to w x h pixels and
// centred horizontally. Each target pixel takes the first lit pixel of its
// source block so one-pixel outlines and trail rows survive the reduction.
func Downsample(frame []core.RGB565, s *core.Screen, w, h int) {
	if w <= 0 || h <= 0 || len(frame) < board.PanelPixels {
		return
	}
	left := (s.Width() - w) / 2

	for ty := 0; ty < h; ty++ {
		y0 := ty * board.PanelHeight / h
		y1 := max((ty+1)*board.PanelHeight/h, y0+1)
		for tx := 0; tx < w; tx++ {
			x0 := tx * board.PanelWidth / w
			x1 := max((tx+1)*board.PanelWidth/w, x0+1)
			s.SetPixel(left+tx, ty, firstLit(frame, x0, x1, y0, y1))
		}
	}
}

func firstLit(frame []core.RGB565, x0, x1, y0, y1 int) core.RGB565 {
	for y := y0; y < y1; y++ {
		row := frame[y*board.PanelWidth : (y+1)*board.PanelWidth]
		for x := x0; x < x1; x++ {
			if row[x] != core.ColorBlack {
				return row[x]
			}
		}
	}
	return core.ColorBlack
}
