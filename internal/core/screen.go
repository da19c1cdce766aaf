package core

import (
	"strings"
)

// Cell is one terminal character cell. It covers two vertically stacked
// pixels drawn with the upper half-block glyph, or a text rune when Rune is
// set.
type Cell struct {
	Top    RGB565
	Bottom RGB565
	Rune   rune
}

// Screen is a 2D cell buffer that frontends downsample the panel image into.
// It decouples the pixel image from the terminal, the platform layer turns
// cells into styled strings.
type Screen struct {
	width  int
	height int
	cells  []Cell
}

// NewScreen creates a new screen buffer with the given dimensions in cells.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.Resize(width, height)
	return s
}

// Width returns the screen width in cells.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in cells.
func (s *Screen) Height() int {
	return s.height
}

// PixelHeight returns the number of addressable pixel rows (two per cell).
func (s *Screen) PixelHeight() int {
	return s.height * 2
}

// Resize changes the screen dimensions and clears it.
func (s *Screen) Resize(width, height int) {
	width = Max(width, 0)
	height = Max(height, 0)
	if width == s.width && height == s.height && s.cells != nil {
		return
	}
	s.width = width
	s.height = height
	s.cells = make([]Cell, width*height)
}

// Clear resets every cell to black with no text.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = Cell{}
	}
}

// SetPixel colours one half-cell. py counts pixel rows, two per cell.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) SetPixel(x, py int, c RGB565) {
	y := py / 2
	if x < 0 || x >= s.width || py < 0 || y >= s.height {
		return
	}
	cell := &s.cells[y*s.width+x]
	if py%2 == 0 {
		cell.Top = c
	} else {
		cell.Bottom = c
	}
}

// Set places a text rune at the given cell.
func (s *Screen) Set(x, y int, r rune) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return
	}
	s.cells[y*s.width+x].Rune = r
}

// Cell returns the cell at the given position, or a blank cell when out of
// bounds.
func (s *Screen) Cell(x, y int) Cell {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return Cell{}
	}
	return s.cells[y*s.width+x]
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond screen bounds are clipped.
func (s *Screen) DrawText(x, y int, text string) {
	i := 0
	for _, r := range text {
		s.Set(x+i, y, r)
		i++
	}
}

// DrawTextCentered draws text centered horizontally at the given y position.
func (s *Screen) DrawTextCentered(y int, text string) {
	x := (s.width - len([]rune(text))) / 2
	s.DrawText(x, y, text)
}

// String renders the screen without colour, one glyph per cell.
// Used for screenshots and tests.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height*3 + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			sb.WriteRune(s.cells[y*s.width+x].Glyph())
		}
	}
	return sb.String()
}

// Glyph returns the block character that best represents the cell without
// colour information.
func (c Cell) Glyph() rune {
	if c.Rune != 0 {
		return c.Rune
	}
	top := c.Top != ColorBlack
	bottom := c.Bottom != ColorBlack
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}
