package display

import "github.com/vovakirdan/twinpass/internal/core"

// Digit glyphs are 3x5 bitmaps drawn at twice their size: every pixel is
// doubled horizontally and every row is drawn on two lines.
const (
	glyphW       = 3
	glyphH       = 5
	glyphScale   = 2
	glyphAdvance = 8
)

// digits holds one row per bit pattern, most significant bit on the left.
var digits = [10][glyphH]uint8{
	{0b111, 0b101, 0b101, 0b101, 0b111},
	{0b010, 0b110, 0b010, 0b010, 0b111},
	{0b111, 0b001, 0b111, 0b100, 0b111},
	{0b111, 0b001, 0b111, 0b001, 0b111},
	{0b101, 0b101, 0b111, 0b001, 0b001},
	{0b111, 0b100, 0b111, 0b001, 0b111},
	{0b111, 0b100, 0b111, 0b101, 0b111},
	{0b111, 0b001, 0b001, 0b001, 0b001},
	{0b111, 0b101, 0b111, 0b101, 0b111},
	{0b111, 0b101, 0b111, 0b001, 0b111},
}

// drawGlyph draws digit d with its top-left word at pos. Unset pixels are
// blanked so a shorter number fully replaces a longer one.
func (fb *FrameBuffer) drawGlyph(d int, pos int, color core.RGB565) {
	bits := digits[d]
	for row := 0; row < glyphH; row++ {
		for col := 0; col < glyphW; col++ {
			c := core.ColorBlack
			if bits[row]&(1<<(glyphW-1-col)) != 0 {
				c = color
			}
			for dy := 0; dy < glyphScale; dy++ {
				for dx := 0; dx < glyphScale; dx++ {
					fb.set(pos+(row*glyphScale+dy)*Width+col*glyphScale+dx, c)
				}
			}
		}
	}
}
