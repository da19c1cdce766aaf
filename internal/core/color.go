package core

// RGB565 is a 16-bit colour as stored in the scan-out buffer:
// 5 bits red, 6 bits green, 5 bits blue.
type RGB565 uint16

// Palette used by the simulation.
const (
	ColorBlack      RGB565 = 0x0000
	ColorWhite      RGB565 = 0xFFFF
	ColorMaxScore   RGB565 = 0x2EE0
	ColorObstacle   RGB565 = 0xF800 // leading edge
	ColorTrail      RGB565 = 0xE000
	ColorTrailFaint RGB565 = 0x0040
)

// RGB expands the colour to 8 bits per channel.
func (c RGB565) RGB() (r, g, b uint8) {
	r5 := uint8(c>>11) & 0x1F
	g6 := uint8(c>>5) & 0x3F
	b5 := uint8(c) & 0x1F
	return r5<<3 | r5>>2, g6<<2 | g6>>4, b5<<3 | b5>>2
}

// Hex returns the colour as a "#rrggbb" string.
func (c RGB565) Hex() string {
	const digits = "0123456789abcdef"
	r, g, b := c.RGB()
	return string([]byte{
		'#',
		digits[r>>4], digits[r&0xF],
		digits[g>>4], digits[g&0xF],
		digits[b>>4], digits[b&0xF],
	})
}
