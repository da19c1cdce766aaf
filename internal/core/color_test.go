package core

import "testing"

func TestRGB565Expand(t *testing.T) {
	tests := []struct {
		c       RGB565
		r, g, b uint8
		hex     string
	}{
		{ColorBlack, 0, 0, 0, "#000000"},
		{ColorWhite, 255, 255, 255, "#ffffff"},
		{ColorObstacle, 255, 0, 0, "#ff0000"},
		{0x07E0, 0, 255, 0, "#00ff00"},
		{0x001F, 0, 0, 255, "#0000ff"},
	}

	for _, tc := range tests {
		r, g, b := tc.c.RGB()
		if r != tc.r || g != tc.g || b != tc.b {
			t.Errorf("%#04x.RGB() = (%d, %d, %d), expected (%d, %d, %d)", uint16(tc.c), r, g, b, tc.r, tc.g, tc.b)
		}
		if hex := tc.c.Hex(); hex != tc.hex {
			t.Errorf("%#04x.Hex() = %s, expected %s", uint16(tc.c), hex, tc.hex)
		}
	}
}
