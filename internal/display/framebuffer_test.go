package display

import (
	"testing"

	"github.com/vovakirdan/twinpass/internal/core"
	"github.com/vovakirdan/twinpass/internal/random"
	"github.com/vovakirdan/twinpass/internal/sim"
)

func litPixels(fb *FrameBuffer) int {
	n := 0
	for _, w := range fb.words {
		if w != core.ColorBlack {
			n++
		}
	}
	return n
}

func TestInit(t *testing.T) {
	fb := New()
	fb.words[123] = core.ColorWhite

	if err := fb.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if n := litPixels(fb); n != 0 {
		t.Errorf("Init left %d lit pixels", n)
	}

	broken := &FrameBuffer{words: make([]core.RGB565, 10)}
	if err := broken.Init(); err == nil {
		t.Error("Init() on a short buffer should fail")
	}
}

func TestCircleOffsets(t *testing.T) {
	offsets := circleOffsets(sim.Radius - 1)
	if len(offsets) != sim.HueSamples {
		t.Fatalf("circle has %d samples, expected %d", len(offsets), sim.HueSamples)
	}

	seen := make(map[int]bool)
	for _, off := range offsets {
		if seen[off] {
			t.Fatalf("duplicate offset %d", off)
		}
		seen[off] = true
	}
}

func TestDrawEntity(t *testing.T) {
	fb := New()
	e := sim.NewEntity(sim.Entity1SpawnX, sim.Entity1SpawnY, sim.Entity1Hue)
	cx, cy := sim.Entity1SpawnX+24, sim.Entity1SpawnY+24

	fb.DrawEntity(e)

	if n := litPixels(fb); n != sim.HueSamples {
		t.Errorf("lit pixels = %d, expected %d", n, sim.HueSamples)
	}
	if c := fb.Pixel(cx, cy); c != core.ColorBlack {
		t.Errorf("center pixel = %#x, expected black", c)
	}
	for _, p := range [][2]int{{cx, cy - 24}, {cx, cy + 24}, {cx - 24, cy}, {cx + 24, cy}} {
		if fb.Pixel(p[0], p[1]) == core.ColorBlack {
			t.Errorf("outline pixel (%d, %d) not drawn", p[0], p[1])
		}
	}

	hues := make(map[core.RGB565]bool)
	for _, w := range fb.words {
		if w != core.ColorBlack {
			hues[w] = true
		}
	}
	for _, want := range []core.RGB565{sim.Entity1Hue, sim.Entity1Hue + (sim.HueSamples-1)*sim.HueStep} {
		if !hues[want] {
			t.Errorf("hue %d missing from outline", want)
		}
	}

	fb.EraseEntity(e)
	if n := litPixels(fb); n != 0 {
		t.Errorf("%d pixels left after erase", n)
	}
}

func TestDrawEntityClipsAtBufferStart(t *testing.T) {
	fb := New()
	// Put the first outline sample exactly on word 0.
	center := -fb.circle[0]
	fb.DrawEntity(sim.Entity{ScanIndex: center, Hue: sim.Entity2Hue})

	if fb.words[0] != sim.Entity2Hue {
		t.Errorf("word 0 = %d, expected the first sample %d", fb.words[0], sim.Entity2Hue)
	}
	inside := 0
	for _, off := range fb.circle {
		if center+off >= 0 {
			inside++
		}
	}
	if got := litPixels(fb); got != inside {
		t.Errorf("lit pixels = %d, expected the %d samples inside the buffer", got, inside)
	}
}

func TestDrawObstacle(t *testing.T) {
	gap := &random.Sequence{Bools: []bool{false}, Ints: []int{100}}

	tests := []struct {
		name   string
		rows   int
		wantAt map[int]core.RGB565 // row -> colour of an opaque column
	}{
		{
			name:   "first row",
			rows:   1,
			wantAt: map[int]core.RGB565{1: core.ColorObstacle, 0: core.ColorTrail},
		},
		{
			name:   "second row",
			rows:   2,
			wantAt: map[int]core.RGB565{2: core.ColorObstacle, 1: core.ColorTrail, 0: core.ColorTrailFaint},
		},
		{
			name: "full trail",
			rows: 5,
			wantAt: map[int]core.RGB565{
				5: core.ColorObstacle,
				4: core.ColorTrail,
				3: core.ColorTrailFaint,
				2: core.ColorBlack,
				1: core.ColorWhite,
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fb := New()
			for row := 0; row < 6; row++ {
				for col := 0; col < sim.DisplayWidth; col++ {
					fb.set(row*Width+col, core.ColorWhite)
				}
			}

			o := sim.GenerateObstacle(gap)
			o.ScanOffset = tc.rows * Width
			fb.DrawObstacle(&o)

			for row, want := range tc.wantAt {
				if got := fb.Pixel(0, row); got != want {
					t.Errorf("row %d opaque column = %#x, expected %#x", row, got, want)
				}
			}
			// Passable columns keep whatever was underneath.
			if got := fb.Pixel(150, tc.rows); got != core.ColorWhite {
				t.Errorf("gap column = %#x, expected untouched", got)
			}
		})
	}
}

func TestDrawNumber(t *testing.T) {
	fb := New()
	const color = core.ColorMaxScore

	fb.DrawNumber(42, 0, color)

	tests := []struct {
		x, y int
		want core.RGB565
	}{
		{0, 0, color},            // '0' top-left
		{2, 2, core.ColorBlack},  // '0' hollow middle
		{8, 0, color},            // '4' top row is 101
		{10, 0, core.ColorBlack}, // '4' top row gap
		{12, 1, color},           // doubled line
		{16, 6, color},           // '2' row 3 is 100
		{20, 6, core.ColorBlack},
		{17, 9, color},           // '2' bottom row, doubled column
		{6, 0, core.ColorBlack},  // spacing between glyphs
	}
	for _, tc := range tests {
		if got := fb.Pixel(tc.x, tc.y); got != tc.want {
			t.Errorf("pixel (%d, %d) = %#x, expected %#x", tc.x, tc.y, got, tc.want)
		}
	}

	// A redraw fully replaces the previous digits.
	fb.DrawNumber(1, 0, color)
	if got := fb.Pixel(16, 0); got != core.ColorBlack {
		t.Errorf("stale pixel after redraw = %#x", got)
	}
	if got := fb.Pixel(18, 0); got != color {
		t.Errorf("'1' stem = %#x, expected %#x", got, color)
	}
}

func TestDrawNumberKeepsLastThreeDigits(t *testing.T) {
	a, b := New(), New()
	a.DrawNumber(1234, sim.ScorePos, core.ColorWhite)
	b.DrawNumber(234, sim.ScorePos, core.ColorWhite)

	for i := range a.words {
		if a.words[i] != b.words[i] {
			t.Fatalf("word %d differs", i)
		}
	}
}

func TestDrawThroughput(t *testing.T) {
	fb := New()
	fb.DrawThroughput(123456)

	// '1' top row is 010.
	if got := fb.Pixel(0, 10); got != core.ColorBlack {
		t.Errorf("pixel (0, 10) = %#x, expected black", got)
	}
	if got := fb.Pixel(2, 10); got != core.ColorWhite {
		t.Errorf("pixel (2, 10) = %#x, expected white", got)
	}
	// '6' row 3 is 101, starting at x=40.
	if got := fb.Pixel(44, 16); got != core.ColorWhite {
		t.Errorf("pixel (44, 16) = %#x, expected white", got)
	}
}

func TestReadAt(t *testing.T) {
	fb := New()
	fb.set(Width+5, core.ColorObstacle)

	dst := make([]core.RGB565, sim.DisplayWidth)
	if n := fb.ReadAt(uint32(Width*sim.BytesPerPixel), dst); n != len(dst) {
		t.Fatalf("ReadAt copied %d pixels, expected %d", n, len(dst))
	}
	if dst[5] != core.ColorObstacle {
		t.Errorf("dst[5] = %#x, expected %#x", dst[5], core.ColorObstacle)
	}

	if n := fb.ReadAt(Bytes, dst); n != 0 {
		t.Errorf("ReadAt past the end copied %d pixels", n)
	}

	if row := fb.Row(1); len(row) != sim.DisplayWidth || row[5] != core.ColorObstacle {
		t.Error("Row(1) does not expose the drawn pixel")
	}
	if fb.Row(Height) != nil {
		t.Error("Row past the last line should be nil")
	}
}
