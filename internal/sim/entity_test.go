package sim

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/twinpass/internal/core"
)

// scanIndexFor returns the scan index implied by a rectangle.
func scanIndexFor(r core.Rect) int {
	return r.Y*VirtualWidth + r.X + ScanCenterOffset
}

func TestEntitySpawnScanIndex(t *testing.T) {
	e1 := NewEntity(Entity1SpawnX, Entity1SpawnY, Entity1Hue)
	if e1.ScanIndex != 100*VirtualWidth+100 {
		t.Errorf("entity1 ScanIndex = %d, expected %d", e1.ScanIndex, 100*VirtualWidth+100)
	}

	e2 := NewEntity(Entity2SpawnX, Entity2SpawnY, Entity2Hue)
	if e2.ScanIndex != 174*VirtualWidth+200 {
		t.Errorf("entity2 ScanIndex = %d, expected %d", e2.ScanIndex, 174*VirtualWidth+200)
	}

	if e1.Rect.W != Diameter || e1.Rect.H != Diameter {
		t.Errorf("entity size = %dx%d, expected %dx%d", e1.Rect.W, e1.Rect.H, Diameter, Diameter)
	}
}

func TestEntityApply(t *testing.T) {
	tests := []struct {
		name  string
		x, y  int
		press []core.Button
		shift core.Button
		wantX int
		wantY int
	}{
		{"left", 10, 10, []core.Button{core.P1Left}, 0, 9, 10},
		{"up", 10, 10, []core.Button{core.P1Up}, 0, 10, 9},
		{"right", 10, 10, []core.Button{core.P1Right}, 0, 11, 10},
		{"down", 10, 10, []core.Button{core.P1Down}, 0, 10, 11},
		{"diagonal", 10, 10, []core.Button{core.P1Right, core.P1Down}, 0, 11, 11},
		{"opposites cancel", 10, 10, []core.Button{core.P1Left, core.P1Right}, 0, 10, 10},
		{"clamp left", 0, 10, []core.Button{core.P1Left}, 0, 0, 10},
		{"clamp up", 10, 0, []core.Button{core.P1Up}, 0, 10, 0},
		{"clamp right", ArenaMaxX, 10, []core.Button{core.P1Right}, 0, ArenaMaxX, 10},
		{"clamp down", 10, ArenaMaxY, []core.Button{core.P1Down}, 0, 10, ArenaMaxY},
		{"opposites at left edge", 0, 10, []core.Button{core.P1Left, core.P1Right}, 0, 1, 10},
		{"entity2 nibble", 10, 10, []core.Button{core.P2Left, core.P2Down}, core.EntityShift, 9, 11},
		{"entity2 ignores entity1 bits", 10, 10, []core.Button{core.P1Left, core.P1Down}, core.EntityShift, 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e := NewEntity(tc.x, tc.y, Entity1Hue)
			m := core.ButtonsReleased
			for _, b := range tc.press {
				m = m.Press(b)
			}
			e.Apply(m, tc.shift)

			if e.Rect.X != tc.wantX || e.Rect.Y != tc.wantY {
				t.Errorf("position = (%d, %d), expected (%d, %d)", e.Rect.X, e.Rect.Y, tc.wantX, tc.wantY)
			}
			if e.ScanIndex != scanIndexFor(e.Rect) {
				t.Errorf("ScanIndex = %d drifted from rect (expected %d)", e.ScanIndex, scanIndexFor(e.Rect))
			}
		})
	}
}

func TestEntityRandomWalkStaysInArena(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	e := NewEntity(Entity1SpawnX, Entity1SpawnY, Entity1Hue)

	for i := 0; i < 20000; i++ {
		prev := e.Rect
		e.Apply(core.Buttons(rng.Intn(256)), 0)

		if e.Rect.X < 0 || e.Rect.X > ArenaMaxX || e.Rect.Y < 0 || e.Rect.Y > ArenaMaxY {
			t.Fatalf("tick %d: entity left arena at (%d, %d)", i, e.Rect.X, e.Rect.Y)
		}
		if core.Abs(e.Rect.X-prev.X) > 1 || core.Abs(e.Rect.Y-prev.Y) > 1 {
			t.Fatalf("tick %d: moved more than one pixel per axis", i)
		}
		if e.ScanIndex != scanIndexFor(e.Rect) {
			t.Fatalf("tick %d: ScanIndex drifted", i)
		}
	}
}

func TestEntityHueRing(t *testing.T) {
	e := NewEntity(0, 0, Entity1Hue)

	for i := 1; i <= 134; i++ {
		e.advanceHue()
		if want := Entity1Hue + core.RGB565(i*HueStep); e.Hue != want {
			t.Fatalf("after %d steps Hue = %d, expected %d", i, e.Hue, want)
		}
	}

	e.advanceHue()
	if e.Hue != Entity1Hue {
		t.Errorf("Hue should wrap to base after a full ring, got %d", e.Hue)
	}
}
