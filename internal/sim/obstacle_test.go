package sim

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/twinpass/internal/core"
	"github.com/vovakirdan/twinpass/internal/random"
)

func TestGenerateObstacleInvariants(t *testing.T) {
	src := random.New(2024)
	sawOne, sawTwo := false, false

	for n := 0; n < 2000; n++ {
		o := GenerateObstacle(src)
		gaps := o.Gaps()

		wantWidth := OneGapWidth
		if o.Gap2 != nil {
			wantWidth = TwoGapWidth
			sawTwo = true
		} else {
			sawOne = true
		}

		for _, g := range gaps {
			if g.Start < 0 || g.End > DisplayWidth {
				t.Fatalf("obstacle %d: gap %+v outside [0, %d)", n, g, DisplayWidth)
			}
			if g.Width() != wantWidth {
				t.Fatalf("obstacle %d: gap width %d, expected %d", n, g.Width(), wantWidth)
			}
		}

		if o.Gap2 != nil && o.Gap1.End > o.Gap2.Start {
			t.Fatalf("obstacle %d: gaps overlap: %+v %+v", n, o.Gap1, *o.Gap2)
		}

		for col := 0; col < DisplayWidth; col++ {
			passable := false
			for _, g := range gaps {
				passable = passable || g.Passable(col)
			}
			if o.Columns[col] == passable {
				t.Fatalf("obstacle %d: column %d opaque=%v but passable=%v", n, col, o.Columns[col], passable)
			}
		}
	}

	if !sawOne || !sawTwo {
		t.Error("generator should produce both one- and two-gap obstacles")
	}
}

func TestGenerateObstacleDeterminism(t *testing.T) {
	a := random.New(12345)
	b := random.New(12345)

	for n := 0; n < 200; n++ {
		oa := GenerateObstacle(a)
		ob := GenerateObstacle(b)
		if !reflect.DeepEqual(oa, ob) {
			t.Fatalf("obstacle %d differs for identical seeds", n)
		}
	}
}

func TestGenerateObstacleScripted(t *testing.T) {
	tests := []struct {
		name     string
		src      *random.Sequence
		wantGap1 Gap
		wantGap2 *Gap
	}{
		{
			name:     "two gaps",
			src:      &random.Sequence{Bools: []bool{true}, Ints: []int{40, 10}},
			wantGap1: Gap{Start: 40, End: 111},
			wantGap2: &Gap{Start: 170, End: 241},
		},
		{
			name:     "one gap",
			src:      &random.Sequence{Bools: []bool{false}, Ints: []int{229}},
			wantGap1: Gap{Start: 229, End: 320},
		},
		{
			name:     "two gaps at band ends",
			src:      &random.Sequence{Bools: []bool{true}, Ints: []int{89, 89}},
			wantGap1: Gap{Start: 89, End: 160},
			wantGap2: &Gap{Start: 249, End: 320},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := GenerateObstacle(tc.src)
			if o.Gap1 != tc.wantGap1 {
				t.Errorf("Gap1 = %+v, expected %+v", o.Gap1, tc.wantGap1)
			}
			if !reflect.DeepEqual(o.Gap2, tc.wantGap2) {
				t.Errorf("Gap2 = %+v, expected %+v", o.Gap2, tc.wantGap2)
			}
			if o.Rect != core.NewRect(0, 0, DisplayWidth, ObstacleHeight) {
				t.Errorf("Rect = %+v, expected full-width strip", o.Rect)
			}
			if o.ScanOffset != 0 {
				t.Errorf("ScanOffset = %d, expected 0", o.ScanOffset)
			}
		})
	}
}

func TestObstacleOpaque(t *testing.T) {
	o := GenerateObstacle(&random.Sequence{Bools: []bool{false}, Ints: []int{100}})

	tests := []struct {
		col  int
		want bool
	}{
		{-1, true},
		{99, true},
		{100, false},
		{189, false},
		{190, true},
		{DisplayWidth, true},
	}
	for _, tc := range tests {
		if got := o.Opaque(tc.col); got != tc.want {
			t.Errorf("Opaque(%d) = %v, expected %v", tc.col, got, tc.want)
		}
	}
}

// roundWithGaps builds a round whose obstacle has the given gaps.
func roundWithGaps(tick int, gap1 Gap, gap2 *Gap) *Round {
	r := &Round{Tick: tick}
	r.Obstacle.Gap1 = gap1
	r.Obstacle.Gap2 = gap2
	return r
}

func TestCollides(t *testing.T) {
	gap1 := Gap{Start: 40, End: 111}
	gap2 := &Gap{Start: 170, End: 241}

	tests := []struct {
		name string
		tick int
		x, y int
		gap2 *Gap
		want bool
	}{
		{"spawn over gap 40-111 at tick 76: post 10px across and 25px above", 76, 76, 76, nil, false},
		{"spawn over gap 40-111 at tick 101: post 10px across on the gap row", 101, 76, 76, nil, true},
		{"center well inside gap", 100, 50, 75, nil, false},
		{"center on post column is outside", 100, 15, 75, nil, true},
		{"outside all gaps", 100, 150, 75, nil, true},
		{"inside second gap", 100, 180, 75, gap2, false},
		{"near second gap post", 100, 200, 75, gap2, true},
		{"between gaps", 100, 120, 75, gap2, true},
		{"row above entity", 74, 150, 75, nil, false},
		{"row below entity", 126, 150, 75, nil, false},
		{"top row of entity", 75, 150, 75, nil, true},
		{"bottom row of entity", 125, 150, 75, nil, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := roundWithGaps(tc.tick, gap1, tc.gap2)
			got := Collides(r, core.NewRect(tc.x, tc.y, Diameter, Diameter))
			if got != tc.want {
				t.Errorf("Collides() = %v, expected %v", got, tc.want)
			}
		})
	}
}
