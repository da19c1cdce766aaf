package random

import "testing"

func TestRandDeterminism(t *testing.T) {
	a := New(12345)
	b := New(12345)

	for i := 0; i < 1000; i++ {
		if a.UniformBool() != b.UniformBool() {
			t.Fatalf("UniformBool diverged at draw %d", i)
		}
		if a.UniformInt(0, 230) != b.UniformInt(0, 230) {
			t.Fatalf("UniformInt diverged at draw %d", i)
		}
	}
}

func TestRandSeedReplays(t *testing.T) {
	a, b := New(7), New(7)
	for i := 0; i < 20; i++ {
		if x, y := a.UniformInt(0, 90), b.UniformInt(0, 90); x != y {
			t.Fatalf("draw %d: %d != %d for the same seed", i, x, y)
		}
	}
	if a.Seed() != 7 {
		t.Errorf("Seed() = %d, expected 7", a.Seed())
	}
}

func TestRandRange(t *testing.T) {
	r := New(1)
	sawLow, sawHigh := false, false
	for i := 0; i < 10000; i++ {
		v := r.UniformInt(10, 20)
		if v < 10 || v >= 20 {
			t.Fatalf("UniformInt(10, 20) = %d out of range", v)
		}
		sawLow = sawLow || v == 10
		sawHigh = sawHigh || v == 19
	}
	if !sawLow || !sawHigh {
		t.Error("UniformInt should reach both ends of the range")
	}

	if v := r.UniformInt(5, 5); v != 5 {
		t.Errorf("empty range should return low, got %d", v)
	}
}

func TestRandBoolDistribution(t *testing.T) {
	r := New(99)
	trues := 0
	const n = 10000
	for i := 0; i < n; i++ {
		if r.UniformBool() {
			trues++
		}
	}
	if trues < n*45/100 || trues > n*55/100 {
		t.Errorf("UniformBool returned true %d/%d times, expected about half", trues, n)
	}
}

func TestSequence(t *testing.T) {
	s := &Sequence{
		Bools: []bool{true, false},
		Ints:  []int{40, 500, -3},
	}

	if !s.UniformBool() || s.UniformBool() || !s.UniformBool() {
		t.Error("Bools should replay in order and wrap")
	}

	tests := []struct{ want int }{{40}, {89}, {0}, {40}}
	for i, tc := range tests {
		if got := s.UniformInt(0, 90); got != tc.want {
			t.Errorf("draw %d = %d, expected %d", i, got, tc.want)
		}
	}

	empty := &Sequence{}
	if empty.UniformBool() || empty.UniformInt(3, 9) != 3 {
		t.Error("empty Sequence should return zero values")
	}
}
