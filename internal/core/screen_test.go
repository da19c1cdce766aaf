package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 {
		t.Errorf("Width() = %d, expected 80", s.Width())
	}
	if s.Height() != 24 {
		t.Errorf("Height() = %d, expected 24", s.Height())
	}
	if s.PixelHeight() != 48 {
		t.Errorf("PixelHeight() = %d, expected 48", s.PixelHeight())
	}

	// Check that it's initialized blank
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if g := s.Cell(x, y).Glyph(); g != ' ' {
				t.Fatalf("New screen should be blank, got %q at (%d, %d)", g, x, y)
			}
		}
	}
}

func TestScreenSetPixel(t *testing.T) {
	s := NewScreen(4, 2)

	s.SetPixel(1, 0, ColorWhite)
	s.SetPixel(2, 1, ColorWhite)
	s.SetPixel(3, 2, ColorWhite)
	s.SetPixel(3, 3, ColorWhite)

	// Out of bounds should be silent
	s.SetPixel(-1, 0, ColorWhite)
	s.SetPixel(4, 0, ColorWhite)
	s.SetPixel(0, 4, ColorWhite)

	expected := " ▀▄ \n   █"
	if got := s.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}

func TestScreenText(t *testing.T) {
	s := NewScreen(11, 3)
	s.SetPixel(0, 0, ColorWhite)
	s.DrawTextCentered(1, "PAUSED")

	row := strings.Split(s.String(), "\n")[1]
	if !strings.Contains(row, "PAUSED") {
		t.Errorf("Centered text missing, row = %q", row)
	}
	if s.Cell(2, 1).Rune != 'P' {
		t.Errorf("Expected 'P' at column 2, got %q", s.Cell(2, 1).Rune)
	}

	s.Clear()
	if got := strings.TrimSpace(strings.ReplaceAll(s.String(), "\n", "")); got != "" {
		t.Errorf("Clear() should blank the screen, got %q", got)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.Resize(20, 5)

	if s.Width() != 20 || s.Height() != 5 {
		t.Errorf("Resize failed: got %dx%d", s.Width(), s.Height())
	}
	if c := s.Cell(25, 0); c != (Cell{}) {
		t.Error("Out of bounds Cell should return a blank cell")
	}

	s.Resize(-3, 2)
	if s.Width() != 0 {
		t.Errorf("Negative width should clamp to 0, got %d", s.Width())
	}
}
