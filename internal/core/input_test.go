package core

import "testing"

func TestButtonsActiveLow(t *testing.T) {
	m := ButtonsReleased
	for b := P1Left; b <= P2Down; b++ {
		if m.Pressed(b) {
			t.Errorf("%v should not be pressed in released mask", b)
		}
	}

	m = m.Press(P1Left).Press(P2Down)
	if m != 0xFF&^0x01&^0x80 {
		t.Errorf("mask = %#x, expected %#x", uint8(m), 0x7E)
	}
	if !m.Pressed(P1Left) || !m.Pressed(P2Down) {
		t.Error("pressed buttons should report pressed")
	}
	if m.Pressed(P1Right) {
		t.Error("P1Right should not be pressed")
	}

	m = m.Release(P1Left)
	if m.Pressed(P1Left) {
		t.Error("released button should not report pressed")
	}
}

func TestButtonsString(t *testing.T) {
	if s := ButtonsReleased.String(); s != "none" {
		t.Errorf("String() = %q, expected none", s)
	}
	m := ButtonsReleased.Press(P1Up).Press(P2Right)
	if s := m.String(); s != "P1Up|P2Right" {
		t.Errorf("String() = %q, expected P1Up|P2Right", s)
	}
}

func TestEntityShift(t *testing.T) {
	if P1Left+EntityShift != P2Left || P1Down+EntityShift != P2Down {
		t.Error("entity 2 buttons should mirror entity 1 shifted by EntityShift")
	}
}
