package domain

import "testing"

func TestCellSet_SetClearToggle(t *testing.T) {
	var s CellSet
	p := NewPosition(3, 5)

	if s.Has(p) {
		t.Fatal("new set must be empty")
	}

	s.Set(p)
	if !s.Has(p) || s.Count() != 1 {
		t.Fatalf("expected only %v set, count=%d", p, s.Count())
	}

	if s.Toggle(p) {
		t.Error("Toggle should clear a set bit")
	}
	if !s.Toggle(p) {
		t.Error("Toggle should set a cleared bit")
	}

	s.Clear(p)
	if s.Has(p) {
		t.Error("Clear did not clear")
	}
}

func TestCellSet_Layout(t *testing.T) {
	var s CellSet
	s.Set(NewPosition(2, 1)) // позиция 17
	s.Set(NewPosition(15, 7))

	if s[2] != 0x02 {
		t.Errorf("row 2 byte = %#x, want 0x02", s[2])
	}
	if s[15] != 0x80 {
		t.Errorf("row 15 byte = %#x, want 0x80", s[15])
	}
}
