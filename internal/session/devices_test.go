package session

import (
	"testing"
	"time"

	"github.com/HoriaMercan/PM-project/internal/domain"
)

func TestRegistryAdd(t *testing.T) {
	var r Registry

	tests := []struct {
		addr      domain.Address
		wantIndex int
		wantOK    bool
	}{
		{alice, 0, true},
		{bob, 1, true},
		{alice, 0, true}, // повторное подключение
		{carol, -1, false},
	}

	for _, tt := range tests {
		idx, ok := r.Add(tt.addr)
		if idx != tt.wantIndex || ok != tt.wantOK {
			t.Errorf("Add(%s) = (%d, %v), want (%d, %v)", tt.addr, idx, ok, tt.wantIndex, tt.wantOK)
		}
	}

	if r.Name(0) != "Device 1" || r.Name(1) != "Device 2" {
		t.Errorf("default names = %q, %q", r.Name(0), r.Name(1))
	}
}

func TestRegistryRemoveShifts(t *testing.T) {
	var r Registry
	r.Add(alice)
	r.Add(bob)

	if !r.Remove(alice) {
		t.Fatal("Remove(alice) = false")
	}
	if r.Len() != 1 || r.Index(bob) != 0 {
		t.Errorf("bob must move to index 0, got %d (len %d)", r.Index(bob), r.Len())
	}
	if r.Remove(alice) {
		t.Error("second Remove must report false")
	}

	// Новое устройство получает имя по текущему размеру списка
	r.Add(carol)
	if got := r.Name(1); got != "Device 2" {
		t.Errorf("name = %q, want Device 2", got)
	}
}

func TestRegistryRename(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"short", "Bob", "Bob"},
		{"exactly nine", "123456789", "123456789"},
		{"truncated", "1234567890AB", "123456789"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Registry
			r.Add(alice)
			if !r.Rename(alice, []byte(tt.in)) {
				t.Fatal("Rename returned false")
			}
			if got := r.Name(0); got != tt.want {
				t.Errorf("Name = %q, want %q", got, tt.want)
			}
		})
	}

	var r Registry
	if r.Rename(bob, []byte("x")) {
		t.Error("rename of unknown device must fail")
	}
}

func TestPanelDebounce(t *testing.T) {
	clock := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	p := newPanel(300*time.Millisecond, func() time.Time { return clock })

	steps := []struct {
		after  time.Duration
		button Button
		want   bool
	}{
		{0, ButtonReset, true},
		{100 * time.Millisecond, ButtonMark, false}, // дребезг общий для всех кнопок
		{200 * time.Millisecond, ButtonMenu, true},  // 300ms от последнего принятого
		{299 * time.Millisecond, ButtonMenu, false},
		{time.Millisecond, ButtonMark, true},
	}

	for i, st := range steps {
		clock = clock.Add(st.after)
		if got := p.press(st.button); got != st.want {
			t.Errorf("step %d: press(%v) = %v, want %v", i, st.button, got, st.want)
		}
	}

	for _, b := range []Button{ButtonReset, ButtonMark, ButtonMenu} {
		if !p.take(b) {
			t.Errorf("take(%v) = false, want true", b)
		}
		if p.take(b) {
			t.Errorf("second take(%v) must be false", b)
		}
	}
}

func TestParseButton(t *testing.T) {
	for _, b := range []Button{ButtonReset, ButtonMark, ButtonMenu} {
		got, ok := ParseButton(b.String())
		if !ok || got != b {
			t.Errorf("ParseButton(%q) = (%v, %v)", b.String(), got, ok)
		}
	}
	if _, ok := ParseButton("power"); ok {
		t.Error("unknown button must not parse")
	}
}
