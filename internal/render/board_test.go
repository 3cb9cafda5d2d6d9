package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/HoriaMercan/PM-project/pkg/api"
)

func sampleState() api.ServerResponse {
	return api.ServerResponse{
		Type:         api.TypeUpdate,
		ActivePlayer: 0,
		Grid:         &api.GridMeta{Width: 4, Height: 2},
		Cells: []api.CellView{
			{Pos: 1, Row: 0, Col: 1, Revealed: true},
			{Pos: 2, Row: 0, Col: 2, Revealed: true, Neighbors: 2},
			{Pos: 3, Row: 0, Col: 3, Marked: true},
			{Pos: 4, Row: 1, Col: 0, Revealed: true, Bomb: true},
		},
		Players: []api.PlayerView{
			{Index: 0, Name: "Alice", Position: 5, Active: true},
			{Index: 1, Name: "Bob", Position: 0},
		},
	}
}

func TestBoardSymbols(t *testing.T) {
	r := New(&bytes.Buffer{})
	out := r.Board(sampleState())

	lines := strings.Split(out, "\n")
	if len(lines) < 4 {
		t.Fatalf("too few lines:\n%s", out)
	}

	// Без терминала lipgloss не красит: остаются символы и отступы
	row0 := strings.ReplaceAll(lines[0], " ", "")
	if row0 != "#.2F" {
		t.Errorf("row 0 = %q, want #.2F", row0)
	}
	row1 := strings.ReplaceAll(lines[1], " ", "")
	if row1 != "*[#]##" {
		t.Errorf("row 1 = %q, want *[#]##", row1)
	}

	if !strings.Contains(out, "Alice *") {
		t.Errorf("active player line missing:\n%s", out)
	}
	if strings.Index(out, "Alice *") > strings.Index(out, "Bob") {
		t.Error("active player must be listed first")
	}
}

func TestBoardFinalScreens(t *testing.T) {
	tests := []struct {
		typ     string
		message string
		banner  string
	}{
		{api.TypeGameOver, "Lose: Alice", "Game Over"},
		{api.TypeWon, "Congrats Alice", "You Won!"},
	}

	r := New(&bytes.Buffer{})
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			st := sampleState()
			st.Type = tt.typ
			st.Message = tt.message

			out := r.Render(st)
			if !strings.Contains(out, tt.banner) || !strings.Contains(out, tt.message) {
				t.Errorf("final screen missing %q / %q:\n%s", tt.banner, tt.message, out)
			}
		})
	}
}

func TestMenu(t *testing.T) {
	r := New(&bytes.Buffer{})

	empty := r.Render(api.ServerResponse{Type: api.TypeMenu})
	if !strings.Contains(empty, "No devices connected") {
		t.Errorf("empty menu:\n%s", empty)
	}

	st := sampleState()
	st.Type = api.TypeMenu
	out := r.Render(st)
	for _, want := range []string{"1. Alice", "2. Bob"} {
		if !strings.Contains(out, want) {
			t.Errorf("menu missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "[") {
		t.Error("menu must not draw the board")
	}
}

func TestConsoleShow(t *testing.T) {
	var buf bytes.Buffer
	c := NewConsole(&buf, false)

	c.Show(sampleState())
	if !strings.Contains(buf.String(), "Alice *") {
		t.Errorf("console output:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), clearScreen) {
		t.Error("clear code written without refresh")
	}
}
