package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/HoriaMercan/PM-project/pkg/api"
	"github.com/charmbracelet/lipgloss"
)

// Символы клеток
const (
	SymbolHidden = "#"
	SymbolMarked = "F"
	SymbolBomb   = "*"
	SymbolEmpty  = "."
)

// Renderer рисует снимок состояния текстом: поле, список игроков и
// финальный экран. Это замена TFT-дисплея.
type Renderer struct {
	st styles
}

// New создает рендерер под writer w (цветной профиль определяется по нему).
func New(w io.Writer) *Renderer {
	return &Renderer{st: newStyles(lipgloss.NewRenderer(w))}
}

// Render выбирает экран по типу снимка.
func (r *Renderer) Render(state api.ServerResponse) string {
	if state.Type == api.TypeMenu {
		return r.Menu(state)
	}
	return r.Board(state)
}

// Menu - список подключенных устройств.
func (r *Renderer) Menu(state api.ServerResponse) string {
	var b strings.Builder
	b.WriteString(r.st.title.Render("BlueBomb"))
	b.WriteString("\n")

	if len(state.Players) == 0 {
		b.WriteString(r.st.warning.Render("No devices connected"))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString("Connected devices:\n")
	for _, p := range state.Players {
		fmt.Fprintf(&b, "  %d. %s (%s)\n", p.Index+1, p.Name, p.Address)
	}
	return b.String()
}

// Board - поле, строка активного игрока и, если партия окончена, итог.
func (r *Renderer) Board(state api.ServerResponse) string {
	w, h := 0, 0
	if state.Grid != nil {
		w, h = state.Grid.Width, state.Grid.Height
	}

	cells := make(map[int]api.CellView, len(state.Cells))
	for _, c := range state.Cells {
		cells[c.Pos] = c
	}

	cursor := -1
	for _, p := range state.Players {
		if p.Active {
			cursor = p.Position
		}
	}

	rows := make([]string, 0, h)
	for row := 0; row < h; row++ {
		var line strings.Builder
		for col := 0; col < w; col++ {
			pos := row*w + col
			line.WriteString(r.cell(cells[pos], pos, pos == cursor))
		}
		rows = append(rows, line.String())
	}

	var b strings.Builder
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, rows...))
	b.WriteString("\n")
	b.WriteString(r.players(state))

	switch state.Type {
	case api.TypeGameOver:
		b.WriteString(r.st.lost.Render("Game Over"))
		b.WriteString("\n" + state.Message + "\n")
	case api.TypeWon:
		b.WriteString(r.st.won.Render("You Won!"))
		b.WriteString("\n" + state.Message + "\n")
	}
	return b.String()
}

func (r *Renderer) cell(c api.CellView, pos int, isCursor bool) string {
	symbol, style := SymbolHidden, r.st.hidden
	switch {
	case c.Revealed && c.Bomb:
		symbol, style = SymbolBomb, r.st.bomb
	case c.Revealed && c.Neighbors > 0:
		symbol, style = strconv.Itoa(c.Neighbors), r.st.number
	case c.Revealed:
		symbol, style = SymbolEmpty, r.st.open
	case c.Marked:
		symbol, style = SymbolMarked, r.st.marked
	}

	if isCursor {
		return r.st.cursor.Render("[" + symbol + "]")
	}
	return style.Render(symbol)
}

// players: активный игрок первым со звездочкой, как на экране устройства.
func (r *Renderer) players(state api.ServerResponse) string {
	if len(state.Players) == 0 {
		return r.st.warning.Render("No devices connected") + "\n"
	}

	var b strings.Builder
	for _, p := range state.Players {
		if p.Active {
			b.WriteString(r.st.active.Render(p.Name+" *") + "\n")
		}
	}
	for _, p := range state.Players {
		if !p.Active {
			b.WriteString(r.st.inactive.Render(p.Name) + "\n")
		}
	}
	return b.String()
}
