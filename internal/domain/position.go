package domain

import "fmt"

// Position - линейный индекс клетки: row*Width + col.
type Position uint8

// NewPosition собирает позицию из строки и столбца. Координаты не проверяются.
func NewPosition(row, col int) Position {
	return Position(row*Width + col)
}

// Row возвращает номер строки (0..Height-1)
func (p Position) Row() int {
	return int(p) / Width
}

// Col возвращает номер столбца (0..Width-1)
func (p Position) Col() int {
	return int(p) % Width
}

// Valid true, если позиция лежит внутри поля
func (p Position) Valid() bool {
	return int(p) < CellCount
}

// InBounds проверяет координаты до их упаковки в Position.
func InBounds(row, col int) bool {
	return row >= 0 && row < Height && col >= 0 && col < Width
}

// Neighbors вызывает fn для каждой соседней клетки (до 8, включая диагонали).
// Клетки за краем поля пропускаются, переноса через край нет.
func (p Position) Neighbors(fn func(Position)) {
	row, col := p.Row(), p.Col()
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nr, nc := row+dr, col+dc
			if InBounds(nr, nc) {
				fn(NewPosition(nr, nc))
			}
		}
	}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row(), p.Col())
}
