package engine

import "github.com/HoriaMercan/PM-project/internal/domain"

// Shoot открывает клетку под курсором активного игрока.
// Бомба: клетка открывается, партия проиграна, заливки нет.
// Иначе клетка открывается и запускается заливка.
func (g *Game) Shoot() Outcome {
	pos := g.positions[g.turn]
	if g.bombs.Contains(pos) {
		g.setRevealed(pos)
		g.lost = true
		return Lost
	}

	g.setRevealed(pos)
	g.floodFill(pos)
	return Continued
}

// floodFill - BFS от уже открытой клетки origin.
// Клетка с бомбами по соседству остается открытой (показывает число),
// но дальше заливка через нее не идет. Очередь размером с поле:
// каждая клетка попадает в нее не больше одного раза.
func (g *Game) floodFill(origin domain.Position) {
	var queue [domain.CellCount]domain.Position
	front, rear := 0, 0
	queue[rear] = origin
	rear++

	for front < rear {
		current := queue[front]
		front++

		if CountNeighborBombs(&g.bombs, current) > 0 {
			continue
		}

		current.Neighbors(func(n domain.Position) {
			if g.revealed.Has(n) {
				return
			}
			g.setRevealed(n)
			queue[rear] = n
			rear++
		})
	}
}

// setRevealed открывает клетку и снимает с нее пометки обоих игроков:
// открытая клетка не может быть помеченной ни для кого.
func (g *Game) setRevealed(p domain.Position) {
	g.revealed.Set(p)
	for i := range g.marked {
		g.marked[i].Clear(p)
	}
}
