package engine

import "github.com/HoriaMercan/PM-project/internal/domain"

// bombsAt собирает BombSet из позиций; свободные слоты заполняются
// дубликатом последней позиции (как при коллизиях генератора).
func bombsAt(positions ...domain.Position) BombSet {
	var b BombSet
	for i := range b {
		if i < len(positions) {
			b[i] = positions[i]
		} else {
			b[i] = positions[len(positions)-1]
		}
	}
	return b
}

// moveTo ведет курсор активного игрока в target обычными командами.
func moveTo(g *Game, target domain.Position) {
	for g.ActivePosition().Row() < target.Row() {
		g.MovePlayer(domain.CommandDown)
	}
	for g.ActivePosition().Row() > target.Row() {
		g.MovePlayer(domain.CommandUp)
	}
	for g.ActivePosition().Col() < target.Col() {
		g.MovePlayer(domain.CommandRight)
	}
	for g.ActivePosition().Col() > target.Col() {
		g.MovePlayer(domain.CommandLeft)
	}
}
