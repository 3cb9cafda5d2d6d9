package engine

import (
	"fmt"

	"github.com/HoriaMercan/PM-project/internal/domain"
)

// BombSetFrom собирает BombSet из записанных позиций.
func BombSetFrom(positions []domain.Position) (BombSet, error) {
	var bombs BombSet
	if len(positions) != len(bombs) {
		return bombs, fmt.Errorf("expected %d bombs, got %d", len(bombs), len(positions))
	}
	for i, p := range positions {
		if !p.Valid() {
			return bombs, fmt.Errorf("bomb %d out of range: %d", i, p)
		}
		bombs[i] = p
	}
	return bombs, nil
}

// Replay восстанавливает партию по записи: тот же расклад и та же лента действий.
func Replay(session *domain.ReplaySession) (*Game, error) {
	bombs, err := BombSetFrom(session.Bombs)
	if err != nil {
		return nil, fmt.Errorf("invalid replay layout: %w", err)
	}

	g := NewGameWithBombs(bombs)
	for i, act := range session.Actions {
		if int(act.Player) >= domain.PlayerCount {
			return nil, fmt.Errorf("action %d: invalid player %d", i, act.Player)
		}
		g.SetTurn(int(act.Player))

		if act.Command == domain.CommandMark {
			g.MarkCurrentCell()
			continue
		}
		g.MovePlayer(act.Command)
	}
	return g, nil
}
