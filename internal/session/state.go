package session

import (
	"github.com/HoriaMercan/PM-project/internal/domain"
	"github.com/HoriaMercan/PM-project/pkg/api"
)

// publish рассылает каждому игроку его персональный снимок, зрителям -
// общий. В меню всем уходит одинаковый снимок меню.
func (s *Session) publish() {
	p := &published{
		spectator: s.BuildState(-1),
		devices:   s.devices.List(),
	}
	for i := 0; i < s.devices.Len(); i++ {
		p.players = append(p.players, s.BuildState(i))
	}

	if s.pub != nil {
		if s.menu {
			s.pub.Broadcast(p.spectator)
		} else {
			for i, d := range p.devices {
				s.pub.SendTo(d.Address, p.players[i])
			}
			for _, w := range s.watchers {
				s.pub.SendTo(w, p.spectator)
			}
		}
	}
	if s.Display != nil {
		s.Display.Show(p.spectator)
	}

	s.published.Store(p)
	s.cue = ""
	s.logs = nil
	s.dirty = false
}

// BuildState собирает снимок с точки зрения игрока viewer.
// viewer < 0 - зритель: видит пометки активного игрока.
func (s *Session) BuildState(viewer int) api.ServerResponse {
	resp := api.ServerResponse{
		Type:         api.TypeUpdate,
		Viewer:       viewer,
		ActivePlayer: s.game.Turn(),
		Grid:         &api.GridMeta{Width: domain.Width, Height: domain.Height},
		Cue:          s.cue,
	}
	if len(s.logs) > 0 {
		resp.Logs = append([]api.LogEntry(nil), s.logs...)
	}

	for i, d := range s.devices.List() {
		resp.Players = append(resp.Players, api.PlayerView{
			Index:    i,
			Name:     d.Name,
			Address:  string(d.Address),
			Position: int(s.game.PlayerPosition(i)),
			Active:   i == s.game.Turn(),
		})
	}

	if s.menu {
		resp.Type = api.TypeMenu
		return resp
	}

	if s.over != nil {
		resp.Message = s.over.message
		if s.over.outcome == domain.OutcomeLost {
			resp.Type = api.TypeGameOver
		} else {
			resp.Type = api.TypeWon
		}
	}

	marksOf := viewer
	if marksOf < 0 || marksOf >= domain.PlayerCount {
		marksOf = s.game.Turn()
	}

	for p := domain.Position(0); p < domain.CellCount; p++ {
		revealed := s.game.IsRevealed(p)
		marked := s.game.IsMarked(p, marksOf)
		if !revealed && !marked {
			continue
		}
		cell := api.CellView{
			Pos:      int(p),
			Row:      p.Row(),
			Col:      p.Col(),
			Revealed: revealed,
			Marked:   marked,
		}
		if revealed {
			cell.Bomb = s.game.IsBomb(p)
			cell.Neighbors = s.game.NeighborBombs(p)
		}
		resp.Cells = append(resp.Cells, cell)
	}
	return resp
}

// Snapshot - последний разосланный снимок игрока viewer (или зрителя).
// Безопасно вызывать из любой горутины.
func (s *Session) Snapshot(viewer int) api.ServerResponse {
	p := s.published.Load()
	if p == nil {
		return api.ServerResponse{}
	}
	if viewer >= 0 && viewer < len(p.players) {
		return p.players[viewer]
	}
	return p.spectator
}

// Devices - список устройств на момент последней рассылки.
func (s *Session) Devices() []domain.Device {
	p := s.published.Load()
	if p == nil {
		return nil
	}
	out := make([]domain.Device, len(p.devices))
	copy(out, p.devices)
	return out
}

// InMenu сообщает, показано ли меню (по последней рассылке).
func (s *Session) InMenu() bool {
	return s.Snapshot(-1).Type == api.TypeMenu
}
