package engine

import (
	"fmt"
	"io"

	"github.com/HoriaMercan/PM-project/internal/domain"
)

// Outcome - результат выстрела
type Outcome int

const (
	Continued Outcome = iota
	Lost
)

func (o Outcome) String() string {
	if o == Lost {
		return "LOST"
	}
	return "CONTINUED"
}

// Status - состояние партии с точки зрения одного игрока
type Status int

const (
	InProgress Status = iota
	StatusLost
	StatusWon
)

func (s Status) String() string {
	switch s {
	case StatusLost:
		return "LOST"
	case StatusWon:
		return "WON"
	default:
		return "IN_PROGRESS"
	}
}

// Game - состояние одной партии: бомбы, общие открытые клетки,
// пометки и курсоры каждого игрока.
//
// Game не синхронизирован: его трогает только одна горутина-потребитель.
// Новая партия = новый экземпляр, частичного сброса нет.
type Game struct {
	bombs     BombSet
	revealed  domain.CellSet
	marked    [domain.PlayerCount]domain.CellSet
	positions [domain.PlayerCount]domain.Position
	turn      int
	lost      bool
}

// NewGame создает партию со случайным раскладом из r.
func NewGame(r io.Reader) (*Game, error) {
	bombs, err := GenerateBombs(r)
	if err != nil {
		return nil, fmt.Errorf("failed to generate bombs: %w", err)
	}
	return NewGameWithBombs(bombs), nil
}

// NewGameWithBombs создает партию с заданным раскладом (тесты, реплеи).
func NewGameWithBombs(bombs BombSet) *Game {
	return &Game{bombs: bombs}
}

// --- Ход игрока ---

// MovePlayer - единая точка входа для команд активного игрока.
// Направления двигают курсор, CommandShoot стреляет, остальное игнорируется.
func (g *Game) MovePlayer(cmd domain.Command) Outcome {
	switch {
	case cmd.IsMovement():
		g.Move(cmd)
	case cmd == domain.CommandShoot:
		return g.Shoot()
	}
	return Continued
}

// Move сдвигает курсор активного игрока на одну клетку.
// Попытка выйти за край - не ошибка, курсор просто остается на месте.
func (g *Game) Move(dir domain.Command) {
	pos := g.positions[g.turn]
	row, col := pos.Row(), pos.Col()

	switch dir {
	case domain.CommandUp:
		if row > 0 {
			row--
		}
	case domain.CommandDown:
		if row < domain.Height-1 {
			row++
		}
	case domain.CommandLeft:
		if col > 0 {
			col--
		}
	case domain.CommandRight:
		if col < domain.Width-1 {
			col++
		}
	default:
		return
	}

	g.positions[g.turn] = domain.NewPosition(row, col)
}

// MarkCurrentCell переключает пометку "здесь бомба" активного игрока.
// На открытой клетке ничего не делает.
func (g *Game) MarkCurrentCell() {
	pos := g.positions[g.turn]
	if g.revealed.Has(pos) {
		return
	}
	g.marked[g.turn].Toggle(pos)
}

// AdvanceTurn передает ход другому игроку. Движок сам его не вызывает.
func (g *Game) AdvanceTurn() {
	g.turn = 1 - g.turn
}

// SetTurn делает активным игрока player. Некорректный индекс игнорируется.
func (g *Game) SetTurn(player int) {
	if player < 0 || player >= domain.PlayerCount {
		return
	}
	g.turn = player
}

// --- Запросы ---

// Turn возвращает индекс активного игрока (0 или 1)
func (g *Game) Turn() int {
	return g.turn
}

// ActivePosition - позиция курсора активного игрока
func (g *Game) ActivePosition() domain.Position {
	return g.positions[g.turn]
}

// PlayerPosition - позиция курсора конкретного игрока
func (g *Game) PlayerPosition(player int) domain.Position {
	if player < 0 || player >= domain.PlayerCount {
		return 0
	}
	return g.positions[player]
}

func (g *Game) IsBomb(p domain.Position) bool {
	return g.bombs.Contains(p)
}

func (g *Game) IsRevealed(p domain.Position) bool {
	return p.Valid() && g.revealed.Has(p)
}

// IsMarked - пометка с точки зрения игрока player
func (g *Game) IsMarked(p domain.Position, player int) bool {
	if !p.Valid() || player < 0 || player >= domain.PlayerCount {
		return false
	}
	return g.marked[player].Has(p)
}

func (g *Game) NeighborBombs(p domain.Position) int {
	return CountNeighborBombs(&g.bombs, p)
}

// Bombs возвращает копию расклада
func (g *Game) Bombs() BombSet {
	return g.bombs
}

// RevealedCount - сколько клеток уже открыто
func (g *Game) RevealedCount() int {
	return g.revealed.Count()
}

// --- Конец партии ---

// IsLost становится true в момент выстрела в бомбу и больше не сбрасывается.
func (g *Game) IsLost() bool {
	return g.lost
}

// Won проверяет победу с точки зрения игрока player: все безопасные клетки
// открыты и все бомбы помечены именно этим игроком.
// Считается заново при каждом вызове, отдельного счетчика нет.
func (g *Game) Won(player int) bool {
	if player < 0 || player >= domain.PlayerCount {
		return false
	}
	for p := domain.Position(0); p < domain.CellCount; p++ {
		if g.bombs.Contains(p) {
			if !g.marked[player].Has(p) {
				return false
			}
		} else if !g.revealed.Has(p) {
			return false
		}
	}
	return true
}

// Status сводит IsLost и Won в одно значение
func (g *Game) Status(player int) Status {
	switch {
	case g.lost:
		return StatusLost
	case g.Won(player):
		return StatusWon
	default:
		return InProgress
	}
}
