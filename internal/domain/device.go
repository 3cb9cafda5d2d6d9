package domain

import "time"

// Address - адрес удаленного устройства (аналог MAC в BLE-версии).
type Address string

func (a Address) String() string {
	return string(a)
}

// Device - подключенный игрок
type Device struct {
	Address Address `json:"address"`
	Name    string  `json:"name"`
}

// Outcome завершенной партии
const (
	OutcomeLost = "LOST"
	OutcomeWon  = "WON"
)

// GameResult - запись о завершенной партии (хранится в БД)
type GameResult struct {
	ID         string    `json:"id"`
	FinishedAt time.Time `json:"finishedAt"`
	Outcome    string    `json:"outcome"`
	Player     string    `json:"player"` // Кто проиграл или выиграл
	Opponent   string    `json:"opponent,omitempty"`
	Moves      int       `json:"moves"`
	Bombs      int       `json:"bombs"` // Фактическое (без дублей) число бомб
	Revealed   int       `json:"revealed"`
}
