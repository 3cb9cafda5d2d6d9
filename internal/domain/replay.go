package domain

// ReplayAction - одно примененное к движку действие
type ReplayAction struct {
	Player  uint8   `json:"player"`  // Чей ход
	Command Command `json:"command"` // Что сделал
}

// ReplaySession - полная запись партии: расклад бомб и лента действий.
// Бомбы хранятся как есть, включая дубликаты.
type ReplaySession struct {
	Timestamp int64          `json:"timestamp"`
	Bombs     []Position     `json:"bombs"`
	Actions   []ReplayAction `json:"actions"`
}

// Record добавляет действие в ленту
func (r *ReplaySession) Record(player int, cmd Command) {
	r.Actions = append(r.Actions, ReplayAction{Player: uint8(player), Command: cmd})
}
