package domain

// Размеры поля. CellCount обязан быть степенью двойки: позиции бомб
// получаются маскированием случайного байта.
const (
	Width     = 8
	Height    = 16
	CellCount = Width * Height
	NumBombs  = CellCount / 8
)

// PlayerCount - игроков всегда двое.
const PlayerCount = 2

// Ограничения транспорта и реестра устройств
const (
	QueueCapacity    = 10
	MaxMessageLength = 20
	MaxNameLength    = 9
)
