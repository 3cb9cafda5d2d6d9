package domain

// Command - односимвольная команда от транспорта.
// Значение совпадает с байтом, который присылает клиент.
type Command byte

const (
	CommandUnknown Command = 0
	CommandLeft    Command = 'L'
	CommandRight   Command = 'R'
	CommandUp      Command = 'U'
	CommandDown    Command = 'D'
	CommandShoot   Command = 'S'
	CommandRename  Command = 'N'

	// CommandMark приходит только с кнопки панели и пишется в реплеи.
	// Через транспорт не принимается.
	CommandMark Command = 'M'
)

// Маппинг для логов Command -> String
var commandToString = map[Command]string{
	CommandLeft:   "LEFT",
	CommandRight:  "RIGHT",
	CommandUp:     "UP",
	CommandDown:   "DOWN",
	CommandShoot:  "SHOOT",
	CommandRename: "RENAME",
	CommandMark:   "MARK",
}

// ParseCommand конвертирует первый байт сообщения в Command.
// Сравнение точное: 'l' - неизвестная команда.
func ParseCommand(b byte) Command {
	switch c := Command(b); c {
	case CommandLeft, CommandRight, CommandUp, CommandDown, CommandShoot, CommandRename:
		return c
	}
	return CommandUnknown
}

// IsMovement true для четырех направлений
func (c Command) IsMovement() bool {
	switch c {
	case CommandLeft, CommandRight, CommandUp, CommandDown:
		return true
	}
	return false
}

// String реализует интерфейс Stringer (для логов)
func (c Command) String() string {
	if val, ok := commandToString[c]; ok {
		return val
	}
	return "UNKNOWN"
}
