package api

// --- СЕРВЕР -> КЛИЕНТ ---

// Типы сообщений
const (
	TypeEcho     = "ECHO"
	TypeMenu     = "MENU"
	TypeUpdate   = "UPDATE"
	TypeGameOver = "GAME_OVER"
	TypeWon      = "WON"
)

// Звуковые подсказки. Клиент сам решает, какую мелодию играть.
const (
	CueMove = "move"
	CueMark = "mark"
	CueWin  = "win"
	CueLose = "lose"
)

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Снимок поля персональный: пометки показываются с точки зрения получателя.
type ServerResponse struct {
	// Type MENU, UPDATE, GAME_OVER, WON или ECHO.
	Type string `json:"type"`

	// Echo сырые данные последнего сообщения клиента (только для ECHO).
	Echo string `json:"echo,omitempty"`

	// Viewer индекс игрока, для которого собран снимок (-1 для зрителя).
	Viewer int `json:"viewer"`

	// ActivePlayer индекс игрока, чей сейчас ход.
	// Клиент принимает ввод, только если ActivePlayer == Viewer.
	ActivePlayer int `json:"activePlayer"`

	// Grid размеры поля.
	Grid *GridMeta `json:"grid,omitempty"`

	// Cells только открытые или помеченные клетки. Остальные закрыты.
	Cells []CellView `json:"cells,omitempty"`

	// Players подключенные устройства в порядке ходов.
	Players []PlayerView `json:"players,omitempty"`

	// Cue звук, который стоит проиграть.
	Cue string `json:"cue,omitempty"`

	// Message текст финального экрана ("Lose: Device 1").
	Message string `json:"message,omitempty"`

	// Logs новые записи игрового лога.
	Logs []LogEntry `json:"logs,omitempty"`
}

// GridMeta содержит размеры поля
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// CellView одна видимая клетка.
type CellView struct {
	Pos int `json:"pos"`
	Row int `json:"row"`
	Col int `json:"col"`

	Revealed bool `json:"revealed"`
	Marked   bool `json:"marked,omitempty"`

	// Bomb заполняется только для открытых клеток.
	Bomb bool `json:"bomb,omitempty"`

	// Neighbors число бомб вокруг открытой клетки.
	Neighbors int `json:"neighbors,omitempty"`
}

// PlayerView одно подключенное устройство
type PlayerView struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Position int    `json:"position"`
	Active   bool   `json:"active"`
}

// LogEntry представляет одну запись в игровом логе.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, GAME, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}
