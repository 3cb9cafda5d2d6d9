package render

import (
	"io"
	"sync"

	"github.com/HoriaMercan/PM-project/pkg/api"
	"github.com/HoriaMercan/PM-project/pkg/logger"
)

const clearScreen = "\033[H\033[2J"

// Console выводит каждый снимок в writer (stdout в режиме -console).
type Console struct {
	mu      sync.Mutex
	w       io.Writer
	r       *Renderer
	refresh bool
}

// NewConsole создает консольный дисплей. refresh - очищать экран
// перед каждым кадром.
func NewConsole(w io.Writer, refresh bool) *Console {
	return &Console{w: w, r: New(w), refresh: refresh}
}

// Show рисует кадр. Ошибка записи только логируется.
func (c *Console) Show(state api.ServerResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()

	frame := c.r.Render(state)
	if c.refresh {
		frame = clearScreen + frame
	}
	if _, err := io.WriteString(c.w, frame); err != nil {
		logger.Log.WithError(err).Debug("console write failed")
	}
}
