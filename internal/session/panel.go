package session

import (
	"sync/atomic"
	"time"
)

// Button - кнопка панели управления
type Button int

const (
	ButtonReset Button = iota
	ButtonMark
	ButtonMenu
)

var buttonNames = map[Button]string{
	ButtonReset: "reset",
	ButtonMark:  "mark",
	ButtonMenu:  "menu",
}

func (b Button) String() string {
	if s, ok := buttonNames[b]; ok {
		return s
	}
	return "unknown"
}

// ParseButton разбирает имя кнопки из URL панели.
func ParseButton(s string) (Button, bool) {
	for b, name := range buttonNames {
		if name == s {
			return b, true
		}
	}
	return 0, false
}

// panel хранит нажатия как атомарные флаги. Нажатие может прийти из любой
// горутины (HTTP-обработчик), сбрасывает флаги только потребитель.
type panel struct {
	flags     [3]atomic.Bool
	lastPress atomic.Int64 // UnixNano последнего принятого нажатия
	debounce  time.Duration
	now       func() time.Time
}

func newPanel(debounce time.Duration, now func() time.Time) *panel {
	return &panel{debounce: debounce, now: now}
}

// press выставляет флаг кнопки. Нажатие ближе debounce к предыдущему
// принятому (любой кнопки) отбрасывается.
func (p *panel) press(b Button) bool {
	if b < ButtonReset || b > ButtonMenu {
		return false
	}
	now := p.now().UnixNano()
	last := p.lastPress.Load()
	if last != 0 && time.Duration(now-last) < p.debounce {
		return false
	}
	if !p.lastPress.CompareAndSwap(last, now) {
		return false
	}
	p.flags[b].Store(true)
	return true
}

// take сбрасывает флаг и сообщает, было ли нажатие.
func (p *panel) take(b Button) bool {
	return p.flags[b].Swap(false)
}
