package queue

import (
	"sync"
	"time"

	"github.com/HoriaMercan/PM-project/internal/domain"
)

// Message - неизменяемая запись о входящем сообщении от устройства
type Message struct {
	Sender     domain.Address
	Data       []byte
	ReceivedAt time.Time
}

// MessageQueue - ограниченная FIFO-очередь между транспортом (производители)
// и игровым циклом (единственный потребитель).
// При переполнении новое сообщение отбрасывается, очередь не трогается.
type MessageQueue struct {
	mu    sync.Mutex
	buf   []Message
	head  int // куда писать
	tail  int // откуда читать
	count int
}

func New(capacity int) *MessageQueue {
	if capacity <= 0 {
		capacity = domain.QueueCapacity
	}
	return &MessageQueue{buf: make([]Message, capacity)}
}

// Push копирует данные (обрезая до MaxMessageLength) и ставит сообщение в очередь.
// Возвращает false, если очередь полна и сообщение отброшено.
func (q *MessageQueue) Push(sender domain.Address, data []byte) bool {
	if len(data) > domain.MaxMessageLength {
		data = data[:domain.MaxMessageLength]
	}
	msg := Message{
		Sender:     sender,
		Data:       append([]byte(nil), data...),
		ReceivedAt: time.Now(),
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == len(q.buf) {
		return false
	}
	q.buf[q.head] = msg
	q.head = (q.head + 1) % len(q.buf)
	q.count++
	return true
}

// Pop достает самое старое сообщение. ok == false, если очередь пуста.
func (q *MessageQueue) Pop() (msg Message, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.count == 0 {
		return Message{}, false
	}
	msg = q.buf[q.tail]
	q.buf[q.tail] = Message{} // отпускаем данные
	q.tail = (q.tail + 1) % len(q.buf)
	q.count--
	return msg, true
}

func (q *MessageQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

func (q *MessageQueue) Cap() int {
	return len(q.buf)
}
