package network

import (
	"sync"

	"github.com/HoriaMercan/PM-project/internal/domain"
	"github.com/HoriaMercan/PM-project/pkg/api"
	"github.com/HoriaMercan/PM-project/pkg/logger"
)

// Broadcaster занимается только рассылкой сообщений подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: адрес устройства -> личный канал
	subscribers map[domain.Address]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[domain.Address]chan api.ServerResponse),
	}
}

// Register создает личный канал для устройства.
// Повторная регистрация закрывает старый канал.
func (b *Broadcaster) Register(addr domain.Address) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[addr]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, 100)
	b.subscribers[addr] = ch
	return ch
}

// Unregister удаляет подписчика, но только если ch - его текущий канал:
// старое соединение не должно закрыть канал нового.
// Возвращает true, если подписчик действительно удален.
func (b *Broadcaster) Unregister(addr domain.Address, ch chan api.ServerResponse) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cur, ok := b.subscribers[addr]; ok && cur == ch {
		close(cur)
		delete(b.subscribers, addr)
		return true
	}
	return false
}

// SendTo отправляет сообщение конкретному устройству (Unicast)
func (b *Broadcaster) SendTo(addr domain.Address, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[addr]; ok {
		select {
		case ch <- msg:
		default:
			logger.Log.WithField("address", addr).Debug("Hub: channel full, update dropped")
		}
	}
}

// Broadcast отправляет всем (меню, зрители)
func (b *Broadcaster) Broadcast(msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
