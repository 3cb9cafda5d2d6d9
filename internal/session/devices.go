package session

import (
	"fmt"

	"github.com/HoriaMercan/PM-project/internal/domain"
)

// Registry - список подключенных устройств в порядке ходов.
// Индекс устройства совпадает с индексом игрока в движке.
// Не синхронизирован: меняется только потребителем.
type Registry struct {
	devices []domain.Device
}

// Add регистрирует устройство. Повторное подключение того же адреса
// возвращает его текущий индекс. Если мест нет, ok == false.
func (r *Registry) Add(addr domain.Address) (index int, ok bool) {
	if i := r.Index(addr); i >= 0 {
		return i, true
	}
	if len(r.devices) >= domain.PlayerCount {
		return -1, false
	}
	r.devices = append(r.devices, domain.Device{
		Address: addr,
		Name:    fmt.Sprintf("Device %d", len(r.devices)+1),
	})
	return len(r.devices) - 1, true
}

// Remove удаляет устройство, оставшиеся сдвигаются вниз.
func (r *Registry) Remove(addr domain.Address) bool {
	i := r.Index(addr)
	if i < 0 {
		return false
	}
	r.devices = append(r.devices[:i], r.devices[i+1:]...)
	return true
}

// Index возвращает индекс устройства или -1
func (r *Registry) Index(addr domain.Address) int {
	for i, d := range r.devices {
		if d.Address == addr {
			return i
		}
	}
	return -1
}

// Rename меняет имя устройства. Имя обрезается до MaxNameLength байт.
func (r *Registry) Rename(addr domain.Address, name []byte) bool {
	i := r.Index(addr)
	if i < 0 {
		return false
	}
	if len(name) > domain.MaxNameLength {
		name = name[:domain.MaxNameLength]
	}
	r.devices[i].Name = string(name)
	return true
}

// At возвращает устройство по индексу.
func (r *Registry) At(i int) (domain.Device, bool) {
	if i < 0 || i >= len(r.devices) {
		return domain.Device{}, false
	}
	return r.devices[i], true
}

// Name - имя устройства по индексу или пустая строка
func (r *Registry) Name(i int) string {
	d, _ := r.At(i)
	return d.Name
}

func (r *Registry) Len() int {
	return len(r.devices)
}

// List возвращает копию списка
func (r *Registry) List() []domain.Device {
	out := make([]domain.Device, len(r.devices))
	copy(out, r.devices)
	return out
}
