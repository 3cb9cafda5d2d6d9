package session

import "time"

// Config - настройки сессии
type Config struct {
	// PollInterval период опроса очереди в Run.
	PollInterval time.Duration

	// StartInMenu - начинать с экрана меню (как после включения устройства).
	StartInMenu bool

	// Debounce минимальный интервал между нажатиями кнопок панели.
	// Общий для всех кнопок.
	Debounce time.Duration

	// StoreTimeout ограничивает запись результата в хранилище.
	StoreTimeout time.Duration
}

func NewConfig() Config {
	return Config{
		PollInterval: 10 * time.Millisecond,
		StartInMenu:  true,
		Debounce:     300 * time.Millisecond,
		StoreTimeout: 2 * time.Second,
	}
}
