package engine

import (
	"crypto/rand"
	"io"
	mrand "math/rand"
)

// Config хранит параметры генерации партий
type Config struct {
	// Seed - зерно генератора бомб. 0 означает аппаратную (криптографическую)
	// случайность (crypto/rand).
	Seed int64
}

// NewConfig создает конфиг по умолчанию (настоящая случайность)
func NewConfig() Config {
	return Config{Seed: 0}
}

// RandomSource возвращает источник случайных байтов для GenerateBombs.
// С ненулевым Seed партии воспроизводимы.
func (c Config) RandomSource() io.Reader {
	if c.Seed == 0 {
		return rand.Reader
	}
	return mrand.New(mrand.NewSource(c.Seed))
}
