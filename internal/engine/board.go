package engine

import (
	"errors"
	"fmt"
	"io"

	"github.com/HoriaMercan/PM-project/internal/domain"
)

// ErrShortRandom возвращается, если источник не смог заполнить буфер бомб.
var ErrShortRandom = errors.New("random source returned too few bytes")

// cellMask переводит случайный байт в диапазон [0, CellCount)
const cellMask = domain.CellCount - 1

// BombSet - позиции бомб. Дубликаты возможны и сокращают реальное число бомб.
type BombSet [domain.NumBombs]domain.Position

// GenerateBombs читает NumBombs байтов из r и маскирует каждый в координату поля.
// Уникальность не гарантируется.
func GenerateBombs(r io.Reader) (BombSet, error) {
	var raw [domain.NumBombs]byte
	if _, err := io.ReadFull(r, raw[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return BombSet{}, ErrShortRandom
		}
		return BombSet{}, fmt.Errorf("failed to read bomb layout: %w", err)
	}

	var bombs BombSet
	for i, b := range raw {
		bombs[i] = domain.Position(b & cellMask)
	}
	return bombs, nil
}

// Contains - линейный поиск по раскладу.
func (b *BombSet) Contains(p domain.Position) bool {
	for _, bomb := range b {
		if bomb == p {
			return true
		}
	}
	return false
}

// Distinct возвращает фактическое число бомб без дубликатов
func (b *BombSet) Distinct() int {
	var seen domain.CellSet
	for _, bomb := range b {
		seen.Set(bomb)
	}
	return seen.Count()
}

// Positions возвращает бомбы срезом (для реплеев и DTO)
func (b *BombSet) Positions() []domain.Position {
	out := make([]domain.Position, len(b))
	copy(out, b[:])
	return out
}

// CountNeighborBombs считает бомбы в соседних клетках (до 8).
func CountNeighborBombs(bombs *BombSet, p domain.Position) int {
	count := 0
	p.Neighbors(func(n domain.Position) {
		if bombs.Contains(n) {
			count++
		}
	})
	return count
}
