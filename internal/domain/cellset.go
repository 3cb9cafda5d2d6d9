package domain

import "math/bits"

// CellSet - битовое множество клеток поля.
// Раскладка: байт = строка, бит = столбец.
type CellSet [CellCount / 8]byte

func (s *CellSet) Has(p Position) bool {
	return s[p.Row()]&(1<<uint(p.Col())) != 0
}

func (s *CellSet) Set(p Position) {
	s[p.Row()] |= 1 << uint(p.Col())
}

func (s *CellSet) Clear(p Position) {
	s[p.Row()] &^= 1 << uint(p.Col())
}

// Toggle инвертирует бит и возвращает новое значение.
func (s *CellSet) Toggle(p Position) bool {
	s[p.Row()] ^= 1 << uint(p.Col())
	return s.Has(p)
}

// Count - количество установленных битов
func (s *CellSet) Count() int {
	n := 0
	for _, b := range s {
		n += bits.OnesCount8(b)
	}
	return n
}
