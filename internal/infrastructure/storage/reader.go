package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/HoriaMercan/PM-project/internal/domain"
)

func (s *ReplayService) Load(path string) (*domain.ReplaySession, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readBinary(f)
}

// List возвращает пути записей в каталоге, по имени (то есть по времени).
func (s *ReplayService) List() ([]string, error) {
	paths, err := filepath.Glob(filepath.Join(s.SaveDir, "*"+FileExt))
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

// maxPreallocActions ограничивает начальную емкость среза действий
const maxPreallocActions = 1024

func readBinary(r io.Reader) (*domain.ReplaySession, error) {
	var header ReplayFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	if string(header.Magic[:]) != MagicHeader {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMagic, header.Magic[:])
	}
	if header.Version != Version1 {
		return nil, fmt.Errorf("%w: %d (expected %d)", ErrUnsupportedVersion, header.Version, Version1)
	}

	// Счетчикам из заголовка не доверяем: расклад всегда NumBombs,
	// а действия читаются по одному без предварительного выделения.
	if header.BombCount != domain.NumBombs {
		return nil, fmt.Errorf("%w: %d (expected %d)", ErrBombCount, header.BombCount, domain.NumBombs)
	}

	session := &domain.ReplaySession{
		Timestamp: header.Timestamp,
		Bombs:     make([]domain.Position, header.BombCount),
		Actions:   make([]domain.ReplayAction, 0, min(header.ActionCount, maxPreallocActions)),
	}

	bombs := make([]byte, header.BombCount)
	if _, err := io.ReadFull(r, bombs); err != nil {
		return nil, fmt.Errorf("failed to read bombs: %w", err)
	}
	for i, b := range bombs {
		session.Bombs[i] = domain.Position(b)
	}

	for i := uint32(0); i < header.ActionCount; i++ {
		var rec ActionRecord
		if err := binary.Read(r, binary.LittleEndian, &rec); err != nil {
			return nil, fmt.Errorf("failed to read action %d: %w", i, err)
		}
		session.Actions = append(session.Actions, domain.ReplayAction{
			Player:  rec.Player,
			Command: domain.Command(rec.Command),
		})
	}

	return session, nil
}
