package storage

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/HoriaMercan/PM-project/internal/domain"
	"github.com/HoriaMercan/PM-project/pkg/logger"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	MagicHeader string = `BBRP` // 4 байта
	Version1    uint32 = 1

	// FileExt - расширение файлов записей
	FileExt = ".bbrp"
)

var (
	ErrInvalidMagic       = errors.New("invalid replay magic")
	ErrUnsupportedVersion = errors.New("unsupported replay version")
	ErrBombCount          = errors.New("unexpected replay bomb count")
)

// ReplayFileHeader - точное представление заголовка файла.
// binary.Write пишет его целиком: только массивы и числа, без выравнивания.
type ReplayFileHeader struct {
	Magic       [4]byte // 4 байта
	Version     uint32  // 4 байта
	Timestamp   int64   // 8 байт
	BombCount   uint16  // 2 байта
	ActionCount uint32  // 4 байта
}

// ActionRecord - одно действие: игрок и байт команды.
type ActionRecord struct {
	Player  uint8
	Command uint8
}

type ReplayService struct {
	SaveDir string
}

// NewReplayService создает каталог для записей, если его нет.
func NewReplayService(dir string) (*ReplayService, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create replay dir: %w", err)
	}
	return &ReplayService{SaveDir: dir}, nil
}

// Save пишет запись в файл replay_<timestamp>_<id>.bbrp.
// При ошибке недописанный файл удаляется.
func (s *ReplayService) Save(session *domain.ReplaySession) error {
	filename := fmt.Sprintf("replay_%d_%s%s", session.Timestamp, uuid.NewString()[:8], FileExt)
	path := filepath.Join(s.SaveDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create replay file: %w", err)
	}

	if err := writeFile(f, session); err != nil {
		if rmErr := os.Remove(path); rmErr != nil {
			logger.For("replay").WithError(rmErr).WithField("path", path).Warn("Failed to remove partial replay")
		}
		return err
	}

	logger.For("replay").WithFields(logrus.Fields{
		"path":    path,
		"actions": len(session.Actions),
	}).Info("Replay saved")
	return nil
}

// writeFile пишет запись и закрывает файл. Ошибка Close тоже считается
// ошибкой записи.
func writeFile(f *os.File, session *domain.ReplaySession) error {
	w := bufio.NewWriter(f)
	if err := writeBinary(w, session); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush replay: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close replay file: %w", err)
	}
	return nil
}

func writeBinary(w io.Writer, s *domain.ReplaySession) error {
	if len(s.Bombs) > 0xFFFF {
		return fmt.Errorf("too many bombs: %d", len(s.Bombs))
	}

	header := ReplayFileHeader{
		Version:     Version1,
		Timestamp:   s.Timestamp,
		BombCount:   uint16(len(s.Bombs)),
		ActionCount: uint32(len(s.Actions)),
	}
	copy(header.Magic[:], MagicHeader)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// Позиции бомб помещаются в байт
	bombs := make([]byte, len(s.Bombs))
	for i, p := range s.Bombs {
		bombs[i] = byte(p)
	}
	if _, err := w.Write(bombs); err != nil {
		return fmt.Errorf("failed to write bombs: %w", err)
	}

	for i, act := range s.Actions {
		rec := ActionRecord{Player: act.Player, Command: byte(act.Command)}
		if err := binary.Write(w, binary.LittleEndian, &rec); err != nil {
			return fmt.Errorf("failed to write action %d: %w", i, err)
		}
	}
	return nil
}
