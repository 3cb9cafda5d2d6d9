package storage

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"testing"

	"github.com/HoriaMercan/PM-project/internal/domain"
	"github.com/HoriaMercan/PM-project/internal/engine"
	"github.com/HoriaMercan/PM-project/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func sampleSession() *domain.ReplaySession {
	bombs := make([]domain.Position, domain.NumBombs)
	for i := range bombs {
		bombs[i] = domain.NewPosition(15, i%domain.Width)
	}
	s := &domain.ReplaySession{Timestamp: 1714564800, Bombs: bombs}
	s.Record(0, domain.CommandDown)
	s.Record(0, domain.CommandMark)
	s.Record(0, domain.CommandShoot)
	s.Record(1, domain.CommandRight)
	s.Record(1, domain.CommandShoot)
	return s
}

func TestBinaryRoundTrip(t *testing.T) {
	orig := sampleSession()

	var buf bytes.Buffer
	if err := writeBinary(&buf, orig); err != nil {
		t.Fatalf("writeBinary: %v", err)
	}

	// Заголовок 22 байта + по байту на бомбу + по 2 байта на действие
	wantSize := binary.Size(ReplayFileHeader{}) + len(orig.Bombs) + 2*len(orig.Actions)
	if buf.Len() != wantSize {
		t.Errorf("size = %d, want %d", buf.Len(), wantSize)
	}

	got, err := readBinary(&buf)
	if err != nil {
		t.Fatalf("readBinary: %v", err)
	}
	if got.Timestamp != orig.Timestamp {
		t.Errorf("timestamp = %d, want %d", got.Timestamp, orig.Timestamp)
	}
	if len(got.Bombs) != len(orig.Bombs) || len(got.Actions) != len(orig.Actions) {
		t.Fatalf("got %d bombs / %d actions", len(got.Bombs), len(got.Actions))
	}
	for i := range orig.Bombs {
		if got.Bombs[i] != orig.Bombs[i] {
			t.Errorf("bomb %d = %v, want %v", i, got.Bombs[i], orig.Bombs[i])
		}
	}
	for i := range orig.Actions {
		if got.Actions[i] != orig.Actions[i] {
			t.Errorf("action %d = %+v, want %+v", i, got.Actions[i], orig.Actions[i])
		}
	}
}

func TestReadBinaryErrors(t *testing.T) {
	valid := func() []byte {
		var buf bytes.Buffer
		if err := writeBinary(&buf, sampleSession()); err != nil {
			t.Fatalf("writeBinary: %v", err)
		}
		return buf.Bytes()
	}

	tests := []struct {
		name    string
		mutate  func([]byte) []byte
		wantErr error
	}{
		{
			name:    "bad magic",
			mutate:  func(b []byte) []byte { b[0] = 'X'; return b },
			wantErr: ErrInvalidMagic,
		},
		{
			name:    "future version",
			mutate:  func(b []byte) []byte { b[4] = 9; return b },
			wantErr: ErrUnsupportedVersion,
		},
		{
			name:   "truncated actions",
			mutate: func(b []byte) []byte { return b[:len(b)-1] },
		},
		{
			name:   "truncated header",
			mutate: func(b []byte) []byte { return b[:10] },
		},
		{
			name: "bomb count mismatch",
			mutate: func(b []byte) []byte {
				binary.LittleEndian.PutUint16(b[16:18], 0xFFFF)
				return b
			},
			wantErr: ErrBombCount,
		},
		{
			// Заголовок обещает 2^31 действий, полезной нагрузки нет
			name: "huge action count without payload",
			mutate: func(b []byte) []byte {
				binary.LittleEndian.PutUint32(b[18:22], 0x7FFFFFFF)
				return b[:binary.Size(ReplayFileHeader{})+domain.NumBombs]
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readBinary(bytes.NewReader(tt.mutate(valid())))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReplayServiceSaveLoadReplays(t *testing.T) {
	svc, err := NewReplayService(t.TempDir())
	if err != nil {
		t.Fatalf("NewReplayService: %v", err)
	}

	orig := sampleSession()
	if err := svc.Save(orig); err != nil {
		t.Fatalf("Save: %v", err)
	}

	paths, err := svc.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(paths) != 1 {
		t.Fatalf("List = %v, want one file", paths)
	}

	loaded, err := svc.Load(paths[0])
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want, err := engine.Replay(orig)
	if err != nil {
		t.Fatalf("Replay(orig): %v", err)
	}
	got, err := engine.Replay(loaded)
	if err != nil {
		t.Fatalf("Replay(loaded): %v", err)
	}

	for p := domain.Position(0); p < domain.CellCount; p++ {
		if want.IsRevealed(p) != got.IsRevealed(p) {
			t.Errorf("revealed mismatch at %v", p)
		}
		for player := 0; player < domain.PlayerCount; player++ {
			if want.IsMarked(p, player) != got.IsMarked(p, player) {
				t.Errorf("mark mismatch at %v for player %d", p, player)
			}
		}
	}
	if got.RevealedCount() == 0 {
		t.Error("replayed game must have revealed cells")
	}
}

func TestSaveFailureLeavesNoFile(t *testing.T) {
	svc, err := NewReplayService(t.TempDir())
	if err != nil {
		t.Fatalf("NewReplayService: %v", err)
	}

	// Столько бомб не помещается в uint16 заголовка
	bad := &domain.ReplaySession{Timestamp: 1, Bombs: make([]domain.Position, 0x10000)}
	if err := svc.Save(bad); err == nil {
		t.Fatal("expected error for oversized bomb list")
	}

	paths, err := svc.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(paths) != 0 {
		t.Errorf("List = %v, partial replay must be removed", paths)
	}
}

func TestLoadMissingFile(t *testing.T) {
	svc := &ReplayService{SaveDir: t.TempDir()}
	if _, err := svc.Load("does-not-exist" + FileExt); err == nil {
		t.Error("expected error for missing file")
	}
}
