package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/HoriaMercan/PM-project/internal/domain"
)

func openTempStore(t *testing.T) *ResultStore {
	t.Helper()
	store, err := OpenResultStore(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close: %v", err)
		}
	})
	return store
}

func TestResultStoreRecentNewestFirst(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	players := []string{"Device 1", "Alice", "Bob"}
	for i, name := range players {
		r := domain.GameResult{
			ID:         name,
			FinishedAt: base.Add(time.Duration(i) * time.Minute),
			Outcome:    domain.OutcomeLost,
			Player:     name,
			Moves:      i + 1,
			Bombs:      16,
			Revealed:   10 * i,
		}
		if err := store.Save(ctx, r); err != nil {
			t.Fatalf("Save(%s): %v", name, err)
		}
	}

	got, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent(2) returned %d rows", len(got))
	}
	if got[0].Player != "Bob" || got[1].Player != "Alice" {
		t.Errorf("order = %s, %s; want Bob, Alice", got[0].Player, got[1].Player)
	}
	if !got[0].FinishedAt.Equal(base.Add(2 * time.Minute)) {
		t.Errorf("FinishedAt = %v", got[0].FinishedAt)
	}
	if got[0].Moves != 3 || got[0].Revealed != 20 || got[0].Bombs != 16 {
		t.Errorf("row = %+v", got[0])
	}
}

func TestResultStoreGeneratesID(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, domain.GameResult{FinishedAt: time.Now(), Outcome: domain.OutcomeWon, Player: "Alice"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(got) != 1 || got[0].ID == "" {
		t.Fatalf("got %+v, want one row with generated id", got)
	}
}

func TestResultStoreRejectsBadRows(t *testing.T) {
	store := openTempStore(t)
	ctx := context.Background()

	r := domain.GameResult{ID: "dup", FinishedAt: time.Now(), Outcome: domain.OutcomeWon, Player: "Alice"}
	if err := store.Save(ctx, r); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, r); err == nil {
		t.Error("duplicate id must fail")
	}

	r.ID = "bad"
	r.Outcome = "DRAW"
	if err := store.Save(ctx, r); err == nil {
		t.Error("unknown outcome must fail")
	}
}

func TestOpenResultStoreBadPath(t *testing.T) {
	if _, err := OpenResultStore(filepath.Join(t.TempDir(), "missing", "dir", "results.db")); err == nil {
		t.Error("expected error for unreachable path")
	}
}
