package storage

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"github.com/HoriaMercan/PM-project/internal/domain"
	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed sql/schema.sql
var ddl string

// DefaultRecentLimit - сколько результатов отдавать без явного limit
const DefaultRecentLimit = 20

// ResultStore хранит итоги партий в SQLite.
type ResultStore struct {
	DB *sql.DB
}

// InitializeTables создает таблицы, если их нет.
func InitializeTables(db *sql.DB) error {
	_, err := db.Exec(ddl)
	return err
}

// OpenResultStore открывает (или создает) файл БД и схему.
func OpenResultStore(path string) (*ResultStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// Ping нужен, чтобы проверить, что файл вообще открылся
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open results db %q: %w", path, err)
	}
	if err = InitializeTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return &ResultStore{DB: db}, nil
}

// Save добавляет результат. Пустой ID заменяется новым UUID.
func (s *ResultStore) Save(ctx context.Context, r domain.GameResult) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO results (id, finished_at, outcome, player, opponent, moves, bombs, revealed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.FinishedAt.UnixMilli(), r.Outcome, r.Player, r.Opponent, r.Moves, r.Bombs, r.Revealed,
	)
	if err != nil {
		return fmt.Errorf("failed to insert result %s: %w", r.ID, err)
	}
	return nil
}

// Recent возвращает последние limit результатов, новые первыми.
func (s *ResultStore) Recent(ctx context.Context, limit int) ([]domain.GameResult, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, finished_at, outcome, player, opponent, moves, bombs, revealed
		 FROM results ORDER BY finished_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	results := []domain.GameResult{}
	for rows.Next() {
		var r domain.GameResult
		var finished int64
		if err := rows.Scan(&r.ID, &finished, &r.Outcome, &r.Player, &r.Opponent, &r.Moves, &r.Bombs, &r.Revealed); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		r.FinishedAt = time.UnixMilli(finished).UTC()
		results = append(results, r)
	}
	return results, rows.Err()
}

func (s *ResultStore) Close() error {
	return s.DB.Close()
}
