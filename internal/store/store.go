// Package store archives generated puzzles in a SQLite database.
package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ukaji3/grille-go/pkg/grille/models"
	"github.com/ukaji3/grille-go/pkg/grille/output"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by Load for an unknown id.
var ErrNotFound = errors.New("puzzle not found")

// Entry summarizes one archived puzzle.
type Entry struct {
	ID        string
	Seed      int64
	Rows      int
	Cols      int
	Mode      string
	Words     []string
	Placed    int
	Unplaced  int
	CreatedAt time.Time
}

type Store struct {
	db *sql.DB
	mu sync.Mutex
	// now is replaced in tests.
	now func() time.Time
}

// Open opens or creates the archive at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("open archive %s: %w", path, err)
	}

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA busy_timeout=5000"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	s := &Store{db: db, now: time.Now}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init archive schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS puzzles (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		"rows" INTEGER NOT NULL,
		"cols" INTEGER NOT NULL,
		mode TEXT NOT NULL,
		words TEXT NOT NULL,
		placed INTEGER NOT NULL,
		unplaced INTEGER NOT NULL,
		payload TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_puzzles_created ON puzzles(created_at);
	`

	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func newID() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Save archives p and returns its new id.
func (s *Store) Save(ctx context.Context, p *models.Puzzle) (string, error) {
	payload, err := output.ToJSON(p, false)
	if err != nil {
		return "", err
	}
	words, err := json.Marshal(p.Words())
	if err != nil {
		return "", err
	}
	id, err := newID()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO puzzles (id, seed, "rows", "cols", mode, words, placed, unplaced, payload, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.Seed, p.Grid.Rows(), p.Grid.Cols(), p.Mode, string(words),
		len(p.Placements), len(p.Unplaced), string(payload),
		s.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("save puzzle: %w", err)
	}
	return id, nil
}

// Load returns the archived puzzle with the given id.
func (s *Store) Load(ctx context.Context, id string) (*models.Puzzle, error) {
	var payload string
	err := s.db.QueryRowContext(ctx, "SELECT payload FROM puzzles WHERE id = ?", id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return output.FromJSON([]byte(payload))
}

// List returns every archived puzzle, newest first.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, seed, "rows", "cols", mode, words, placed, unplaced, created_at
		 FROM puzzles ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			words   string
			created string
		)
		if err := rows.Scan(&e.ID, &e.Seed, &e.Rows, &e.Cols, &e.Mode, &words, &e.Placed, &e.Unplaced, &created); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(words), &e.Words); err != nil {
			return nil, fmt.Errorf("puzzle %s: bad words column: %w", e.ID, err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("puzzle %s: bad created_at: %w", e.ID, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}
