package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/grille-go/pkg/grille"
	"github.com/ukaji3/grille-go/pkg/grille/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func buildPuzzle(t *testing.T, seed int64, words ...string) *models.Puzzle {
	t.Helper()
	p, err := grille.Build(5, 5, words, seed, grille.DefaultOptions())
	require.NoError(t, err)
	return p
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	p := buildPuzzle(t, 7, "CAT", "DOG", "ELEPHANTS")

	id, err := s.Save(ctx, p)
	require.NoError(t, err)
	if len(id) != 16 {
		t.Errorf("expected 16 hex chars, got %q", id)
	}

	got, err := s.Load(ctx, id)
	require.NoError(t, err)
	if diff := cmp.Diff(p.Grid.Lines(), got.Grid.Lines()); diff != "" {
		t.Errorf("grid mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(p.Placements, got.Placements); diff != "" {
		t.Errorf("placements mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(p.Unplaced, got.Unplaced); diff != "" {
		t.Errorf("unplaced mismatch (-want +got):\n%s", diff)
	}
	if !got.Grid.Frozen() {
		t.Error("loaded grid should be frozen")
	}
}

func TestLoadUnknown(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Load(context.Background(), "deadbeef")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	first, err := s.Save(ctx, buildPuzzle(t, 1, "CAT"))
	require.NoError(t, err)
	second, err := s.Save(ctx, buildPuzzle(t, 2, "DOG", "ELEPHANTS"))
	require.NoError(t, err)

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	want := []Entry{
		{ID: second, Seed: 2, Rows: 5, Cols: 5, Mode: "line", Words: []string{"DOG", "ELEPHANTS"}, Placed: 1, Unplaced: 1, CreatedAt: base.Add(2 * time.Minute)},
		{ID: first, Seed: 1, Rows: 5, Cols: 5, Mode: "line", Words: []string{"CAT"}, Placed: 1, Unplaced: 0, CreatedAt: base.Add(time.Minute)},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "archive.db")

	s, err := Open(path)
	require.NoError(t, err)
	id, err := s.Save(ctx, buildPuzzle(t, 3, "EMU"))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	p, err := s.Load(ctx, id)
	require.NoError(t, err)
	if p.Seed != 3 || !p.IsPlaced("EMU") {
		t.Errorf("unexpected puzzle after reopen: seed=%d placements=%v", p.Seed, p.Placements)
	}
}
