package main

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ukaji3/grille-go/pkg/grille/output"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunWithFlags(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	out, err := execute(t,
		"--size", "6",
		"--words", "ring,pony,elephants",
		"--seed", "1337",
		"--format", "json,svg",
		"-o", dir,
	)
	require.NoError(t, err)

	if !strings.Contains(out, "Placed 2 of 3 words in a 6x6 grid (seed 1337, mode line)") {
		t.Errorf("unexpected summary:\n%s", out)
	}
	if !strings.Contains(out, "ELEPHANTS    not placed (too_long)") {
		t.Errorf("missing unplaced line:\n%s", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, "puzzle.json"))
	require.NoError(t, err)
	p, err := output.FromJSON(data)
	require.NoError(t, err)
	if !p.IsPlaced("RING") || !p.IsPlaced("PONY") || !p.IsUnplaced("ELEPHANTS") {
		t.Errorf("unexpected puzzle: %+v", p)
	}
	for _, name := range []string{"grid.svg", "mask_1.svg", "mask_2.svg", "solution_overlay.svg"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "grid.pdf")); !os.IsNotExist(err) {
		t.Error("pdf written although not selected")
	}
}

func TestRunDeterministic(t *testing.T) {
	base := t.TempDir()
	read := func(name string) []byte {
		dir := filepath.Join(base, name)
		_, err := execute(t, "--words", "cat,dog,emu", "--seed", "99", "--format", "json", "-o", dir)
		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(dir, "puzzle.json"))
		require.NoError(t, err)
		return data
	}
	if !bytes.Equal(read("a"), read("b")) {
		t.Error("same seed produced different puzzles")
	}
}

func TestRunWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "words.txt"), []byte("# list\nfuß\n"), 0644))
	cfgPath := filepath.Join(dir, "puzzle.hcl")
	require.NoError(t, os.WriteFile(cfgPath, []byte(`
size       = 8
seed       = 5
words      = ["Bär"]
word_files = ["*.txt"]
language   = "de"
alphabet   = "german"

output {
  dir     = "`+filepath.ToSlash(filepath.Join(dir, "out"))+`"
  formats = ["json", "xlsx"]
}
`), 0644))

	out, err := execute(t, cfgPath, "--cols", "9")
	require.NoError(t, err)
	if !strings.Contains(out, "Placed 2 of 2 words in a 8x9 grid (seed 5, mode line)") {
		t.Errorf("unexpected summary:\n%s", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, "out", "puzzle.json"))
	require.NoError(t, err)
	p, err := output.FromJSON(data)
	require.NoError(t, err)
	if !p.IsPlaced("BÄR") || !p.IsPlaced("FUSS") {
		t.Errorf("unexpected words: %v", p.Words())
	}
	if _, err := os.Stat(filepath.Join(dir, "out", "puzzle.xlsx")); err != nil {
		t.Errorf("expected xlsx: %v", err)
	}
}

func TestRunStrict(t *testing.T) {
	dir := t.TempDir()
	_, err := execute(t, "--size", "3", "--words", "elephant", "--seed", "1", "--format", "json", "-o", dir, "--strict")
	require.ErrorIs(t, err, errUnplaced)

	_, err = execute(t, "--size", "3", "--words", "elephant", "--seed", "1", "--format", "json", "-o", dir)
	require.NoError(t, err)
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"does-not-exist.hcl"}},
		{"bad mode", []string{"--mode", "spiral"}},
		{"bad word", []string{"--words", "r2d2"}},
		{"bad format", []string{"--format", "png"}},
		{"bad log level", []string{"--log-level", "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.args, "-o", t.TempDir())
			if _, err := execute(t, args...); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "archive.db")

	out, err := execute(t, "--words", "cat,dog", "--seed", "7", "--format", "json", "-o", filepath.Join(dir, "out"), "--archive", db)
	require.NoError(t, err)
	m := regexp.MustCompile(`Archived as ([0-9a-f]{16})`).FindStringSubmatch(out)
	require.Len(t, m, 2, "no archive id in output:\n%s", out)
	id := m[1]

	out, err = execute(t, "archive", "list", "--db", db)
	require.NoError(t, err)
	if !strings.Contains(out, id) || !strings.Contains(out, "CAT,DOG") {
		t.Errorf("list output missing puzzle:\n%s", out)
	}

	rendered := filepath.Join(dir, "again")
	out, err = execute(t, "archive", "show", id, "--db", db, "-o", rendered, "--format", "svg")
	require.NoError(t, err)
	if !strings.Contains(out, "Placed 2 of 2 words") {
		t.Errorf("unexpected show output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(rendered, "mask_2.svg")); err != nil {
		t.Errorf("expected re-rendered mask: %v", err)
	}

	_, err = execute(t, "archive", "show", "0000000000000000", "--db", db)
	require.Error(t, err)
}
