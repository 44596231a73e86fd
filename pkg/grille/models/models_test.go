package models

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleGrid() *Grid {
	g := NewGrid(2, 3)
	for i, r := range "CATXYZ" {
		g.Set(Coord{Row: i / 3, Col: i % 3}, r)
	}
	return g
}

func TestGridSetAndFreeze(t *testing.T) {
	g := NewGrid(2, 2)
	if !g.Set(Coord{Row: 1, Col: 1}, 'Q') {
		t.Fatal("expected Set to succeed")
	}
	if g.Set(Coord{Row: 2, Col: 0}, 'Q') {
		t.Fatal("expected Set to fail out of bounds")
	}
	if g.At(Coord{Row: -1, Col: 0}) != 0 {
		t.Fatal("expected At out of bounds to return 0")
	}
	if !g.IsEmpty(Coord{Row: 0, Col: 0}) || g.IsEmpty(Coord{Row: 1, Col: 1}) {
		t.Fatal("IsEmpty mismatch")
	}

	g.Freeze()
	if g.Set(Coord{Row: 0, Col: 0}, 'Z') {
		t.Fatal("expected frozen grid to reject Set")
	}

	cp := g.Clone()
	if cp.Frozen() || !cp.Set(Coord{Row: 0, Col: 0}, 'Z') {
		t.Fatal("clone should be writable")
	}
	if g.At(Coord{Row: 0, Col: 0}) != 0 {
		t.Fatal("writing the clone changed the original")
	}
}

func TestGridLinesAndString(t *testing.T) {
	g := NewGrid(2, 3)
	g.Set(Coord{Row: 0, Col: 1}, 'A')

	lines := g.Lines()
	if lines[0] != ".A." || lines[1] != "..." {
		t.Fatalf("unexpected lines %q", lines)
	}

	if got := sampleGrid().String(); got != "C A T\nX Y Z" {
		t.Fatalf("unexpected String():\n%s", got)
	}
	if got := len(g.EmptyCells()); got != 5 {
		t.Fatalf("expected 5 empty cells, got %d", got)
	}
}

func TestGridJSON(t *testing.T) {
	data, err := json.Marshal(sampleGrid())
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"rows":2,"cols":3,"cells":["CAT","XYZ"]}` {
		t.Fatalf("unexpected JSON %s", data)
	}

	var g Grid
	if err := json.Unmarshal(data, &g); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !g.Frozen() || g.At(Coord{Row: 1, Col: 2}) != 'Z' {
		t.Fatalf("unexpected decoded grid %s", g.String())
	}

	bad := []string{
		`{"rows":2,"cols":3,"cells":["CAT"]}`,
		`{"rows":1,"cols":3,"cells":["CATS"]}`,
		`{"rows":0,"cols":0,"cells":[]}`,
	}
	for _, b := range bad {
		if err := json.Unmarshal([]byte(b), &g); err == nil {
			t.Errorf("expected error decoding %s", b)
		}
	}
}

func TestPuzzleMaskAndReveal(t *testing.T) {
	p := &Puzzle{
		Grid: sampleGrid(),
		Placements: []Placement{
			{Index: 0, Word: "CAT", Orientation: Horizontal, Cells: []Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}},
			{Index: 2, Word: "AY", Orientation: Vertical, Cells: []Coord{{Row: 0, Col: 1}, {Row: 1, Col: 1}}},
		},
		Unplaced: []Unplaced{{Index: 1, Word: "ELEPHANT", Reason: ReasonTooLong}},
	}

	mask := p.Mask(p.Placements[1])
	want := []bool{false, true, false, false, true, false}
	for i := range want {
		if mask[i] != want[i] {
			t.Fatalf("mask mismatch at %d: %v", i, mask)
		}
	}

	if got := p.Reveal(p.Placements[0]); got != "CAT" {
		t.Errorf("Reveal = %q, expected CAT", got)
	}

	words := p.Words()
	if len(words) != 3 || words[0] != "CAT" || words[1] != "ELEPHANT" || words[2] != "AY" {
		t.Errorf("unexpected Words() %v", words)
	}
	if !p.IsPlaced("AY") || p.IsPlaced("ELEPHANT") || !p.IsUnplaced("ELEPHANT") {
		t.Error("IsPlaced/IsUnplaced mismatch")
	}
}

func TestPuzzlePlacedAndMasks(t *testing.T) {
	p := &Puzzle{
		Grid: sampleGrid(),
		Placements: []Placement{
			{Index: 0, Word: "CAT", Orientation: Horizontal, Cells: []Coord{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}}},
			{Index: 2, Word: "AY", Orientation: Vertical, Cells: []Coord{{Row: 0, Col: 1}, {Row: 1, Col: 1}}},
		},
		Unplaced: []Unplaced{{Index: 1, Word: "ELEPHANT", Reason: ReasonTooLong}},
	}

	tests := []struct {
		index  int
		word   string
		wantOK bool
	}{
		{0, "CAT", true},
		{1, "", false},
		{2, "AY", true},
		{3, "", false},
		{-1, "", false},
	}
	for _, tt := range tests {
		pl, ok := p.Placed(tt.index)
		if ok != tt.wantOK || pl.Word != tt.word {
			t.Errorf("Placed(%d) = (%q, %v), expected (%q, %v)", tt.index, pl.Word, ok, tt.word, tt.wantOK)
		}
	}

	want := [][]bool{
		{true, true, true, false, false, false},
		{false, true, false, false, true, false},
	}
	if diff := cmp.Diff(want, p.Masks()); diff != "" {
		t.Errorf("Masks() mismatch (-want +got):\n%s", diff)
	}

	empty := &Puzzle{Grid: sampleGrid()}
	if got := empty.Masks(); len(got) != 0 {
		t.Errorf("expected no masks, got %v", got)
	}
}

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		input    string
		expected Orientation
		wantErr  bool
	}{
		{"horizontal", Horizontal, false},
		{"DOWN", Vertical, false},
		{" diag ", Diagonal, false},
		{"anti-diagonal", AntiDiagonal, false},
		{"scatter", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseOrientation(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOrientation(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseOrientation(%q) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
}
