package placer

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ukaji3/grille-go/pkg/grille/models"
)

var allOrientations = []models.Orientation{
	models.Horizontal,
	models.Vertical,
	models.Diagonal,
	models.AntiDiagonal,
}

func TestSpan(t *testing.T) {
	tests := []struct {
		rows, cols int
		o          models.Orientation
		expected   int
	}{
		{3, 5, models.Horizontal, 5},
		{3, 5, models.Vertical, 3},
		{3, 5, models.Diagonal, 3},
		{7, 4, models.AntiDiagonal, 4},
		{3, 3, models.Scatter, 9},
		{3, 3, "bogus", 0},
	}

	for _, tt := range tests {
		if got := Span(tt.rows, tt.cols, tt.o); got != tt.expected {
			t.Errorf("Span(%d, %d, %s) = %d, expected %d", tt.rows, tt.cols, tt.o, got, tt.expected)
		}
	}

	if got := MaxSpan(3, 5, allOrientations); got != 5 {
		t.Errorf("MaxSpan = %d, expected 5", got)
	}
	if got := MaxSpan(3, 5, []models.Orientation{models.Vertical}); got != 3 {
		t.Errorf("MaxSpan(vertical) = %d, expected 3", got)
	}
}

func TestCandidatesEmptyGrid(t *testing.T) {
	g := models.NewGrid(3, 3)
	got := Candidates(g, []rune("AB"), allOrientations)

	// 6 horizontal + 6 vertical + 4 diagonal + 4 anti-diagonal
	if len(got) != 20 {
		t.Fatalf("expected 20 candidates, got %d", len(got))
	}
	first := Candidate{Start: models.Coord{Row: 0, Col: 0}, Orientation: models.Horizontal}
	if got[0] != first {
		t.Errorf("expected first candidate %+v, got %+v", first, got[0])
	}
	last := got[len(got)-1]
	if last.Orientation != models.AntiDiagonal || last.Start != (models.Coord{Row: 1, Col: 2}) {
		t.Errorf("unexpected last candidate %+v", last)
	}
}

func TestCandidatesRespectsExistingLetters(t *testing.T) {
	g := models.NewGrid(1, 4)
	g.Set(models.Coord{Row: 0, Col: 1}, 'A')

	got := Candidates(g, []rune("CAT"), []models.Orientation{models.Horizontal})
	want := []Candidate{{Start: models.Coord{Row: 0, Col: 0}, Orientation: models.Horizontal}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}

	if got := Candidates(g, []rune("DOG"), []models.Orientation{models.Horizontal}); len(got) != 0 {
		t.Errorf("expected no candidates for DOG, got %v", got)
	}
}

func TestCandidatesPure(t *testing.T) {
	g := models.NewGrid(4, 4)
	g.Set(models.Coord{Row: 2, Col: 2}, 'X')
	before := g.Clone()

	a := Candidates(g, []rune("AXE"), allOrientations)
	b := Candidates(g, []rune("AXE"), allOrientations)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("repeat enumeration differs:\n%s", diff)
	}
	if diff := cmp.Diff(before.Lines(), g.Lines()); diff != "" {
		t.Errorf("grid mutated:\n%s", diff)
	}
}

func TestCandidateCells(t *testing.T) {
	c := Candidate{Start: models.Coord{Row: 0, Col: 3}, Orientation: models.AntiDiagonal}
	want := []models.Coord{{Row: 0, Col: 3}, {Row: 1, Col: 2}, {Row: 2, Col: 1}}
	if diff := cmp.Diff(want, c.Cells(3)); diff != "" {
		t.Errorf("cells mismatch (-want +got):\n%s", diff)
	}
}

func TestFits(t *testing.T) {
	g := models.NewGrid(2, 2)
	g.Set(models.Coord{Row: 0, Col: 0}, 'A')

	tests := []struct {
		word     string
		cells    []models.Coord
		expected bool
	}{
		{"AB", []models.Coord{{0, 0}, {0, 1}}, true},
		{"BA", []models.Coord{{0, 0}, {0, 1}}, false},
		{"AB", []models.Coord{{1, 1}, {1, 2}}, false},
		{"ABC", []models.Coord{{0, 0}, {0, 1}}, false},
	}

	for _, tt := range tests {
		if got := Fits(g, []rune(tt.word), tt.cells); got != tt.expected {
			t.Errorf("Fits(%q, %v) = %v, expected %v", tt.word, tt.cells, got, tt.expected)
		}
	}
}

func TestScatterReadingOrder(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	g := models.NewGrid(5, 5)
	word := []rune("MOUNTAIN")

	cells, ok := Scatter(rng, g, word, 0)
	if !ok {
		t.Fatal("expected scatter to succeed on an empty grid")
	}
	if len(cells) != len(word) {
		t.Fatalf("expected %d cells, got %d", len(word), len(cells))
	}
	for i := 1; i < len(cells); i++ {
		if !cells[i-1].Less(cells[i]) {
			t.Fatalf("cells not strictly in reading order: %v", cells)
		}
	}
	if g.Full() || len(g.EmptyCells()) != 25 {
		t.Fatal("Scatter must not write to the grid")
	}
}

func TestScatterRejectsBlockedGrid(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	g := models.NewGrid(2, 2)
	for _, c := range []models.Coord{{0, 0}, {0, 1}, {1, 0}} {
		g.Set(c, 'Z')
	}

	if _, ok := Scatter(rng, g, []rune("AB"), 50); ok {
		t.Fatal("expected failure: only one drawable cell for a two letter word")
	}
}

func TestFillDeterministic(t *testing.T) {
	fill := func() *models.Grid {
		g := models.NewGrid(3, 4)
		g.Set(models.Coord{Row: 1, Col: 1}, 'K')
		Fill(rand.New(rand.NewPCG(9, 9)), g, LatinAlphabet)
		return g
	}

	a, b := fill(), fill()
	if !a.Full() {
		t.Fatal("Fill left empty cells")
	}
	if a.At(models.Coord{Row: 1, Col: 1}) != 'K' {
		t.Fatal("Fill overwrote a placed letter")
	}
	if diff := cmp.Diff(a.Lines(), b.Lines()); diff != "" {
		t.Errorf("Fill not deterministic:\n%s", diff)
	}
}

func TestParseAlphabet(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{"", string(LatinAlphabet), false},
		{"latin", string(LatinAlphabet), false},
		{"German", string(GermanAlphabet), false},
		{"A, B, C, A", "ABC", false},
		{"xyZ", "XYZ", false},
		{"AB1", "", true},
		{" , ", "", true},
	}

	for _, tt := range tests {
		got, err := ParseAlphabet(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseAlphabet(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if string(got) != tt.expected {
			t.Errorf("ParseAlphabet(%q) = %q, expected %q", tt.input, string(got), tt.expected)
		}
	}
}
