// Package placer provides the placement primitives used by the grid builder.
// The functions here never mutate a grid and never draw random numbers unless
// handed a random source explicitly.
package placer

import "github.com/ukaji3/grille-go/pkg/grille/models"

// Candidate is a possible placement: a start cell and a direction.
type Candidate struct {
	Start       models.Coord
	Orientation models.Orientation
}

// Cells expands the candidate into n coordinates.
func (c Candidate) Cells(n int) []models.Coord {
	dr, dc := c.Orientation.Delta()
	cells := make([]models.Coord, n)
	for i := range cells {
		cells[i] = models.Coord{Row: c.Start.Row + i*dr, Col: c.Start.Col + i*dc}
	}
	return cells
}

// Span returns the longest word a grid of rows x cols can hold in orientation o.
func Span(rows, cols int, o models.Orientation) int {
	switch o {
	case models.Horizontal:
		return cols
	case models.Vertical:
		return rows
	case models.Diagonal, models.AntiDiagonal:
		return min(rows, cols)
	case models.Scatter:
		return rows * cols
	default:
		return 0
	}
}

// MaxSpan returns the longest word placeable with any of the orientations.
func MaxSpan(rows, cols int, orientations []models.Orientation) int {
	best := 0
	for _, o := range orientations {
		best = max(best, Span(rows, cols, o))
	}
	return best
}

// Fits reports whether word can be written onto cells: every cell must be in
// bounds and either empty or already holding the same letter.
func Fits(g *models.Grid, word []rune, cells []models.Coord) bool {
	if len(word) != len(cells) {
		return false
	}
	for i, c := range cells {
		if !g.InBounds(c) {
			return false
		}
		if existing := g.At(c); existing != 0 && existing != word[i] {
			return false
		}
	}
	return true
}

// Candidates enumerates every valid line placement of word in g. The order is
// deterministic: orientations in the given order, then start row, then start
// column.
func Candidates(g *models.Grid, word []rune, orientations []models.Orientation) []Candidate {
	n := len(word)
	if n == 0 {
		return nil
	}

	var out []Candidate
	for _, o := range orientations {
		if n > Span(g.Rows(), g.Cols(), o) {
			continue
		}
		dr, dc := o.Delta()
		if dr == 0 && dc == 0 {
			continue
		}
		for r := 0; r < g.Rows(); r++ {
			for c := 0; c < g.Cols(); c++ {
				end := models.Coord{Row: r + (n-1)*dr, Col: c + (n-1)*dc}
				if !g.InBounds(end) {
					continue
				}
				cand := Candidate{Start: models.Coord{Row: r, Col: c}, Orientation: o}
				if Fits(g, word, cand.Cells(n)) {
					out = append(out, cand)
				}
			}
		}
	}
	return out
}
