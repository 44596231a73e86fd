package placer

import (
	"math/rand/v2"
	"slices"

	"github.com/ukaji3/grille-go/pkg/grille/models"
)

// DefaultScatterAttempts bounds the random search for one scattered word.
const DefaultScatterAttempts = 5000

// Scatter searches for a scattered placement of word: distinct cells anywhere
// in the grid which, sorted in reading order, can hold the word's letters.
//
// A claimed cell is only drawn if its letter occurs somewhere in the word;
// excluding claimed cells outright leaves too few free cells on busy grids.
// Returns false after attempts failed draws.
func Scatter(rng *rand.Rand, g *models.Grid, word []rune, attempts int) ([]models.Coord, bool) {
	n := len(word)
	rows, cols := g.Rows(), g.Cols()
	if n == 0 || n > rows*cols {
		return nil, false
	}
	if attempts <= 0 {
		attempts = DefaultScatterAttempts
	}

	letters := make(map[rune]bool, n)
	for _, r := range word {
		letters[r] = true
	}

	// Cells that can be drawn at all. Without this a saturated grid would spin
	// forever inside a single attempt.
	drawable := 0
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if usable(g, models.Coord{Row: r, Col: c}, letters) {
				drawable++
			}
		}
	}
	if drawable < n {
		return nil, false
	}

	for attempt := 0; attempt < attempts; attempt++ {
		chosen := make(map[models.Coord]bool, n)
		cells := make([]models.Coord, 0, n)
		for len(cells) < n {
			c := models.Coord{Row: rng.IntN(rows), Col: rng.IntN(cols)}
			if chosen[c] || !usable(g, c, letters) {
				continue
			}
			chosen[c] = true
			cells = append(cells, c)
		}

		slices.SortFunc(cells, func(a, b models.Coord) int {
			if a.Less(b) {
				return -1
			}
			if b.Less(a) {
				return 1
			}
			return 0
		})

		if Fits(g, word, cells) {
			return cells, true
		}
	}
	return nil, false
}

func usable(g *models.Grid, c models.Coord, letters map[rune]bool) bool {
	existing := g.At(c)
	return existing == 0 || letters[existing]
}
