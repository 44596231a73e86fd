package models

// Puzzle is the finished product of one build: the letter grid plus the
// placement of every word that fit and the list of words that did not.
type Puzzle struct {
	// Seed is the random seed the puzzle was built with.
	Seed int64 `json:"seed"`
	// Mode is the placement mode name ("line" or "scatter").
	Mode string `json:"mode"`
	// Grid is the fully populated letter grid.
	Grid *Grid `json:"grid"`
	// Placements lists placed words in input order.
	Placements []Placement `json:"placements"`
	// Unplaced lists skipped words in input order.
	Unplaced []Unplaced `json:"unplaced"`
}

// Words returns every input word, placed or not, in input order.
func (p *Puzzle) Words() []string {
	n := len(p.Placements) + len(p.Unplaced)
	out := make([]string, n)
	for _, pl := range p.Placements {
		if pl.Index < n {
			out[pl.Index] = pl.Word
		}
	}
	for _, u := range p.Unplaced {
		if u.Index < n {
			out[u.Index] = u.Word
		}
	}
	return out
}

// Lookup returns every placement of word. Duplicate input words are placed
// independently, so more than one placement may be returned.
func (p *Puzzle) Lookup(word string) []Placement {
	var out []Placement
	for _, pl := range p.Placements {
		if pl.Word == word {
			out = append(out, pl)
		}
	}
	return out
}

// Placed returns the placement of the word at input index i. It reports
// false when that word was skipped or i is out of range.
func (p *Puzzle) Placed(i int) (Placement, bool) {
	for _, pl := range p.Placements {
		if pl.Index == i {
			return pl, true
		}
	}
	return Placement{}, false
}

// IsPlaced reports whether at least one instance of word was placed.
func (p *Puzzle) IsPlaced(word string) bool {
	return len(p.Lookup(word)) > 0
}

// IsUnplaced reports whether at least one instance of word was skipped.
func (p *Puzzle) IsUnplaced(word string) bool {
	for _, u := range p.Unplaced {
		if u.Word == word {
			return true
		}
	}
	return false
}

// Mask returns the hole map for a placement: a row-major slice with one entry
// per grid cell, true where the mask is cut open.
func (p *Puzzle) Mask(pl Placement) []bool {
	rows, cols := p.Grid.Rows(), p.Grid.Cols()
	holes := make([]bool, rows*cols)
	for _, c := range pl.Cells {
		if p.Grid.InBounds(c) {
			holes[c.Row*cols+c.Col] = true
		}
	}
	return holes
}

// Masks returns one hole map per placement, in placement order.
func (p *Puzzle) Masks() [][]bool {
	out := make([][]bool, len(p.Placements))
	for i, pl := range p.Placements {
		out[i] = p.Mask(pl)
	}
	return out
}

// Reveal reads the letters visible through a placement's mask in reading
// order.
func (p *Puzzle) Reveal(pl Placement) string {
	rs := make([]rune, 0, len(pl.Cells))
	for _, c := range pl.Cells {
		rs = append(rs, p.Grid.At(c))
	}
	return string(rs)
}
