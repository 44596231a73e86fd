// Package models defines the data produced by a grille puzzle build.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Coord identifies a single grid cell.
type Coord struct {
	// Row is the row index (0-based, top to bottom).
	Row int `json:"row"`
	// Col is the column index (0-based, left to right).
	Col int `json:"col"`
}

// Less reports whether c comes before o in reading order.
func (c Coord) Less(o Coord) bool {
	if c.Row != o.Row {
		return c.Row < o.Row
	}
	return c.Col < o.Col
}

// Grid is a fixed-size letter matrix backed by one flat buffer.
// The zero rune marks an empty cell while a puzzle is being built.
type Grid struct {
	rows   int
	cols   int
	cells  []rune
	frozen bool
}

// NewGrid creates an empty rows x cols grid.
func NewGrid(rows, cols int) *Grid {
	return &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]rune, rows*cols),
	}
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.rows && c.Col >= 0 && c.Col < g.cols
}

func (g *Grid) index(c Coord) int {
	return c.Row*g.cols + c.Col
}

// At returns the letter at c, or 0 if the cell is empty or out of bounds.
func (g *Grid) At(c Coord) rune {
	if !g.InBounds(c) {
		return 0
	}
	return g.cells[g.index(c)]
}

// IsEmpty reports whether the cell at c holds no letter yet.
func (g *Grid) IsEmpty(c Coord) bool {
	return g.InBounds(c) && g.cells[g.index(c)] == 0
}

// Set writes a letter at c. Returns false if c is out of bounds or the grid
// has been frozen.
func (g *Grid) Set(c Coord, r rune) bool {
	if g.frozen || !g.InBounds(c) {
		return false
	}
	g.cells[g.index(c)] = r
	return true
}

// Freeze makes the grid read-only.
func (g *Grid) Freeze() { g.frozen = true }

// Frozen reports whether Freeze has been called.
func (g *Grid) Frozen() bool { return g.frozen }

// Full reports whether every cell holds a letter.
func (g *Grid) Full() bool {
	for _, r := range g.cells {
		if r == 0 {
			return false
		}
	}
	return true
}

// EmptyCells returns the coordinates of all empty cells in reading order.
func (g *Grid) EmptyCells() []Coord {
	var out []Coord
	for i, r := range g.cells {
		if r == 0 {
			out = append(out, Coord{Row: i / g.cols, Col: i % g.cols})
		}
	}
	return out
}

// Clone returns an unfrozen deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cp := &Grid{rows: g.rows, cols: g.cols, cells: make([]rune, len(g.cells))}
	copy(cp.cells, g.cells)
	return cp
}

// Lines returns one string per row. Empty cells are rendered as '.'.
func (g *Grid) Lines() []string {
	lines := make([]string, g.rows)
	var sb strings.Builder
	for r := 0; r < g.rows; r++ {
		sb.Reset()
		for _, ch := range g.cells[r*g.cols : (r+1)*g.cols] {
			if ch == 0 {
				ch = '.'
			}
			sb.WriteRune(ch)
		}
		lines[r] = sb.String()
	}
	return lines
}

// String renders the grid with one row per line and spaces between letters.
func (g *Grid) String() string {
	var sb strings.Builder
	for i, line := range g.Lines() {
		if i > 0 {
			sb.WriteByte('\n')
		}
		for j, ch := range []rune(line) {
			if j > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteRune(ch)
		}
	}
	return sb.String()
}

type gridJSON struct {
	Rows  int      `json:"rows"`
	Cols  int      `json:"cols"`
	Cells []string `json:"cells"`
}

// MarshalJSON encodes the grid as its dimensions plus one string per row.
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(gridJSON{Rows: g.rows, Cols: g.cols, Cells: g.Lines()})
}

// UnmarshalJSON decodes a grid written by MarshalJSON. The result is frozen.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var raw gridJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Rows <= 0 || raw.Cols <= 0 || len(raw.Cells) != raw.Rows {
		return fmt.Errorf("invalid grid: %dx%d with %d rows of cells", raw.Rows, raw.Cols, len(raw.Cells))
	}
	cells := make([]rune, 0, raw.Rows*raw.Cols)
	for i, line := range raw.Cells {
		rs := []rune(line)
		if len(rs) != raw.Cols {
			return fmt.Errorf("invalid grid: row %d has %d cells, expected %d", i, len(rs), raw.Cols)
		}
		for _, r := range rs {
			if r == '.' {
				r = 0
			}
			cells = append(cells, r)
		}
	}
	*g = Grid{rows: raw.Rows, cols: raw.Cols, cells: cells, frozen: true}
	return nil
}
