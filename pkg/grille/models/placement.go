package models

import (
	"fmt"
	"strings"
)

// Orientation is the direction a word runs in the grid.
type Orientation string

const (
	// Horizontal runs left to right along a row.
	Horizontal Orientation = "horizontal"
	// Vertical runs top to bottom along a column.
	Vertical Orientation = "vertical"
	// Diagonal runs down and to the right.
	Diagonal Orientation = "diagonal"
	// AntiDiagonal runs down and to the left.
	AntiDiagonal Orientation = "antidiagonal"
	// Scatter places letters on arbitrary cells in reading order.
	Scatter Orientation = "scatter"
)

// Delta returns the row and column step between consecutive letters.
// Scatter has no fixed step and returns (0, 0).
func (o Orientation) Delta() (dr, dc int) {
	switch o {
	case Horizontal:
		return 0, 1
	case Vertical:
		return 1, 0
	case Diagonal:
		return 1, 1
	case AntiDiagonal:
		return 1, -1
	default:
		return 0, 0
	}
}

// ParseOrientation parses an orientation name. Accepts a few common aliases.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "horizontal", "h", "across":
		return Horizontal, nil
	case "vertical", "v", "down":
		return Vertical, nil
	case "diagonal", "d", "diag":
		return Diagonal, nil
	case "antidiagonal", "anti-diagonal", "a", "anti":
		return AntiDiagonal, nil
	default:
		return "", fmt.Errorf("invalid orientation: %q (must be horizontal, vertical, diagonal, or antidiagonal)", s)
	}
}

// Placement records the cells a placed word occupies.
type Placement struct {
	// Index is the word's position in the input list.
	Index int `json:"index"`
	// Word is the placed word.
	Word string `json:"word"`
	// Orientation is the direction the word runs.
	Orientation Orientation `json:"orientation"`
	// Cells holds one coordinate per letter, in the word's reading order.
	Cells []Coord `json:"cells"`
}

// UnplacedReason explains why a word was skipped.
type UnplacedReason string

const (
	// ReasonTooLong means the word exceeds every span the grid offers.
	ReasonTooLong UnplacedReason = "too_long"
	// ReasonNoSlot means no conflict-free placement was found.
	ReasonNoSlot UnplacedReason = "no_slot"
)

// Unplaced records a word that could not be placed.
type Unplaced struct {
	Index  int            `json:"index"`
	Word   string         `json:"word"`
	Reason UnplacedReason `json:"reason"`
}
