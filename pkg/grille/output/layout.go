// Package output renders finished puzzles as JSON, SVG, PDF and XLSX.
// Renderers only read the puzzle; they never change placements or letters.
package output

import (
	"fmt"
	"strings"
)

// Layout holds the print geometry shared by the vector renderers.
type Layout struct {
	// Paper is the PDF page size: A4, A5 or Letter.
	Paper string
	// Landscape rotates the PDF page.
	Landscape bool
	// CellMM is the side of one grid cell in millimetres.
	CellMM int
	// MarginMM is the outer margin in millimetres.
	MarginMM int
	// FontSize is the letter size in points.
	FontSize float64
	// SVGScale converts millimetres to SVG pixels for the screen SVGs.
	SVGScale int
}

// DefaultLayout returns an A5 layout with 10 mm cells and 20 mm margins.
func DefaultLayout() Layout {
	return Layout{
		Paper:    "A5",
		CellMM:   10,
		MarginMM: 20,
		FontSize: 12,
		SVGScale: 3,
	}
}

// Validate checks the layout for usable values.
func (l Layout) Validate() error {
	switch strings.ToUpper(l.Paper) {
	case "A4", "A5", "LETTER":
	default:
		return fmt.Errorf("invalid paper: %s (must be A4, A5, or Letter)", l.Paper)
	}
	if l.CellMM <= 0 {
		return fmt.Errorf("invalid cell size: %d mm", l.CellMM)
	}
	if l.MarginMM < 0 {
		return fmt.Errorf("invalid margin: %d mm", l.MarginMM)
	}
	if l.FontSize <= 0 {
		return fmt.Errorf("invalid font size: %g", l.FontSize)
	}
	return nil
}

func (l Layout) svgScale() int {
	if l.SVGScale <= 0 {
		return 3
	}
	return l.SVGScale
}

// color is one entry of the highlight palette used for solution overlays.
type color struct {
	name    string
	r, g, b float64
}

var palette = []color{
	{"red", 1, 0, 0},
	{"green", 0, 0.6, 0},
	{"blue", 0, 0, 1},
	{"orange", 1, 0.5, 0},
	{"purple", 0.6, 0, 0.6},
	{"cyan", 0, 0.6, 0.6},
	{"magenta", 1, 0, 1},
}

const overlayOpacity = 0.35

func paletteColor(i int) color {
	return palette[i%len(palette)]
}

// blend mixes the color with white at the given opacity.
func (c color) blend(opacity float64) (r, g, b int) {
	mix := func(v float64) int {
		return int((v*opacity + (1 - opacity)) * 255)
	}
	return mix(c.r), mix(c.g), mix(c.b)
}

func (c color) rgb() (r, g, b int) {
	return int(c.r * 255), int(c.g * 255), int(c.b * 255)
}

func (c color) hex(opacity float64) string {
	r, g, b := c.blend(opacity)
	return fmt.Sprintf("%02X%02X%02X", r, g, b)
}
