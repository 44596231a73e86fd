package output

import (
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"
	"github.com/ukaji3/grille-go/pkg/grille/models"
)

// GridSVG draws the letter grid with letters centered in their cells.
func GridSVG(w io.Writer, p *models.Puzzle, l Layout) error {
	rows, cols := p.Grid.Rows(), p.Grid.Cols()
	cell := l.CellMM * l.svgScale()
	margin := l.MarginMM * l.svgScale()
	width := cols*cell + 2*margin
	height := rows*cell + 2*margin

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Style("text/css", "text { font-family: monospace; font-size: 16px; }")
	canvas.Rect(0, 0, width, height, `fill="white"`)
	drawLetters(canvas, p.Grid, cell, margin)
	canvas.End()
	return nil
}

// CricutMaskSVG draws one mask in real-world millimetres for cutting
// machines: black strokes mark the grid (draw), red strokes the outer edge
// and the holes (cut).
func CricutMaskSVG(w io.Writer, p *models.Puzzle, pl models.Placement, l Layout) error {
	rows, cols := p.Grid.Rows(), p.Grid.Cols()
	cell := l.CellMM
	margin := l.MarginMM
	width := cols*cell + 2*margin
	height := rows*cell + 2*margin

	canvas := svg.New(w)
	canvas.StartviewUnit(width, height, "mm", 0, 0, width, height)
	canvas.Desc("cutting-machine SVG: black strokes = draw, red strokes = cut")
	canvas.Rect(0, 0, width, height, `fill="white"`)
	canvas.Rect(margin, margin, cols*cell, rows*cell, `fill="none"`, `stroke="#FF0000"`, `stroke-width="0.8"`)

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			canvas.Rect(margin+c*cell, margin+r*cell, cell, cell, `fill="none"`, `stroke="black"`, `stroke-width="0.2"`)
		}
	}
	for _, h := range pl.Cells {
		canvas.Rect(margin+h.Col*cell, margin+h.Row*cell, cell, cell, `fill="none"`, `stroke="#FF0000"`, `stroke-width="0.8"`)
	}
	canvas.End()
	return nil
}

// GrayscaleMaskSVG draws one mask as filled cells: white holes over gray
// material.
func GrayscaleMaskSVG(w io.Writer, p *models.Puzzle, pl models.Placement, l Layout) error {
	rows, cols := p.Grid.Rows(), p.Grid.Cols()
	cell := l.CellMM * l.svgScale()
	margin := l.MarginMM * l.svgScale()
	width := cols*cell + 2*margin
	height := rows*cell + 2*margin
	holes := p.Mask(pl)

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, `fill="white"`)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			fill := `fill="#cccccc"`
			if holes[r*cols+c] {
				fill = `fill="white"`
			}
			canvas.Rect(margin+c*cell, margin+r*cell, cell, cell, fill, `stroke="black"`)
		}
	}
	canvas.End()
	return nil
}

// OverlaySVG draws the solution: every placed word highlighted in its own
// translucent color, letters on top, and a legend below the grid.
func OverlaySVG(w io.Writer, p *models.Puzzle, l Layout) error {
	rows, cols := p.Grid.Rows(), p.Grid.Cols()
	cell := l.CellMM * l.svgScale()
	margin := l.MarginMM * l.svgScale()

	legendCount := len(p.Placements)
	legendFont := 12
	if maxLines := margin / 10; legendCount > maxLines {
		legendFont = max(8, int(float64(margin-6)/float64(legendCount)*0.8))
	}
	lineH := legendFont + 4
	const legendMargin = 6

	extra := 0
	if legendCount > 0 {
		extra = legendMargin + legendCount*lineH
	}
	width := cols*cell + 2*margin
	height := rows*cell + 2*margin + extra

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Style("text/css", "text { font-family: monospace; font-size: 14px; }")
	canvas.Rect(0, 0, width, height, `fill="white"`)

	// Highlights go first so the letters stay readable.
	for i, pl := range p.Placements {
		col := paletteColor(i)
		for _, h := range pl.Cells {
			canvas.Rect(margin+h.Col*cell, margin+h.Row*cell, cell, cell,
				fmt.Sprintf(`fill="%s"`, col.name),
				fmt.Sprintf(`fill-opacity="%g"`, overlayOpacity),
				`stroke="black"`)
		}
	}

	drawLetters(canvas, p.Grid, cell, margin)

	for i, pl := range p.Placements {
		col := paletteColor(i)
		for _, h := range pl.Cells {
			canvas.Rect(margin+h.Col*cell+2, margin+h.Row*cell+2, cell-4, cell-4,
				`fill="none"`,
				fmt.Sprintf(`stroke="%s"`, col.name),
				`stroke-width="2"`)
		}
	}

	if legendCount > 0 {
		canvas.Group(fmt.Sprintf(`font-size="%d"`, legendFont), `font-family="monospace"`)
		lx := margin + 5
		startY := margin + rows*cell + legendMargin + legendFont
		box := min(12, legendFont)
		const gap = 6
		for i, pl := range p.Placements {
			col := paletteColor(i)
			ly := startY + i*lineH
			canvas.Rect(lx, ly-box/2, box, box,
				fmt.Sprintf(`fill="%s"`, col.name),
				`fill-opacity="0.6"`,
				`stroke="black"`)
			canvas.Text(lx+box+gap, ly, legendLabel(pl), `dominant-baseline="middle"`)
		}
		canvas.Gend()
	}

	canvas.End()
	return nil
}

func drawLetters(canvas *svg.SVG, g *models.Grid, cell, margin int) {
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			x := margin + c*cell + cell/2
			y := margin + r*cell + cell/2
			canvas.Text(x, y, string(g.At(models.Coord{Row: r, Col: c})),
				`text-anchor="middle"`, `dominant-baseline="middle"`)
		}
	}
}

func legendLabel(pl models.Placement) string {
	return fmt.Sprintf("%s: %d cells", pl.Word, len(pl.Cells))
}
