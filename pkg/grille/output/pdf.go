package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/ukaji3/grille-go/pkg/grille/models"
	"golang.org/x/text/encoding/charmap"
)

// ErrPDFCharset is returned when the grid holds a letter the built-in PDF
// fonts cannot draw. Those fonts only cover Windows-1252.
var ErrPDFCharset = errors.New("letter not representable in PDF core fonts")

const (
	pdfFont = "Helvetica"
	// ptToMM converts a point size to millimetres.
	ptToMM = 25.4 / 72
)

// pdfPage wraps one single-page document laid out on the configured paper.
type pdfPage struct {
	pdf    *fpdf.Fpdf
	tr     func(string) string
	layout Layout
	cell   float64
	margin float64
}

func newPDFPage(l Layout) *pdfPage {
	orientation := "P"
	if l.Landscape {
		orientation = "L"
	}
	size := strings.ToUpper(l.Paper)
	if size == "LETTER" {
		size = "Letter"
	}

	pdf := fpdf.New(orientation, "mm", size, "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetFont(pdfFont, "", l.FontSize)

	return &pdfPage{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		layout: l,
		cell:   float64(l.CellMM),
		margin: float64(l.MarginMM),
	}
}

// CheckPDFCharset reports the first grid letter outside Windows-1252.
func CheckPDFCharset(g *models.Grid) error {
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			coord := models.Coord{Row: r, Col: c}
			if _, ok := charmap.Windows1252.EncodeRune(g.At(coord)); !ok {
				return fmt.Errorf("%w: %q at row %d, col %d", ErrPDFCharset, g.At(coord), r+1, c+1)
			}
		}
	}
	return nil
}

// cellOrigin returns the top-left corner of a grid cell.
func (pg *pdfPage) cellOrigin(c models.Coord) (x, y float64) {
	return pg.margin + float64(c.Col)*pg.cell, pg.margin + float64(c.Row)*pg.cell
}

// letters draws every grid letter centered in its cell.
func (pg *pdfPage) letters(g *models.Grid) {
	pg.pdf.SetTextColor(0, 0, 0)
	pg.pdf.SetFont(pdfFont, "", pg.layout.FontSize)
	capHeight := pg.layout.FontSize * ptToMM * 0.7
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			coord := models.Coord{Row: r, Col: c}
			text := pg.tr(string(g.At(coord)))
			x, y := pg.cellOrigin(coord)
			tw := pg.pdf.GetStringWidth(text)
			pg.pdf.Text(x+(pg.cell-tw)/2, y+(pg.cell+capHeight)/2, text)
		}
	}
}

// frame draws the outer border of the grid.
func (pg *pdfPage) frame(g *models.Grid, widthPt float64) {
	pg.pdf.SetDrawColor(0, 0, 0)
	pg.pdf.SetLineWidth(widthPt * ptToMM)
	pg.pdf.Rect(pg.margin, pg.margin, float64(g.Cols())*pg.cell, float64(g.Rows())*pg.cell, "D")
}

func (pg *pdfPage) output(w io.Writer) error {
	if err := pg.pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pg.pdf.Output(w)
}

// GridPDF renders the letter grid on one page.
func GridPDF(w io.Writer, p *models.Puzzle, l Layout) error {
	pg := newPDFPage(l)
	pg.letters(p.Grid)
	pg.frame(p.Grid, 1)
	return pg.output(w)
}

// MaskPDF renders one mask: gray material with white holes where the word's
// letters show through.
func MaskPDF(w io.Writer, p *models.Puzzle, pl models.Placement, l Layout) error {
	pg := newPDFPage(l)
	cols := p.Grid.Cols()
	holes := p.Mask(pl)

	pg.pdf.SetDrawColor(0, 0, 0)
	pg.pdf.SetLineWidth(0.2)
	for r := 0; r < p.Grid.Rows(); r++ {
		for c := 0; c < cols; c++ {
			if holes[r*cols+c] {
				pg.pdf.SetFillColor(255, 255, 255)
			} else {
				pg.pdf.SetFillColor(217, 217, 217)
			}
			x, y := pg.cellOrigin(models.Coord{Row: r, Col: c})
			pg.pdf.Rect(x, y, pg.cell, pg.cell, "FD")
		}
	}
	pg.frame(p.Grid, 2)
	return pg.output(w)
}

// OverlayPDF renders the solution page: highlighted words, letters, outlines
// and a legend that shrinks to fit below the grid.
func OverlayPDF(w io.Writer, p *models.Puzzle, l Layout) error {
	pg := newPDFPage(l)

	for i, pl := range p.Placements {
		col := paletteColor(i)
		pg.pdf.SetFillColor(col.blend(overlayOpacity))
		pg.pdf.SetDrawColor(col.rgb())
		pg.pdf.SetLineWidth(0.5 * ptToMM)
		for _, h := range pl.Cells {
			x, y := pg.cellOrigin(h)
			pg.pdf.Rect(x, y, pg.cell, pg.cell, "FD")
		}
	}

	pg.letters(p.Grid)

	inset := 2 * ptToMM
	for i, pl := range p.Placements {
		pg.pdf.SetDrawColor(paletteColor(i).rgb())
		pg.pdf.SetLineWidth(2 * ptToMM)
		for _, h := range pl.Cells {
			x, y := pg.cellOrigin(h)
			pg.pdf.Rect(x+inset, y+inset, pg.cell-2*inset, pg.cell-2*inset, "D")
		}
	}

	pg.legend(p)
	return pg.output(w)
}

func (pg *pdfPage) legend(p *models.Puzzle) {
	if len(p.Placements) == 0 {
		return
	}

	_, pageH := pg.pdf.GetPageSize()
	gridBottom := pg.margin + float64(p.Grid.Rows())*pg.cell
	const legendMargin = 6.0

	fontPt := max(8, pg.layout.FontSize*0.9)
	lineH := (fontPt + 4) * ptToMM
	available := pageH - pg.margin - gridBottom - legendMargin
	if available > 0 {
		if maxLines := int(available / lineH); len(p.Placements) > maxLines && maxLines > 0 {
			fontPt = max(6, available/ptToMM/float64(len(p.Placements))-4)
			lineH = (fontPt + 4) * ptToMM
		}
	} else {
		fontPt = max(6, pg.layout.FontSize*0.7)
		lineH = (fontPt + 4) * ptToMM
	}

	pg.pdf.SetFont(pdfFont, "", fontPt)
	box := fontPt * ptToMM * 0.72
	lx := pg.margin + 2
	startY := gridBottom + legendMargin + box

	for i, pl := range p.Placements {
		ly := startY + float64(i)*lineH
		col := paletteColor(i)

		pg.pdf.SetFillColor(col.blend(overlayOpacity))
		pg.pdf.SetDrawColor(0, 0, 0)
		pg.pdf.SetLineWidth(0.2)
		pg.pdf.Rect(lx, ly-box, box, box, "FD")

		pg.pdf.SetTextColor(0, 0, 0)
		pg.pdf.Text(lx+box+2, ly, pg.tr(legendLabel(pl)))
	}
}
