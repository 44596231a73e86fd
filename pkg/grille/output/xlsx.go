package output

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/ukaji3/grille-go/pkg/grille/models"
	"github.com/xuri/excelize/v2"
)

// Sheet names used by the workbook export.
const (
	SheetGrid     = "Grid"
	SheetSolution = "Solution"
	SheetOverlay  = "Overlay"
)

// MaskSheetName returns the sheet name of the n-th mask (1-based).
func MaskSheetName(n int) string {
	return fmt.Sprintf("Mask %d", n)
}

type workbookStyles struct {
	letter   int
	hole     int
	material int
	header   int
	overlay  []int
}

func cellBorders() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}
}

func newWorkbookStyles(f *excelize.File, fontSize float64) (*workbookStyles, error) {
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}
	font := &excelize.Font{Family: "Courier New", Size: fontSize}

	fill := func(hex string) (int, error) {
		return f.NewStyle(&excelize.Style{
			Alignment: center,
			Border:    cellBorders(),
			Font:      font,
			Fill:      excelize.Fill{Type: "pattern", Color: []string{hex}, Pattern: 1},
		})
	}

	var (
		st  workbookStyles
		err error
	)
	if st.letter, err = f.NewStyle(&excelize.Style{Alignment: center, Border: cellBorders(), Font: font}); err != nil {
		return nil, err
	}
	if st.hole, err = fill("FFFFFF"); err != nil {
		return nil, err
	}
	if st.material, err = fill("D9D9D9"); err != nil {
		return nil, err
	}
	if st.header, err = f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err != nil {
		return nil, err
	}
	for i := range palette {
		id, err := fill(palette[i].hex(overlayOpacity))
		if err != nil {
			return nil, err
		}
		st.overlay = append(st.overlay, id)
	}
	return &st, nil
}

// cellName converts a grid coordinate to an A1 reference.
func cellName(c models.Coord) string {
	name, _ := excelize.CoordinatesToCellName(c.Col+1, c.Row+1)
	return name
}

// gridSheet sizes the columns and rows of a square-celled grid sheet.
func gridSheet(f *excelize.File, sheet string, g *models.Grid) error {
	lastCol, err := excelize.ColumnNumberToName(g.Cols())
	if err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", lastCol, 4); err != nil {
		return err
	}
	for r := 1; r <= g.Rows(); r++ {
		if err := f.SetRowHeight(sheet, r, 22); err != nil {
			return err
		}
	}
	return nil
}

// WriteXLSX writes a workbook with the grid, one sheet per mask, a colored
// overlay and a solution listing.
func WriteXLSX(w io.Writer, p *models.Puzzle, l Layout) error {
	f := excelize.NewFile()
	defer f.Close()

	st, err := newWorkbookStyles(f, l.FontSize)
	if err != nil {
		return fmt.Errorf("create styles: %w", err)
	}

	if err := f.SetSheetName("Sheet1", SheetGrid); err != nil {
		return err
	}
	if err := writeLetterSheet(f, SheetGrid, p.Grid, func(models.Coord) int { return st.letter }); err != nil {
		return err
	}

	for i, holes := range p.Masks() {
		sheet := MaskSheetName(i + 1)
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		cols := p.Grid.Cols()
		if err := gridSheet(f, sheet, p.Grid); err != nil {
			return err
		}
		for r := 0; r < p.Grid.Rows(); r++ {
			for c := 0; c < cols; c++ {
				style := st.material
				if holes[r*cols+c] {
					style = st.hole
				}
				ref := cellName(models.Coord{Row: r, Col: c})
				if err := f.SetCellStyle(sheet, ref, ref, style); err != nil {
					return err
				}
			}
		}
	}

	owner := make(map[models.Coord]int)
	for i, pl := range p.Placements {
		for _, c := range pl.Cells {
			owner[c] = i
		}
	}
	if _, err := f.NewSheet(SheetOverlay); err != nil {
		return err
	}
	if err := writeLetterSheet(f, SheetOverlay, p.Grid, func(c models.Coord) int {
		if i, ok := owner[c]; ok {
			return st.overlay[i%len(st.overlay)]
		}
		return st.letter
	}); err != nil {
		return err
	}

	if err := writeSolutionSheet(f, p, st); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	_, err = f.WriteTo(w)
	return err
}

func writeLetterSheet(f *excelize.File, sheet string, g *models.Grid, style func(models.Coord) int) error {
	if err := gridSheet(f, sheet, g); err != nil {
		return err
	}
	for r := 0; r < g.Rows(); r++ {
		for c := 0; c < g.Cols(); c++ {
			coord := models.Coord{Row: r, Col: c}
			ref := cellName(coord)
			if err := f.SetCellValue(sheet, ref, string(g.At(coord))); err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, ref, ref, style(coord)); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeSolutionSheet(f *excelize.File, p *models.Puzzle, st *workbookStyles) error {
	if _, err := f.NewSheet(SheetSolution); err != nil {
		return err
	}
	header := []interface{}{"Index", "Word", "Status", "Orientation", "Cells", "Mask"}
	if err := f.SetSheetRow(SheetSolution, "A1", &header); err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetSolution, "A1", "F1", st.header); err != nil {
		return err
	}

	type solutionRow struct {
		index  int
		values []interface{}
	}
	rows := make([]solutionRow, 0, len(p.Placements)+len(p.Unplaced))
	for i, pl := range p.Placements {
		refs := make([]string, len(pl.Cells))
		for j, c := range pl.Cells {
			refs[j] = cellName(c)
		}
		rows = append(rows, solutionRow{pl.Index, []interface{}{
			pl.Index + 1, pl.Word, "placed", string(pl.Orientation), strings.Join(refs, " "), MaskSheetName(i + 1),
		}})
	}
	for _, u := range p.Unplaced {
		rows = append(rows, solutionRow{u.Index, []interface{}{u.Index + 1, u.Word, string(u.Reason)}})
	}
	// Input order, not placed-then-skipped.
	slices.SortStableFunc(rows, func(a, b solutionRow) int { return cmp.Compare(a.index, b.index) })

	for i, r := range rows {
		if err := f.SetSheetRow(SheetSolution, fmt.Sprintf("A%d", i+2), &r.values); err != nil {
			return err
		}
	}
	return f.SetColWidth(SheetSolution, "B", "E", 16)
}
