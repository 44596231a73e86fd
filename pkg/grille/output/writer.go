package output

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ukaji3/grille-go/pkg/grille/models"
)

// Format is an output file format.
type Format string

const (
	FormatJSON Format = "json"
	FormatSVG  Format = "svg"
	FormatPDF  Format = "pdf"
	FormatXLSX Format = "xlsx"
)

// AllFormats lists every supported format.
var AllFormats = []Format{FormatJSON, FormatSVG, FormatPDF, FormatXLSX}

// ParseFormats parses format names. "all" selects every format. Duplicates
// are dropped.
func ParseFormats(names []string) ([]Format, error) {
	seen := make(map[Format]bool)
	var out []Format
	for _, name := range names {
		for _, part := range strings.Split(name, ",") {
			part = strings.ToLower(strings.TrimSpace(part))
			if part == "" {
				continue
			}
			if part == "all" {
				return AllFormats, nil
			}
			f := Format(part)
			switch f {
			case FormatJSON, FormatSVG, FormatPDF, FormatXLSX:
			default:
				return nil, fmt.Errorf("invalid format: %s (must be json, svg, pdf, xlsx, or all)", part)
			}
			if !seen[f] {
				seen[f] = true
				out = append(out, f)
			}
		}
	}
	return out, nil
}

// Writer writes every artifact of a puzzle into a directory.
type Writer struct {
	// Dir is the output directory; it is created if missing.
	Dir string
	// Formats selects the artifacts to write.
	Formats []Format
	// Layout is the print geometry.
	Layout Layout
	// Pretty indents the JSON output.
	Pretty bool
	// Grayscale selects filled mask SVGs instead of cutting-machine SVGs.
	Grayscale bool
	// Overlay also writes the solution overlay.
	Overlay bool
	// Logger receives one event per written file. If nil, nothing is logged.
	Logger *slog.Logger
}

// WriteAll renders the puzzle in every configured format and returns the
// paths written, in write order.
func (w *Writer) WriteAll(p *models.Puzzle) ([]string, error) {
	if p == nil || p.Grid == nil {
		return nil, fmt.Errorf("nothing to write: puzzle has no grid")
	}
	if err := w.Layout.Validate(); err != nil {
		return nil, err
	}
	if slices.Contains(w.Formats, FormatPDF) {
		if err := CheckPDFCharset(p.Grid); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(w.Dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var written []string
	write := func(name string, render func(io.Writer) error) error {
		path := filepath.Join(w.Dir, name)
		if err := writeFile(path, render); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		written = append(written, path)
		if w.Logger != nil {
			w.Logger.Debug("wrote file", "path", path)
		}
		return nil
	}

	for _, f := range w.Formats {
		var err error
		switch f {
		case FormatJSON:
			err = write("puzzle.json", func(out io.Writer) error {
				data, err := ToJSON(p, w.Pretty)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			})
		case FormatSVG:
			err = w.writeSVG(p, write)
		case FormatPDF:
			err = w.writePDF(p, write)
		case FormatXLSX:
			err = write("puzzle.xlsx", func(out io.Writer) error {
				return WriteXLSX(out, p, w.Layout)
			})
		default:
			err = fmt.Errorf("unsupported format: %s", f)
		}
		if err != nil {
			return written, err
		}
	}
	return written, nil
}

type writeFunc func(name string, render func(io.Writer) error) error

func (w *Writer) writeSVG(p *models.Puzzle, write writeFunc) error {
	if err := write("grid.svg", func(out io.Writer) error { return GridSVG(out, p, w.Layout) }); err != nil {
		return err
	}
	for i, pl := range p.Placements {
		mask := CricutMaskSVG
		if w.Grayscale {
			mask = GrayscaleMaskSVG
		}
		if err := write(fmt.Sprintf("mask_%d.svg", i+1), func(out io.Writer) error {
			return mask(out, p, pl, w.Layout)
		}); err != nil {
			return err
		}
	}
	if w.Overlay {
		return write("solution_overlay.svg", func(out io.Writer) error { return OverlaySVG(out, p, w.Layout) })
	}
	return nil
}

func (w *Writer) writePDF(p *models.Puzzle, write writeFunc) error {
	if err := write("grid.pdf", func(out io.Writer) error { return GridPDF(out, p, w.Layout) }); err != nil {
		return err
	}
	for i, pl := range p.Placements {
		if err := write(fmt.Sprintf("mask_%d.pdf", i+1), func(out io.Writer) error {
			return MaskPDF(out, p, pl, w.Layout)
		}); err != nil {
			return err
		}
	}
	if w.Overlay {
		return write("solution_overlay.pdf", func(out io.Writer) error { return OverlayPDF(out, p, w.Layout) })
	}
	return nil
}

func writeFile(path string, render func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
