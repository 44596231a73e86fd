// Package config loads puzzle definitions from HCL files and merges them
// with command-line overrides.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/ukaji3/grille-go/pkg/grille"
	"github.com/ukaji3/grille-go/pkg/grille/models"
	"github.com/ukaji3/grille-go/pkg/grille/output"
	"github.com/ukaji3/grille-go/pkg/grille/placer"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config is a complete puzzle definition.
type Config struct {
	Rows int
	Cols int
	// Seed is nil when the file leaves it out; the caller derives one.
	Seed      *int64
	Words     []string
	WordFiles []string
	Language  string
	Alphabet  string
	Placement Placement
	Output    Output
	// BaseDir resolves relative word_files patterns. Empty means the
	// working directory.
	BaseDir string
}

// Placement selects how words are laid into the grid.
type Placement struct {
	Mode         string
	Orientations []string
	Attempts     int
}

// Output selects the artifacts and their print geometry.
type Output struct {
	Dir       string
	Formats   []string
	Paper     string
	Landscape bool
	CellMM    int
	MarginMM  int
	FontSize  float64
	Grayscale bool
	Overlay   bool
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	l := output.DefaultLayout()
	return &Config{
		Rows:     10,
		Cols:     10,
		Language: "en",
		Alphabet: "latin",
		Placement: Placement{
			Mode: string(grille.ModeLine),
		},
		Output: Output{
			Dir:      "output",
			Formats:  []string{"json", "svg", "pdf"},
			Paper:    l.Paper,
			CellMM:   l.CellMM,
			MarginMM: l.MarginMM,
			FontSize: l.FontSize,
			Overlay:  true,
		},
	}
}

// hclFile mirrors the file layout; pointers tell unset attributes apart.
type hclFile struct {
	Size      *int          `hcl:"size,optional"`
	Rows      *int          `hcl:"rows,optional"`
	Cols      *int          `hcl:"cols,optional"`
	Seed      *int64        `hcl:"seed,optional"`
	Words     []string      `hcl:"words,optional"`
	WordFiles []string      `hcl:"word_files,optional"`
	Language  *string       `hcl:"language,optional"`
	Alphabet  *string       `hcl:"alphabet,optional"`
	Placement *hclPlacement `hcl:"placement,block"`
	Output    *hclOutput    `hcl:"output,block"`
}

type hclPlacement struct {
	Mode         *string  `hcl:"mode,optional"`
	Orientations []string `hcl:"orientations,optional"`
	Attempts     *int     `hcl:"attempts,optional"`
}

type hclOutput struct {
	Dir       *string  `hcl:"dir,optional"`
	Formats   []string `hcl:"formats,optional"`
	Paper     *string  `hcl:"paper,optional"`
	Landscape *bool    `hcl:"landscape,optional"`
	CellMM    *int     `hcl:"cell_mm,optional"`
	MarginMM  *int     `hcl:"margin_mm,optional"`
	FontSize  *float64 `hcl:"font_size,optional"`
	Grayscale *bool    `hcl:"grayscale,optional"`
	Overlay   *bool    `hcl:"overlay,optional"`
}

// evalContext exposes a few string helpers to expressions in the file.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"upper":     stdlib.UpperFunc,
			"lower":     stdlib.LowerFunc,
			"trimspace": stdlib.TrimSpaceFunc,
			"split":     stdlib.SplitFunc,
			"join":      stdlib.JoinFunc,
			"concat":    stdlib.ConcatFunc,
		},
	}
}

// Load parses an HCL puzzle file on top of Default.
func Load(path string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	cfg, err := decode(file.Body, path)
	if err != nil {
		return nil, err
	}
	cfg.BaseDir = filepath.Dir(path)
	return cfg, nil
}

// Parse decodes HCL source held in memory. filename is only used in
// diagnostics.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return decode(file.Body, filename)
}

func decode(body hcl.Body, filename string) (*Config, error) {
	var f hclFile
	if diags := gohcl.DecodeBody(body, evalContext(), &f); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	cfg := Default()
	if f.Size != nil {
		cfg.Rows, cfg.Cols = *f.Size, *f.Size
	}
	setIf(&cfg.Rows, f.Rows)
	setIf(&cfg.Cols, f.Cols)
	cfg.Seed = f.Seed
	cfg.Words = f.Words
	cfg.WordFiles = f.WordFiles
	setIf(&cfg.Language, f.Language)
	setIf(&cfg.Alphabet, f.Alphabet)

	if p := f.Placement; p != nil {
		setIf(&cfg.Placement.Mode, p.Mode)
		if p.Orientations != nil {
			cfg.Placement.Orientations = p.Orientations
		}
		setIf(&cfg.Placement.Attempts, p.Attempts)
	}
	if o := f.Output; o != nil {
		setIf(&cfg.Output.Dir, o.Dir)
		if o.Formats != nil {
			cfg.Output.Formats = o.Formats
		}
		setIf(&cfg.Output.Paper, o.Paper)
		setIf(&cfg.Output.Landscape, o.Landscape)
		setIf(&cfg.Output.CellMM, o.CellMM)
		setIf(&cfg.Output.MarginMM, o.MarginMM)
		setIf(&cfg.Output.FontSize, o.FontSize)
		setIf(&cfg.Output.Grayscale, o.Grayscale)
		setIf(&cfg.Output.Overlay, o.Overlay)
	}
	return cfg, nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Validate checks every field that can be checked without touching the
// file system.
func (c *Config) Validate() error {
	if c.Rows <= 0 || c.Cols <= 0 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidConfig, c.Rows, c.Cols)
	}
	if c.Placement.Attempts < 0 {
		return fmt.Errorf("%w: attempts must not be negative", ErrInvalidConfig)
	}
	if _, err := c.BuildOptions(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Formats(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := c.Layout().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("%w: output dir must not be empty", ErrInvalidConfig)
	}
	return nil
}

// BuildOptions converts the placement settings into builder options.
func (c *Config) BuildOptions() (grille.Options, error) {
	opts := grille.DefaultOptions()

	mode, err := grille.ParseMode(c.Placement.Mode)
	if err != nil {
		return opts, err
	}
	opts.Mode = mode

	for _, name := range c.Placement.Orientations {
		o, err := models.ParseOrientation(name)
		if err != nil {
			return opts, err
		}
		opts.Orientations = append(opts.Orientations, o)
	}

	if c.Alphabet != "" {
		alphabet, err := placer.ParseAlphabet(c.Alphabet)
		if err != nil {
			return opts, err
		}
		opts.Alphabet = alphabet
	}
	opts.ScatterAttempts = c.Placement.Attempts
	return opts, nil
}

// Formats parses the configured output formats.
func (c *Config) Formats() ([]output.Format, error) {
	return output.ParseFormats(c.Output.Formats)
}

// Layout returns the print geometry.
func (c *Config) Layout() output.Layout {
	l := output.DefaultLayout()
	l.Paper = c.Output.Paper
	l.Landscape = c.Output.Landscape
	l.CellMM = c.Output.CellMM
	l.MarginMM = c.Output.MarginMM
	l.FontSize = c.Output.FontSize
	return l
}

// WordPatterns returns word_files resolved against BaseDir.
func (c *Config) WordPatterns() []string {
	out := make([]string, len(c.WordFiles))
	for i, p := range c.WordFiles {
		if c.BaseDir != "" && !filepath.IsAbs(p) {
			p = filepath.Join(c.BaseDir, p)
		}
		out[i] = p
	}
	return out
}
