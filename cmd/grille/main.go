// Package main provides the CLI entry point for grille-go.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/ukaji3/grille-go/internal/config"
	"github.com/ukaji3/grille-go/internal/logger"
	"github.com/ukaji3/grille-go/internal/store"
	"github.com/ukaji3/grille-go/internal/watch"
	"github.com/ukaji3/grille-go/internal/wordlist"
	"github.com/ukaji3/grille-go/pkg/grille"
	"github.com/ukaji3/grille-go/pkg/grille/models"
	"github.com/ukaji3/grille-go/pkg/grille/output"
)

// errUnplaced is returned in strict mode when a word could not be placed.
var errUnplaced = errors.New("some words could not be placed")

var (
	rows         int
	cols         int
	size         int
	words        []string
	wordFiles    []string
	seed         int64
	mode         string
	orientations []string
	alphabet     string
	lang         string
	outputDir    string
	formats      []string
	paper        string
	landscape    bool
	grayscale    bool
	overlay      bool
	pretty       bool
	archivePath  string
	watchFiles   bool
	strict       bool
	logLevel     string
	logFormat    string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "grille [puzzle.hcl]",
		Short: "Generate grille cipher puzzles",
		Long: `grille-go hides words in a letter grid and renders the grid, one cutout
mask per word and a solution overlay as SVG, PDF, XLSX and JSON.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		RunE:          run,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logger.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			return logger.Init(logger.Config{
				Level:  level,
				Format: logFormat,
				Output: cmd.ErrOrStderr(),
			})
		},
	}

	flags := rootCmd.Flags()
	flags.IntVar(&rows, "rows", 10, "Number of grid rows")
	flags.IntVar(&cols, "cols", 10, "Number of grid columns")
	flags.IntVar(&size, "size", 10, "Square grid size (rows and cols)")
	flags.StringSliceVar(&words, "words", nil, "Words to hide (comma-separated)")
	flags.StringSliceVar(&wordFiles, "words-file", nil, "Word list files or glob patterns")
	flags.Int64Var(&seed, "seed", 0, "Random seed (default: derived from the clock)")
	flags.StringVar(&mode, "mode", "line", "Placement mode: line, scatter")
	flags.StringSliceVar(&orientations, "orientations", nil, "Line orientations: horizontal, vertical, diagonal, antidiagonal")
	flags.StringVar(&alphabet, "alphabet", "latin", "Filler alphabet: latin, german, or literal letters")
	flags.StringVar(&lang, "lang", "en", "Language tag used to uppercase words")
	flags.StringVarP(&outputDir, "output", "o", "output", "Output directory")
	flags.StringSliceVar(&formats, "format", nil, "Output formats: json, svg, pdf, xlsx, all")
	flags.StringVar(&paper, "paper", "A5", "PDF paper size: A4, A5, Letter")
	flags.BoolVar(&landscape, "landscape", false, "Landscape PDF pages")
	flags.BoolVar(&grayscale, "grayscale", false, "Filled mask SVGs instead of cutting-machine SVGs")
	flags.BoolVar(&overlay, "overlay", true, "Write the solution overlay")
	flags.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	flags.StringVar(&archivePath, "archive", "", "Also save the puzzle to this SQLite archive")
	flags.BoolVar(&watchFiles, "watch", false, "Rebuild whenever the puzzle file or word lists change")
	flags.BoolVar(&strict, "strict", false, "Fail if any word could not be placed")

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format: text, json")

	rootCmd.AddCommand(newArchiveCmd())
	return rootCmd
}

// overrides collects the flags the user actually set.
func overrides(cmd *cobra.Command) config.Overrides {
	var o config.Overrides
	changed := cmd.Flags().Changed
	if changed("size") {
		o.Size = &size
	}
	if changed("rows") {
		o.Rows = &rows
	}
	if changed("cols") {
		o.Cols = &cols
	}
	if changed("seed") {
		o.Seed = &seed
	}
	if changed("words") {
		o.Words = words
	}
	if changed("words-file") {
		o.WordFiles = wordFiles
	}
	if changed("lang") {
		o.Language = &lang
	}
	if changed("alphabet") {
		o.Alphabet = &alphabet
	}
	if changed("mode") {
		o.Mode = &mode
	}
	if changed("orientations") {
		o.Orientations = orientations
	}
	if changed("output") {
		o.OutputDir = &outputDir
	}
	if changed("format") {
		o.Formats = formats
	}
	if changed("paper") {
		o.Paper = &paper
	}
	if changed("landscape") {
		o.Landscape = &landscape
	}
	if changed("grayscale") {
		o.Grayscale = &grayscale
	}
	if changed("overlay") {
		o.Overlay = &overlay
	}
	return o
}

// loadConfig reads the puzzle file, if any, and applies flag overrides.
func loadConfig(cmd *cobra.Command, path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	cfg.Merge(overrides(cmd))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) == 1 {
		path = args[0]
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", path)
		}
	}

	cfg, err := loadConfig(cmd, path)
	if err != nil {
		return err
	}

	g := &generator{out: cmd.OutOrStdout(), log: logger.ForComponent("cli")}
	if err := g.generate(cmd.Context(), cfg); err != nil && !(watchFiles && errors.Is(err, errUnplaced)) {
		return err
	}
	if !watchFiles {
		return nil
	}

	patterns := cfg.WordPatterns()
	if path != "" {
		patterns = append(patterns, path)
	}
	w, err := watch.New(watch.Config{
		Patterns: patterns,
		Logger:   logger.ForComponent("watch"),
	}, func(ctx context.Context, changed []string) {
		cfg, err := loadConfig(cmd, path)
		if err == nil {
			err = g.generate(ctx, cfg)
		}
		if err != nil {
			g.log.Error("rebuild failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("watch mode: %w", err)
	}
	fmt.Fprintln(g.out, "Watching for changes, press Ctrl+C to stop.")
	return w.Run(cmd.Context())
}

// generator turns a config into written files. In watch mode it keeps the
// first derived seed so rebuilds stay comparable.
type generator struct {
	out  io.Writer
	log  *slog.Logger
	seed *int64
}

func (g *generator) resolveSeed(cfg *config.Config) int64 {
	if cfg.Seed != nil {
		return *cfg.Seed
	}
	if g.seed == nil {
		s := time.Now().UnixNano()
		g.seed = &s
		g.log.Info("no seed given, using a time-derived seed", "seed", s)
	}
	return *g.seed
}

func (g *generator) generate(ctx context.Context, cfg *config.Config) error {
	list, err := wordlist.Load(cfg.Words, cfg.WordPatterns(), cfg.Language)
	if err != nil {
		return fmt.Errorf("failed to load words: %w", err)
	}
	opts, err := cfg.BuildOptions()
	if err != nil {
		return err
	}
	opts.Logger = logger.ForComponent("builder")
	buildSeed := g.resolveSeed(cfg)

	p, err := grille.Build(cfg.Rows, cfg.Cols, list, buildSeed, opts)
	if err != nil {
		return fmt.Errorf("build failed: %w", err)
	}

	selected, err := cfg.Formats()
	if err != nil {
		return err
	}
	writer := &output.Writer{
		Dir:       cfg.Output.Dir,
		Formats:   selected,
		Layout:    cfg.Layout(),
		Pretty:    pretty,
		Grayscale: cfg.Output.Grayscale,
		Overlay:   cfg.Output.Overlay,
		Logger:    logger.ForComponent("output"),
	}
	written, err := writer.WriteAll(p)
	if err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	var id string
	if archivePath != "" {
		if id, err = archive(ctx, p); err != nil {
			return err
		}
	}

	printSummary(g.out, p, len(written), cfg.Output.Dir, id)
	for _, u := range p.Unplaced {
		g.log.Warn("word not placed", "index", u.Index, "word", u.Word, "reason", string(u.Reason))
	}
	if strict && len(p.Unplaced) > 0 {
		return fmt.Errorf("%w: %d of %d", errUnplaced, len(p.Unplaced), len(list))
	}
	return nil
}

func archive(ctx context.Context, p *models.Puzzle) (string, error) {
	s, err := store.Open(archivePath)
	if err != nil {
		return "", err
	}
	defer s.Close()
	return s.Save(ctx, p)
}

func printSummary(w io.Writer, p *models.Puzzle, files int, dir, id string) {
	total := len(p.Placements) + len(p.Unplaced)
	fmt.Fprintf(w, "Placed %d of %d words in a %dx%d grid (seed %d, mode %s)\n",
		len(p.Placements), total, p.Grid.Rows(), p.Grid.Cols(), p.Seed, p.Mode)
	for _, pl := range p.Placements {
		start := pl.Cells[0]
		fmt.Fprintf(w, "  %-12s %-12s row %d, col %d\n", pl.Word, pl.Orientation, start.Row+1, start.Col+1)
	}
	for _, u := range p.Unplaced {
		fmt.Fprintf(w, "  %-12s not placed (%s)\n", u.Word, u.Reason)
	}
	fmt.Fprintf(w, "Wrote %d files to %s\n", files, dir)
	if id != "" {
		fmt.Fprintf(w, "Archived as %s\n", id)
	}
}
