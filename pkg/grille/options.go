// Package grille builds grille cipher puzzles: a letter grid with hidden words
// and, for each placed word, the cells its cutout mask exposes.
package grille

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ukaji3/grille-go/pkg/grille/models"
	"github.com/ukaji3/grille-go/pkg/grille/placer"
)

// Mode represents the placement mode.
type Mode string

const (
	// ModeLine places each word on a straight line of adjacent cells.
	ModeLine Mode = "line"
	// ModeScatter places each word on arbitrary cells read in reading order.
	ModeScatter Mode = "scatter"
)

// ParseMode parses a mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "line":
		return ModeLine, nil
	case "scatter", "scattered":
		return ModeScatter, nil
	default:
		return "", fmt.Errorf("invalid mode: %s (must be line or scatter)", s)
	}
}

// DefaultOrientations is the orientation set used when none is configured.
// Every entry reads top-to-bottom, left-to-right, so the mask holes spell the
// word in reading order.
var DefaultOrientations = []models.Orientation{
	models.Horizontal,
	models.Vertical,
	models.Diagonal,
	models.AntiDiagonal,
}

// Options configures a build.
type Options struct {
	// Mode specifies the placement mode (line, scatter).
	Mode Mode
	// Orientations lists the directions tried in line mode, in enumeration
	// order. If empty, DefaultOrientations is used.
	Orientations []models.Orientation
	// Alphabet is the filler alphabet. If empty, placer.LatinAlphabet is used.
	Alphabet []rune
	// ScatterAttempts bounds the random search per word in scatter mode.
	// If zero, placer.DefaultScatterAttempts is used.
	ScatterAttempts int
	// Logger receives per-word debug events. If nil, nothing is logged.
	Logger *slog.Logger
}

// DefaultOptions returns default build options.
func DefaultOptions() Options {
	return Options{
		Mode: ModeLine,
	}
}

func (o Options) mode() Mode {
	if o.Mode == "" {
		return ModeLine
	}
	return o.Mode
}

func (o Options) orientations() []models.Orientation {
	if o.mode() == ModeScatter {
		return []models.Orientation{models.Scatter}
	}
	if len(o.Orientations) == 0 {
		return DefaultOrientations
	}
	return o.Orientations
}

func (o Options) alphabet() []rune {
	if len(o.Alphabet) == 0 {
		return placer.LatinAlphabet
	}
	return o.Alphabet
}

func (o Options) attempts() int {
	if o.ScatterAttempts <= 0 {
		return placer.DefaultScatterAttempts
	}
	return o.ScatterAttempts
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

func (o Options) validate() error {
	switch o.mode() {
	case ModeLine, ModeScatter:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOptions, o.Mode)
	}
	for _, or := range o.Orientations {
		if dr, dc := or.Delta(); dr == 0 && dc == 0 {
			return fmt.Errorf("%w: orientation %q", ErrInvalidOptions, or)
		}
	}
	return nil
}
