package grille

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"unicode"
	"unicode/utf8"

	"github.com/ukaji3/grille-go/pkg/grille/models"
	"github.com/ukaji3/grille-go/pkg/grille/placer"
)

// pcgStream is the fixed PCG stream selector; only the seed varies.
const pcgStream = 0x6772696c6c65

// ErrBuilderFinished is returned by Place after Finish has been called.
var ErrBuilderFinished = errors.New("builder already finished")

// Builder owns a grid under construction, its random source and the
// placement records. A Builder is not safe for concurrent use; concurrent
// builds each need their own Builder.
type Builder struct {
	seed       int64
	opts       Options
	grid       *models.Grid
	rng        *rand.Rand
	log        *slog.Logger
	placements []models.Placement
	unplaced   []models.Unplaced
	finished   bool
}

// NewBuilder creates a builder for an empty rows x cols grid.
func NewBuilder(rows, cols int, seed int64, opts Options) (*Builder, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, rows, cols)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Builder{
		seed: seed,
		opts: opts,
		grid: models.NewGrid(rows, cols),
		rng:  rand.New(rand.NewPCG(uint64(seed), pcgStream)),
		log:  opts.logger().With("seed", seed, "mode", string(opts.mode())),
	}, nil
}

// ValidateWord checks that word is non-empty and made of uppercase letters.
func ValidateWord(index int, word string) error {
	if word == "" {
		return NewWordError(index, word, "empty word")
	}
	if !utf8.ValidString(word) {
		return NewWordError(index, word, "not valid UTF-8")
	}
	for _, r := range word {
		if !unicode.IsLetter(r) {
			return NewWordError(index, word, fmt.Sprintf("non-letter %q", r))
		}
		if unicode.IsLower(r) && unicode.ToUpper(r) != r {
			return NewWordError(index, word, fmt.Sprintf("lowercase letter %q", r))
		}
	}
	return nil
}

// Place tries to place one word. It returns the placement and true on
// success; an unplaceable word is recorded as unplaced and returns false with
// a nil error. Only invalid words and calls after Finish return an error.
func (b *Builder) Place(index int, word string) (models.Placement, bool, error) {
	if b.finished {
		return models.Placement{}, false, ErrBuilderFinished
	}
	if err := ValidateWord(index, word); err != nil {
		return models.Placement{}, false, err
	}

	letters := []rune(word)
	orientations := b.opts.orientations()
	if span := placer.MaxSpan(b.grid.Rows(), b.grid.Cols(), orientations); len(letters) > span {
		b.skip(index, word, models.ReasonTooLong)
		return models.Placement{}, false, nil
	}

	var (
		cells  []models.Coord
		orient models.Orientation
		ok     bool
	)
	if b.opts.mode() == ModeScatter {
		orient = models.Scatter
		cells, ok = placer.Scatter(b.rng, b.grid, letters, b.opts.attempts())
	} else {
		cands := placer.Candidates(b.grid, letters, orientations)
		if len(cands) > 0 {
			pick := cands[b.rng.IntN(len(cands))]
			orient = pick.Orientation
			cells, ok = pick.Cells(len(letters)), true
		}
		b.log.Debug("candidates enumerated", "word", word, "count", len(cands))
	}
	if !ok {
		b.skip(index, word, models.ReasonNoSlot)
		return models.Placement{}, false, nil
	}

	for i, c := range cells {
		b.grid.Set(c, letters[i])
	}
	pl := models.Placement{
		Index:       index,
		Word:        word,
		Orientation: orient,
		Cells:       cells,
	}
	b.placements = append(b.placements, pl)
	b.log.Debug("word placed", "index", index, "word", word, "orientation", string(orient), "start", cells[0])
	return pl, true, nil
}

func (b *Builder) skip(index int, word string, reason models.UnplacedReason) {
	b.unplaced = append(b.unplaced, models.Unplaced{Index: index, Word: word, Reason: reason})
	b.log.Debug("word unplaced", "index", index, "word", word, "reason", string(reason))
}

// Finish fills the remaining empty cells, freezes the grid and returns the
// puzzle. Later calls return the same puzzle without drawing more randomness.
func (b *Builder) Finish() *models.Puzzle {
	if !b.finished {
		filled := placer.Fill(b.rng, b.grid, b.opts.alphabet())
		b.grid.Freeze()
		b.finished = true
		b.log.Debug("grid filled", "filler_cells", filled)
	}
	placements := make([]models.Placement, len(b.placements))
	copy(placements, b.placements)
	unplaced := make([]models.Unplaced, len(b.unplaced))
	copy(unplaced, b.unplaced)
	return &models.Puzzle{
		Seed:       b.seed,
		Mode:       string(b.opts.mode()),
		Grid:       b.grid,
		Placements: placements,
		Unplaced:   unplaced,
	}
}

// Build places words in order on a rows x cols grid and fills the rest with
// random letters drawn from a source seeded by seed. Identical arguments
// always produce an identical puzzle.
//
// Words that cannot be placed are reported in Puzzle.Unplaced. Invalid
// dimensions, options or words fail the whole build before anything is
// placed.
func Build(rows, cols int, words []string, seed int64, opts Options) (*models.Puzzle, error) {
	b, err := NewBuilder(rows, cols, seed, opts)
	if err != nil {
		return nil, err
	}
	for i, w := range words {
		if err := ValidateWord(i, w); err != nil {
			return nil, err
		}
	}
	for i, w := range words {
		if _, _, err := b.Place(i, w); err != nil {
			return nil, err
		}
	}
	p := b.Finish()
	b.log.Info("puzzle built",
		"rows", rows,
		"cols", cols,
		"placed", len(p.Placements),
		"unplaced", len(p.Unplaced),
	)
	return p, nil
}
