package grille

import (
	"errors"
	"fmt"
)

// ErrInvalidDimensions indicates rows or cols is not positive.
var ErrInvalidDimensions = errors.New("invalid grid dimensions")

// ErrInvalidWord indicates a word is empty or contains anything other than
// uppercase letters.
var ErrInvalidWord = errors.New("invalid word")

// ErrInvalidOptions indicates an unknown mode or orientation.
var ErrInvalidOptions = errors.New("invalid options")

// WordError represents a rejected input word.
type WordError struct {
	Index  int
	Word   string
	Reason string
}

func (e *WordError) Error() string {
	return fmt.Sprintf("invalid word %d %q: %s", e.Index, e.Word, e.Reason)
}

func (e *WordError) Unwrap() error {
	return ErrInvalidWord
}

// NewWordError creates a new WordError.
func NewWordError(index int, word, reason string) *WordError {
	return &WordError{
		Index:  index,
		Word:   word,
		Reason: reason,
	}
}
