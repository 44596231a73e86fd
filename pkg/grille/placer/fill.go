package placer

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/ukaji3/grille-go/pkg/grille/models"
)

// Built-in filler alphabets.
var (
	LatinAlphabet  = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ")
	GermanAlphabet = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZÄÖÜß")
)

// ParseAlphabet resolves an alphabet name ("latin", "german") or a literal
// list of letters. Literal letters are uppercased; duplicates are removed,
// first occurrence wins.
func ParseAlphabet(s string) ([]rune, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "latin", "en", "english":
		return LatinAlphabet, nil
	case "german", "de":
		return GermanAlphabet, nil
	}

	seen := make(map[rune]bool)
	var out []rune
	for _, r := range strings.TrimSpace(s) {
		if unicode.IsSpace(r) || r == ',' {
			continue
		}
		if !unicode.IsLetter(r) {
			return nil, fmt.Errorf("invalid alphabet letter %q", r)
		}
		r = unicode.ToUpper(r)
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty alphabet")
	}
	return out, nil
}

// Fill writes a random letter from alphabet into every empty cell, visiting
// cells in reading order. Returns the number of cells filled.
func Fill(rng *rand.Rand, g *models.Grid, alphabet []rune) int {
	if len(alphabet) == 0 {
		alphabet = LatinAlphabet
	}
	n := 0
	for _, c := range g.EmptyCells() {
		if g.Set(c, alphabet[rng.IntN(len(alphabet))]) {
			n++
		}
	}
	return n
}
