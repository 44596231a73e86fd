// Package wordlist reads and normalizes the words hidden in a puzzle.
package wordlist

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/language"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Normalize trims each word, composes it to NFC and uppercases it with the
// casing rules of lang. Blank entries are dropped. An unparsable lang falls
// back to language.Und.
func Normalize(words []string, lang string) []string {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.Und
	}
	upper := cases.Upper(tag)

	out := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(norm.NFC.String(w))
		if w == "" {
			continue
		}
		out = append(out, upper.String(w))
	}
	return out
}

// Expand resolves glob patterns (with ** support) to a sorted list of files.
// A pattern that matches nothing is an error.
func Expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("bad word file pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no word files match %q", pattern)
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	slices.Sort(files)
	return files, nil
}

// ReadFile reads one word per line. Blank lines and lines starting with '#'
// are skipped. Content that is not valid UTF-8 is decoded as Windows-1252.
// Files ending in .xlsx are read with ReadWorkbook.
func ReadFile(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return readWorkbookFile(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	words, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return words, nil
}

// Parse splits raw word list content into words.
func Parse(data []byte) ([]string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var r io.Reader = bytes.NewReader(data)
	if !utf8.Valid(data) {
		r = transform.NewReader(r, charmap.Windows1252.NewDecoder())
	}

	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// Load combines inline words with the words of every file matched by
// patterns, in that order, and normalizes the result.
func Load(words, patterns []string, lang string) ([]string, error) {
	all := slices.Clone(words)
	if len(patterns) > 0 {
		files, err := Expand(patterns)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			fw, err := ReadFile(f)
			if err != nil {
				return nil, err
			}
			all = append(all, fw...)
		}
	}
	return Normalize(all, lang), nil
}
