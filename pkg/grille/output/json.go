package output

import (
	"encoding/json"
	"fmt"

	"github.com/ukaji3/grille-go/pkg/grille/models"
)

// ToJSON serializes a puzzle to JSON.
func ToJSON(p *models.Puzzle, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(p, "", "  ")
	}
	return json.Marshal(p)
}

// FromJSON decodes a puzzle written by ToJSON.
func FromJSON(data []byte) (*models.Puzzle, error) {
	var p models.Puzzle
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if p.Grid == nil {
		return nil, fmt.Errorf("puzzle JSON has no grid")
	}
	return &p, nil
}
