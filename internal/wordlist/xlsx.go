package wordlist

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook reads words from every sheet of an XLSX workbook, row by row.
// Each non-empty text cell is one word; numeric cells and cells starting
// with '#' are skipped.
func ReadWorkbook(r io.Reader) ([]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var words []string
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("sheet %s: %w", sheet, err)
		}
		for _, row := range rows {
			for _, value := range row {
				value = strings.TrimSpace(value)
				if value == "" || strings.HasPrefix(value, "#") || isNumber(value) {
					continue
				}
				words = append(words, value)
			}
		}
	}
	return words, nil
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func readWorkbookFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	words, err := ReadWorkbook(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return words, nil
}
