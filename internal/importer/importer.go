// Package importer parses vocabulary workbooks uploaded by admins.
//
// Expected layout, one word per row starting at row 2 (row 1 is the
// header): A word, B meaning, C pronunciation, D example sentence,
// E word type, F difficulty level (1-5).
package importer

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

type Row struct {
	Word            string
	Meaning         string
	Pronunciation   string
	Example         string
	WordType        string
	DifficultyLevel int
	// Line is the 1-based workbook row, for error reporting.
	Line int
}

const (
	colWord = iota
	colMeaning
	colPronunciation
	colExample
	colWordType
	colDifficulty
)

// ParseWorkbook reads the first sheet. Rows with a missing word or
// meaning are reported as warnings and skipped, never fatal.
func ParseWorkbook(r io.Reader) ([]Row, []string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	rawRows, err := f.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}

	var (
		rows     []Row
		warnings []string
	)
	for i, raw := range rawRows {
		line := i + 1
		if line == 1 {
			continue
		}

		row := Row{
			Word:            cell(raw, colWord),
			Meaning:         cell(raw, colMeaning),
			Pronunciation:   cell(raw, colPronunciation),
			Example:         cell(raw, colExample),
			WordType:        cell(raw, colWordType),
			DifficultyLevel: 1,
			Line:            line,
		}
		if row.Word == "" && row.Meaning == "" {
			continue
		}
		if row.Word == "" {
			warnings = append(warnings, fmt.Sprintf("row %d: missing word", line))
			continue
		}
		if row.Meaning == "" {
			warnings = append(warnings, fmt.Sprintf("row %d: missing meaning", line))
			continue
		}

		if d := cell(raw, colDifficulty); d != "" {
			n, err := strconv.Atoi(d)
			if err != nil || n < 1 || n > 5 {
				warnings = append(warnings, fmt.Sprintf("row %d: invalid difficulty %q, using 1", line, d))
			} else {
				row.DifficultyLevel = n
			}
		}

		rows = append(rows, row)
	}
	return rows, warnings, nil
}

func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
