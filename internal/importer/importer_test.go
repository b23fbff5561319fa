package importer

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"
)

func workbookFromRows(t *testing.T, rows [][]interface{}) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func TestParseWorkbook(t *testing.T) {
	wb := workbookFromRows(t, [][]interface{}{
		{"Word", "Meaning", "Pronunciation", "Example", "Type", "Difficulty"},
		{"apple", "a fruit", "/ˈæp.əl/", "I ate an apple.", "noun", "2"},
		{"run", "move fast", "", "", "verb", ""},
		{"", "orphan meaning", "", "", "", ""},
		{"seven", "lucky number", "", "", "", "9"},
	})

	rows, warnings, err := ParseWorkbook(wb)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	if rows[0].Word != "apple" || rows[0].Meaning != "a fruit" {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[0].DifficultyLevel != 2 {
		t.Fatalf("difficulty = %d, want 2", rows[0].DifficultyLevel)
	}
	if rows[0].Example != "I ate an apple." {
		t.Fatalf("example = %q", rows[0].Example)
	}

	// Blank difficulty defaults to 1, out-of-range falls back with a warning.
	if rows[1].DifficultyLevel != 1 {
		t.Fatalf("blank difficulty = %d, want 1", rows[1].DifficultyLevel)
	}
	if rows[2].DifficultyLevel != 1 {
		t.Fatalf("invalid difficulty = %d, want 1", rows[2].DifficultyLevel)
	}

	if len(warnings) != 2 {
		t.Fatalf("warnings = %v, want missing-word and invalid-difficulty", warnings)
	}
}

func TestParseWorkbookSkipsEmptyRows(t *testing.T) {
	wb := workbookFromRows(t, [][]interface{}{
		{"Word", "Meaning"},
		{"", ""},
		{"apple", "a fruit"},
	})

	rows, warnings, err := ParseWorkbook(wb)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
}

func TestParseWorkbookRejectsGarbage(t *testing.T) {
	if _, _, err := ParseWorkbook(bytes.NewReader([]byte("not a zip archive"))); err == nil {
		t.Fatal("garbage input accepted")
	}
}
