package parser

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/grid"
)

// saveAndOpen writes f to a temporary file and reopens it, so tests read the
// values the way a saved workbook reports them.
func saveAndOpen(t *testing.T, f *excelize.File) *excelize.File {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	f2, err := excelize.OpenFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	t.Cleanup(func() { f2.Close() })
	return f2
}

func TestLoadSurface(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Header1")
	f.SetCellValue(sheetName, "B1", "Header2")
	f.SetCellValue(sheetName, "A2", 100)
	f.SetCellValue(sheetName, "C4", "far")

	s, err := LoadSurface(saveAndOpen(t, f), sheetName)
	if err != nil {
		t.Fatalf("LoadSurface failed: %v", err)
	}

	if s.Len() != 4 {
		t.Errorf("Expected 4 filled cells, got %d", s.Len())
	}
	if got := s.Content(1, 2); got != "Header2" {
		t.Errorf("Expected 'Header2', got %q", got)
	}
	if got := s.Content(2, 1); got != "100" {
		t.Errorf("Expected '100', got %q", got)
	}
	want := grid.Rect{Top: 1, Bottom: 4, Left: 1, Right: 3}
	if s.Bounds() != want {
		t.Errorf("Expected bounds %s, got %s", want, s.Bounds())
	}
}

func TestLoadSurfaceMissingSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if _, err := LoadSurface(f, "Nope"); err == nil {
		t.Error("Expected error for missing sheet")
	}
}

func TestLoadCSV(t *testing.T) {
	input := "Name,Age\nAnn,31\n\n,,x\n"
	s, err := LoadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}

	tests := []struct {
		row, col int
		expected string
	}{
		{1, 1, "Name"},
		{1, 2, "Age"},
		{2, 1, "Ann"},
		{2, 2, "31"},
		{3, 3, "x"},
		{3, 1, ""},
	}
	for _, tt := range tests {
		if got := s.Content(tt.row, tt.col); got != tt.expected {
			t.Errorf("Content(%d, %d) = %q, expected %q", tt.row, tt.col, got, tt.expected)
		}
	}
}

func TestExtractCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Header1")
	f.SetCellValue(sheetName, "B1", "Header2")
	f.SetCellValue(sheetName, "A2", 100)
	f.SetCellValue(sheetName, "B2", 200.5)
	f.SetCellValue(sheetName, "A3", "Text")
	f.SetCellHyperLink(sheetName, "A3", "https://example.com", "External")

	f2 := saveAndOpen(t, f)
	s, err := LoadSurface(f2, sheetName)
	if err != nil {
		t.Fatalf("LoadSurface failed: %v", err)
	}
	rows := ExtractCells(f2, sheetName, s, true)

	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}

	if rows[0].R != 1 {
		t.Errorf("Expected row 1, got %d", rows[0].R)
	}
	if rows[0].C["1"] != "Header1" {
		t.Errorf("Expected 'Header1', got %v", rows[0].C["1"])
	}

	if rows[1].C["1"] != int64(100) {
		t.Errorf("Expected int64(100), got %v (type: %T)", rows[1].C["1"], rows[1].C["1"])
	}
	if rows[1].C["2"] != 200.5 {
		t.Errorf("Expected 200.5, got %v", rows[1].C["2"])
	}

	if rows[2].Links["1"] != "https://example.com" {
		t.Errorf("Expected link on A3, got %v", rows[2].Links)
	}
	if rows[0].Links != nil {
		t.Errorf("Expected no links on row 1, got %v", rows[0].Links)
	}
}

func TestExtractCellsWithoutWorkbook(t *testing.T) {
	s := grid.SheetFromRows([][]string{{"", "a"}, {}, {"1"}})
	rows := ExtractCells(nil, "", s, true)

	if len(rows) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(rows))
	}
	if rows[1].R != 3 || rows[1].C["1"] != int64(1) {
		t.Errorf("Unexpected second row: %+v", rows[1])
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"hello", "hello"},
		{"", ""},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		if result != tt.expected {
			t.Errorf("parseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}
