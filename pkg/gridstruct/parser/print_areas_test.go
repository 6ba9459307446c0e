package parser

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/models"
)

func TestParsePrintAreaReference(t *testing.T) {
	tests := []struct {
		ref       string
		sheetName string
		areas     []models.PrintArea
	}{
		{
			ref:       "Sheet1!$A$1:$D$10",
			sheetName: "Sheet1",
			areas:     []models.PrintArea{{R1: 1, C1: 1, R2: 10, C2: 4}},
		},
		{
			ref:       "'My Sheet'!$A$1:$B$2,'My Sheet'!$D$4:$E$9",
			sheetName: "My Sheet",
			areas: []models.PrintArea{
				{R1: 1, C1: 1, R2: 2, C2: 2},
				{R1: 4, C1: 4, R2: 9, C2: 5},
			},
		},
		{
			ref:       "'Bob''s'!$C$3",
			sheetName: "Bob's",
			areas:     []models.PrintArea{{R1: 3, C1: 3, R2: 3, C2: 3}},
		},
		{
			ref:       "Sheet1!$A$1:junk",
			sheetName: "Sheet1",
		},
	}

	for _, tt := range tests {
		sheetName, areas := parsePrintAreaReference(tt.ref)
		if sheetName != tt.sheetName {
			t.Errorf("parsePrintAreaReference(%q) sheet = %q, expected %q", tt.ref, sheetName, tt.sheetName)
		}
		if len(areas) != len(tt.areas) {
			t.Errorf("parsePrintAreaReference(%q) = %v, expected %v", tt.ref, areas, tt.areas)
			continue
		}
		for i := range areas {
			if areas[i] != tt.areas[i] {
				t.Errorf("parsePrintAreaReference(%q)[%d] = %+v, expected %+v", tt.ref, i, areas[i], tt.areas[i])
			}
		}
	}
}

func TestExtractPrintAreasEmpty(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	areas, err := ExtractPrintAreas(f)
	if err != nil {
		t.Fatalf("ExtractPrintAreas failed: %v", err)
	}
	if len(areas) != 0 {
		t.Errorf("Expected no print areas, got %v", areas)
	}
}
