// Package parser reads workbook and delimited-text sources into surfaces and
// converts between grid coordinates and A1 references.
package parser

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/grid"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/models"
)

// LoadSurface reads the cell values of a sheet into a grid.Sheet.
// Values are the formatted strings excelize reports.
func LoadSurface(f *excelize.File, sheetName string) (*grid.Sheet, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	return grid.SheetFromRows(rows), nil
}

// LoadCSV reads comma-separated records into a grid.Sheet. Records may have
// differing field counts.
func LoadCSV(r io.Reader) (*grid.Sheet, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	s := grid.NewSheet(0, 0)
	for row := 1; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv row %d: %w", row, err)
		}
		for i, v := range record {
			s.Set(row, i+1, v)
		}
	}
	return s, nil
}

// ExtractCells groups the filled cells of s into rows.
// Hyperlinks are looked up in f when includeLinks is set and f is not nil.
func ExtractCells(f *excelize.File, sheetName string, s grid.Surface, includeLinks bool) []models.CellRow {
	var result []models.CellRow
	var cur *models.CellRow

	for _, p := range grid.FilledPositions(s) {
		if cur == nil || cur.R != p.Row {
			result = append(result, models.CellRow{R: p.Row, C: make(map[string]interface{})})
			cur = &result[len(result)-1]
		}
		colStr := strconv.Itoa(p.Col)
		cur.C[colStr] = parseValue(s.Content(p.Row, p.Col))

		if includeLinks && f != nil {
			cellName, _ := excelize.CoordinatesToCellName(p.Col, p.Row)
			hasLink, target, err := f.GetCellHyperLink(sheetName, cellName)
			if err == nil && hasLink && target != "" {
				if cur.Links == nil {
					cur.Links = make(map[string]string)
				}
				cur.Links[colStr] = target
			}
		}
	}
	return result
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}
