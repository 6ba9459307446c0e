package models

import (
	"strconv"

	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/construct"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/grid"
)

// PrintArea represents cell coordinate bounds for a print area.
type PrintArea struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1" yaml:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1" yaml:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2" yaml:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2" yaml:"c2"`
}

// Rect returns the area as a grid rectangle.
func (a PrintArea) Rect() grid.Rect {
	return grid.Rect{Top: a.R1, Bottom: a.R2, Left: a.C1, Right: a.C2}
}

// PrintAreaView represents a sheet parsed within the bounds of one print area.
type PrintAreaView struct {
	// BookName is the workbook name owning the area.
	BookName string `json:"book_name" yaml:"book_name"`
	// SheetName is the sheet name owning the area.
	SheetName string `json:"sheet_name" yaml:"sheet_name"`
	// Area is the print area bounds.
	Area PrintArea `json:"area" yaml:"area"`
	// Rows contains the cell rows inside the area, when cells are extracted.
	Rows []CellRow `json:"rows,omitempty" yaml:"rows,omitempty"`
	// Constructs contains the constructs found inside the area. Clusters
	// crossing the area edge are cut at it.
	Constructs []*construct.Construct `json:"constructs" yaml:"constructs"`
	// TableCandidates contains table and matrix ranges inside the area.
	TableCandidates []string `json:"table_candidates,omitempty" yaml:"table_candidates,omitempty"`
}

// Clip returns the rows restricted to the area. Rows left with no cells are
// dropped.
func (a PrintArea) Clip(rows []CellRow) []CellRow {
	var out []CellRow
	for _, row := range rows {
		if row.R < a.R1 || row.R > a.R2 {
			continue
		}
		clipped := CellRow{R: row.R, C: make(map[string]interface{})}
		for col, v := range row.C {
			if n, err := strconv.Atoi(col); err == nil && n >= a.C1 && n <= a.C2 {
				clipped.C[col] = v
				if link, ok := row.Links[col]; ok {
					if clipped.Links == nil {
						clipped.Links = make(map[string]string)
					}
					clipped.Links[col] = link
				}
			}
		}
		if len(clipped.C) > 0 {
			out = append(out, clipped)
		}
	}
	return out
}
