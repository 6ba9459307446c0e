package models

import (
	"sort"

	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/construct"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/detect"
)

// SheetData represents the constructs detected on a single sheet.
type SheetData struct {
	// Index is the sheet position in the workbook (0-based).
	Index int `json:"index" yaml:"index"`
	// Rows contains extracted rows with cell values and links.
	Rows []CellRow `json:"rows,omitempty" yaml:"rows,omitempty"`
	// Constructs contains the top-level constructs in detection order.
	Constructs []*construct.Construct `json:"constructs" yaml:"constructs"`
	// Unclassified contains clusters that are not constructs.
	Unclassified []detect.Unclassified `json:"unclassified,omitempty" yaml:"unclassified,omitempty"`
	// TableCandidates contains the A1 ranges of table and matrix constructs.
	TableCandidates []string `json:"table_candidates,omitempty" yaml:"table_candidates,omitempty"`
	// PrintAreas contains user-defined print areas.
	PrintAreas []PrintArea `json:"print_areas,omitempty" yaml:"print_areas,omitempty"`
	// PrintAreaViews holds one parse per print area. It is written to
	// separate files rather than inlined.
	PrintAreaViews []PrintAreaView `json:"-" yaml:"-"`
	// Truncated counts tree domains whose nested parse hit the depth limit.
	Truncated int `json:"truncated,omitempty" yaml:"truncated,omitempty"`
	// Errors lists non-fatal detection errors.
	Errors []string `json:"errors,omitempty" yaml:"errors,omitempty"`
}

func sortSheets(names []string, sheets map[string]SheetData) {
	sort.Slice(names, func(i, j int) bool {
		a, b := sheets[names[i]], sheets[names[j]]
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		return names[i] < names[j]
	})
}
