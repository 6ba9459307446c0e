package parser

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/classify"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/construct"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/grid"
)

// RangeRef converts a rectangle to Excel range notation such as "A1:D10".
// A single-cell rectangle yields a single cell name.
func RangeRef(r grid.Rect) string {
	start, err := excelize.CoordinatesToCellName(r.Left, r.Top)
	if err != nil {
		return r.String()
	}
	end, err := excelize.CoordinatesToCellName(r.Right, r.Bottom)
	if err != nil {
		return r.String()
	}
	if start == end {
		return start
	}
	return fmt.Sprintf("%s:%s", start, end)
}

// ParseRange parses Excel range notation, with or without "$" anchors, into a
// rectangle. A single cell name yields a one-cell rectangle.
func ParseRange(ref string) (grid.Rect, error) {
	ref = strings.ReplaceAll(strings.TrimSpace(ref), "$", "")
	parts := strings.Split(ref, ":")
	if len(parts) > 2 {
		return grid.Rect{}, fmt.Errorf("invalid range %q", ref)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return grid.Rect{}, fmt.Errorf("invalid range %q: %w", ref, err)
	}
	endCol, endRow := startCol, startRow
	if len(parts) == 2 {
		endCol, endRow, err = excelize.CellNameToCoordinates(parts[1])
		if err != nil {
			return grid.Rect{}, fmt.Errorf("invalid range %q: %w", ref, err)
		}
	}

	return grid.Rect{
		Top:    min(startRow, endRow),
		Bottom: max(startRow, endRow),
		Left:   min(startCol, endCol),
		Right:  max(startCol, endCol),
	}, nil
}

// TableCandidates returns the ranges of the table and matrix constructs in
// constructs, in order.
func TableCandidates(constructs []*construct.Construct) []string {
	var out []string
	for _, c := range constructs {
		if c.Type == classify.TypeTable || c.Type == classify.TypeMatrix {
			out = append(out, RangeRef(c.Bounds))
		}
	}
	return out
}
