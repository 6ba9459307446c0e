package parser

import (
	"testing"

	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/classify"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/construct"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/grid"
)

func TestRangeRef(t *testing.T) {
	tests := []struct {
		rect     grid.Rect
		expected string
	}{
		{grid.Rect{Top: 1, Bottom: 10, Left: 1, Right: 4}, "A1:D10"},
		{grid.Rect{Top: 3, Bottom: 3, Left: 2, Right: 2}, "B3"},
		{grid.Rect{Top: 2, Bottom: 5, Left: 27, Right: 28}, "AA2:AB5"},
	}

	for _, tt := range tests {
		if got := RangeRef(tt.rect); got != tt.expected {
			t.Errorf("RangeRef(%s) = %q, expected %q", tt.rect, got, tt.expected)
		}
	}
}

func TestParseRange(t *testing.T) {
	tests := []struct {
		input    string
		expected grid.Rect
		wantErr  bool
	}{
		{"A1:D10", grid.Rect{Top: 1, Bottom: 10, Left: 1, Right: 4}, false},
		{"$B$2:$C$3", grid.Rect{Top: 2, Bottom: 3, Left: 2, Right: 3}, false},
		{"D10:A1", grid.Rect{Top: 1, Bottom: 10, Left: 1, Right: 4}, false},
		{"C7", grid.Rect{Top: 7, Bottom: 7, Left: 3, Right: 3}, false},
		{"A1:B2:C3", grid.Rect{}, true},
		{"nope", grid.Rect{}, true},
	}

	for _, tt := range tests {
		got, err := ParseRange(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRange(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseRange(%q) = %s, expected %s", tt.input, got, tt.expected)
		}
	}
}

func TestTableCandidates(t *testing.T) {
	cs := []*construct.Construct{
		{Type: classify.TypeTable, Bounds: grid.Rect{Top: 1, Bottom: 3, Left: 1, Right: 3}},
		{Type: classify.TypeList, Bounds: grid.Rect{Top: 5, Bottom: 9, Left: 1, Right: 1}},
		{Type: classify.TypeMatrix, Bounds: grid.Rect{Top: 1, Bottom: 4, Left: 5, Right: 8}},
	}

	got := TableCandidates(cs)
	if len(got) != 2 || got[0] != "A1:C3" || got[1] != "E1:H4" {
		t.Errorf("TableCandidates = %v", got)
	}
}
