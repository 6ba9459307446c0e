package classify

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/cluster"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/grid"
)

func sheet(rows ...string) *grid.Sheet {
	s := grid.NewSheet(len(rows), 0)
	for r, line := range rows {
		for c, ch := range line {
			if ch != '.' {
				s.Set(r+1, c+1, string(ch))
			}
		}
	}
	return s
}

func only(t *testing.T, s grid.Surface, conn cluster.Connectivity) *cluster.Cluster {
	t.Helper()
	clusters := cluster.Finder{Connectivity: conn}.Find(s)
	require.Len(t, clusters, 1)
	return clusters[0]
}

func TestLookupTable(t *testing.T) {
	tests := []struct {
		sig         Signature
		typ         Type
		orientation Orientation
		childHeader bool
	}{
		{0, TypeNone, Vertical, false},
		{1, TypeNone, Vertical, false},
		{2, TypeNone, Vertical, false},
		{3, TypeNone, Vertical, false},
		{4, TypeNone, Vertical, false},
		{5, TypeNone, Vertical, false},
		{6, TypeNone, Vertical, false},
		{7, TypeMatrix, Vertical, false},
		{8, TypeNone, Vertical, false},
		{9, TypeKeyValue, Vertical, false},
		{10, TypeTree, Vertical, false},
		{11, TypeTree, Vertical, true},
		{12, TypeTree, Horizontal, false},
		{13, TypeTree, Horizontal, true},
		{14, TypeNone, Vertical, false},
		{15, TypeTable, Vertical, false},
		{16, TypeNone, Vertical, false},
		{SignatureSingleCell, TypeNone, Vertical, false},
		{SignatureVerticalList, TypeList, Vertical, false},
		{SignatureHorizontalList, TypeList, Horizontal, false},
		{SignatureNone, TypeNone, Vertical, false},
	}

	for _, tt := range tests {
		got := Lookup(tt.sig)
		want := Result{Type: tt.typ, Orientation: tt.orientation, Signature: tt.sig, HasChildHeader: tt.childHeader}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("Lookup(%s) mismatch (-want +got):\n%s", tt.sig, diff)
		}
	}
}

func TestClassifyScenarios(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		conn cluster.Connectivity
		want Result
	}{
		{
			name: "single cell",
			rows: []string{"x"},
			want: Result{Type: TypeNone, Signature: SignatureSingleCell},
		},
		{
			name: "full 3x3 is a table",
			rows: []string{"xxx", "xxx", "xxx"},
			want: Result{Type: TypeTable, Signature: 15},
		},
		{
			name: "empty corner is a matrix",
			rows: []string{".xx", "xxx", "xxx"},
			want: Result{Type: TypeMatrix, Signature: 7},
		},
		{
			name: "single column is a vertical list",
			rows: []string{"x", "x", "x"},
			want: Result{Type: TypeList, Orientation: Vertical, Signature: SignatureVerticalList},
		},
		{
			name: "single row is a horizontal list",
			rows: []string{"xxxx"},
			want: Result{Type: TypeList, Orientation: Horizontal, Signature: SignatureHorizontalList},
		},
		{
			name: "two cell column is a list",
			rows: []string{"x", "x"},
			want: Result{Type: TypeList, Orientation: Vertical, Signature: SignatureVerticalList},
		},
		{
			name: "indented column tree",
			rows: []string{"x..", "xx.", "x.."},
			want: Result{Type: TypeTree, Orientation: Vertical, Signature: 11, HasChildHeader: true},
		},
		{
			name: "column tree without child header",
			rows: []string{"x.", "x.", "xx"},
			want: Result{Type: TypeTree, Orientation: Vertical, Signature: 10},
		},
		{
			name: "row tree",
			rows: []string{"xxx", "..x"},
			want: Result{Type: TypeTree, Orientation: Horizontal, Signature: 12},
		},
		{
			name: "row tree with child header",
			rows: []string{"xxx", ".x."},
			want: Result{Type: TypeTree, Orientation: Horizontal, Signature: 13, HasChildHeader: true},
		},
		{
			name: "diagonal tree",
			rows: []string{"x..", "x..", ".x.", ".x.", "x.."},
			conn: cluster.EightWay,
			want: Result{Type: TypeTree, Orientation: Vertical, Signature: 10},
		},
		{
			name: "key value block",
			rows: []string{"x..", ".xx", ".xx"},
			conn: cluster.EightWay,
			want: Result{Type: TypeKeyValue, Orientation: Vertical, Signature: 9},
		},
		{
			name: "root marker only",
			rows: []string{"xx", "x."},
			want: Result{Type: TypeNone, Signature: 14},
		},
		{
			name: "corner marker only",
			rows: []string{".x", "x."},
			conn: cluster.EightWay,
			want: Result{Type: TypeNone, Signature: 6},
		},
		{
			name: "reserved key",
			rows: []string{".x", ".x", "xx"},
			want: Result{Type: TypeNone, Signature: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sheet(tt.rows...)
			got, err := Classify(only(t, s, tt.conn), s)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Classify mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClassifyIsIdempotent(t *testing.T) {
	s := sheet("xxx", "x.x", "xxx")
	c := only(t, s, cluster.FourWay)
	first, err := Classify(c, s)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Classify(c, s)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestClassifyMalformed(t *testing.T) {
	s := sheet("x.", ".x")

	_, err := Classify(cluster.New([]grid.Position{{Row: 1, Col: 1}, {Row: 2, Col: 2}}, cluster.FourWay), s)
	require.Error(t, err)
	assert.True(t, IsMalformed(err))

	_, err = Classify(cluster.New([]grid.Position{{Row: 1, Col: 1}, {Row: 1, Col: 2}}, cluster.FourWay), s)
	require.Error(t, err)
	var me *cluster.MalformedError
	assert.True(t, errors.As(err, &me))

	_, err = Classify(nil, s)
	assert.True(t, IsMalformed(err))
}

func TestTypeText(t *testing.T) {
	for typ := TypeNone; typ <= TypeTree; typ++ {
		b, err := typ.MarshalText()
		require.NoError(t, err)
		var back Type
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, typ, back)
	}
	var bad Type
	assert.Error(t, bad.UnmarshalText([]byte("spreadsheet")))
}
