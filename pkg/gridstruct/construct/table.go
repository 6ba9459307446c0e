package construct

import (
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/classify"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/cluster"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/grid"
)

// Group is a header cell with the body cells filed under it.
type Group struct {
	Header Cell   `json:"header" yaml:"header"`
	Values []Cell `json:"values" yaml:"values"`
}

// Table is a fully headed grid: the first row names attributes and the first
// column names entities.
type Table struct {
	// Corner is the top-left cell shared by both header lines.
	Corner Cell `json:"corner" yaml:"corner"`
	// Columns groups body cells under each column header (attributes).
	Columns []Group `json:"columns" yaml:"columns"`
	// Rows groups body cells under each row header (entities).
	Rows []Group `json:"rows" yaml:"rows"`
}

// Column returns the attribute group whose header reads name.
func (t *Table) Column(name string) (Group, bool) {
	for _, g := range t.Columns {
		if g.Header.Content == name {
			return g, true
		}
	}
	return Group{}, false
}

// BuildTable builds a Table: cells on the first row or column are headers,
// everything else is body.
func BuildTable(c *cluster.Cluster, s grid.Surface, r classify.Result, opts Options) *Construct {
	out := newConstruct(c, r, opts)
	b := c.Bounds
	t := &Table{}

	colIdx := make(map[int]int)
	rowIdx := make(map[int]int)
	for _, p := range c.Points {
		if p.Row != b.Top && p.Col != b.Left {
			continue
		}
		cell := cellAt(s, p, RoleHeader)
		switch {
		case p.Row == b.Top && p.Col == b.Left:
			t.Corner = cell
		case p.Row == b.Top:
			colIdx[p.Col] = len(t.Columns)
			t.Columns = append(t.Columns, Group{Header: cell})
		default:
			rowIdx[p.Row] = len(t.Rows)
			t.Rows = append(t.Rows, Group{Header: cell})
		}
	}

	for _, p := range c.Points {
		if p.Row == b.Top || p.Col == b.Left {
			out.Cells = append(out.Cells, cellAt(s, p, RoleHeader))
			continue
		}
		cell := cellAt(s, p, RoleBody)
		out.Cells = append(out.Cells, cell)
		if i, ok := colIdx[p.Col]; ok {
			t.Columns[i].Values = append(t.Columns[i].Values, cell)
		}
		if i, ok := rowIdx[p.Row]; ok {
			t.Rows[i].Values = append(t.Rows[i].Values, cell)
		}
	}

	out.Table = t
	out.Confidence = ratio(c.Len(), b.Area())
	return out
}

// MatrixCell is a body cell addressed by its column and row headers.
type MatrixCell struct {
	Cell `yaml:",inline"`
	// Primary is the text of the column header above the cell.
	Primary string `json:"primary" yaml:"primary"`
	// Secondary is the text of the row header left of the cell.
	Secondary string `json:"secondary" yaml:"secondary"`
}

// Matrix is a two-axis grid with an empty corner.
type Matrix struct {
	PrimaryHeaders   []Cell       `json:"primary_headers" yaml:"primary_headers"`
	SecondaryHeaders []Cell       `json:"secondary_headers" yaml:"secondary_headers"`
	Body             []MatrixCell `json:"body" yaml:"body"`
}

// At returns the body cell under primary and beside secondary.
func (m *Matrix) At(primary, secondary string) (Cell, bool) {
	for _, mc := range m.Body {
		if mc.Primary == primary && mc.Secondary == secondary {
			return mc.Cell, true
		}
	}
	return Cell{}, false
}

// BuildMatrix builds a Matrix: the top row minus the corner holds primary
// headers, the left column minus the corner holds secondary headers.
func BuildMatrix(c *cluster.Cluster, s grid.Surface, r classify.Result, opts Options) *Construct {
	out := newConstruct(c, r, opts)
	b := c.Bounds
	m := &Matrix{}

	// Row-major order visits every header before the body cells it names.
	primary := make(map[int]string)
	secondary := make(map[int]string)
	for _, p := range c.Points {
		switch {
		case p.Row == b.Top && p.Col == b.Left:
			out.Cells = append(out.Cells, cellAt(s, p, RoleUnassigned))
		case p.Row == b.Top:
			cell := cellAt(s, p, RolePrimaryHeader)
			primary[p.Col] = cell.Content
			m.PrimaryHeaders = append(m.PrimaryHeaders, cell)
			out.Cells = append(out.Cells, cell)
		case p.Col == b.Left:
			cell := cellAt(s, p, RoleSecondaryHeader)
			secondary[p.Row] = cell.Content
			m.SecondaryHeaders = append(m.SecondaryHeaders, cell)
			out.Cells = append(out.Cells, cell)
		default:
			cell := cellAt(s, p, RoleBody)
			m.Body = append(m.Body, MatrixCell{Cell: cell, Primary: primary[p.Col], Secondary: secondary[p.Row]})
			out.Cells = append(out.Cells, cell)
		}
	}

	out.Matrix = m
	out.Confidence = ratio(c.Len(), b.Area()-1)
	return out
}
