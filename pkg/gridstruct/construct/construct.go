// Package construct materializes classified clusters into typed structures:
// tables, matrices, key-value blocks, lists and trees.
package construct

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/classify"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/cluster"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/grid"
)

// ErrNotConstruct is returned by Build for a TypeNone classification.
var ErrNotConstruct = errors.New("cluster is not a construct")

// Role is the structural role of one cell inside a construct.
type Role string

const (
	RoleHeader          Role = "header"
	RoleBody            Role = "body"
	RolePrimaryHeader   Role = "primary_header"
	RoleSecondaryHeader Role = "secondary_header"
	RoleBlockHeader     Role = "block_header"
	RoleKey             Role = "key"
	RoleValue           Role = "value"
	RoleListHeader      Role = "list_header"
	RoleItem            Role = "item"
	RoleAnchor          Role = "anchor"
	RoleParent          Role = "parent"
	RoleChild           Role = "child"
	RoleLeaf            Role = "leaf"
	RoleChildHeader     Role = "child_header"
	RoleUnassigned      Role = "unassigned"
)

// Cell is one filled cell of a construct with its role.
type Cell struct {
	grid.Position `yaml:",inline"`
	// Content is the cell text.
	Content string `json:"v" yaml:"v"`
	// Role is the cell's structural role.
	Role Role `json:"role" yaml:"role"`
}

// Construct is the tagged union of every construct variant. Exactly one of
// the variant fields is set, the one matching Type:
//
//	switch c.Type {
//	case classify.TypeTable:    use c.Table
//	case classify.TypeMatrix:   use c.Matrix
//	case classify.TypeKeyValue: use c.KeyValue
//	case classify.TypeList:     use c.List
//	case classify.TypeTree:     use c.Tree
//	}
type Construct struct {
	ID          string               `json:"id" yaml:"id"`
	Type        classify.Type        `json:"type" yaml:"type"`
	Orientation classify.Orientation `json:"orientation" yaml:"orientation"`
	Signature   classify.Signature   `json:"signature" yaml:"signature"`
	Bounds      grid.Rect            `json:"bounds" yaml:"bounds"`
	// Confidence is in [0,1] and reflects how completely the cluster fills
	// the shape its type expects.
	Confidence float64 `json:"confidence" yaml:"confidence"`
	// Cells lists every cell in construction order with its role.
	Cells []Cell `json:"cells" yaml:"cells"`

	Table    *Table    `json:"table,omitempty" yaml:"table,omitempty"`
	Matrix   *Matrix   `json:"matrix,omitempty" yaml:"matrix,omitempty"`
	KeyValue *KeyValue `json:"key_value,omitempty" yaml:"key_value,omitempty"`
	List     *List     `json:"list,omitempty" yaml:"list,omitempty"`
	Tree     *Tree     `json:"tree,omitempty" yaml:"tree,omitempty"`
}

// CellsWithRole returns the cells tagged with role, in order.
func (c *Construct) CellsWithRole(role Role) []Cell {
	var out []Cell
	for _, cell := range c.Cells {
		if cell.Role == role {
			out = append(out, cell)
		}
	}
	return out
}

// Options tunes construct building.
type Options struct {
	// Scope namespaces construct IDs, typically the sheet name.
	Scope string
	// IndentWidth is the number of leading spaces worth one tree level.
	// Zero ignores indentation.
	IndentWidth int
}

var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/ukaji3/gridstruct-go/construct"))

// NewID returns a stable identifier for a construct of type t at bounds b.
func NewID(scope string, t classify.Type, b grid.Rect) string {
	return uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("%s|%s|%s", scope, t, b))).String()
}

// Build materializes the construct r describes. The classification is
// trusted as is.
func Build(c *cluster.Cluster, s grid.Surface, r classify.Result, opts Options) (*Construct, error) {
	switch r.Type {
	case classify.TypeTable:
		return BuildTable(c, s, r, opts), nil
	case classify.TypeMatrix:
		return BuildMatrix(c, s, r, opts), nil
	case classify.TypeKeyValue:
		return BuildKeyValue(c, s, r, opts), nil
	case classify.TypeList:
		return BuildList(c, s, r, opts), nil
	case classify.TypeTree:
		return BuildTree(c, s, r, opts), nil
	}
	return nil, ErrNotConstruct
}

func newConstruct(c *cluster.Cluster, r classify.Result, opts Options) *Construct {
	return &Construct{
		ID:          NewID(opts.Scope, r.Type, c.Bounds),
		Type:        r.Type,
		Orientation: r.Orientation,
		Signature:   r.Signature,
		Bounds:      c.Bounds,
		Cells:       make([]Cell, 0, c.Len()),
	}
}

func cellAt(s grid.Surface, p grid.Position, role Role) Cell {
	return Cell{Position: p, Content: s.Content(p.Row, p.Col), Role: role}
}

func ratio(n, d int) float64 {
	if d <= 0 {
		return 0
	}
	v := float64(n) / float64(d)
	if v > 1 {
		return 1
	}
	return v
}
