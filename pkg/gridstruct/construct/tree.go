package construct

import (
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/classify"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/cluster"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/grid"
)

// NoParent is the Parent index of root elements.
const NoParent = -1

// Element is one cell of a Tree. Links are indices into Tree.Elements.
type Element struct {
	grid.Position `yaml:",inline"`

	Index    int     `json:"index" yaml:"index"`
	Content  string  `json:"v" yaml:"v"`
	Level    int     `json:"level" yaml:"level"`
	Role     Role    `json:"role" yaml:"role"`
	Parent   int     `json:"parent" yaml:"parent"`
	Children []int   `json:"children,omitempty" yaml:"children,omitempty"`
	Domain   *Domain `json:"domain,omitempty" yaml:"domain,omitempty"`
}

// IsRoot reports whether e has no parent.
func (e *Element) IsRoot() bool {
	return e.Parent == NoParent
}

// Domain is the region owned by a parent element's descendants.
type Domain struct {
	Bounds grid.Rect `json:"bounds" yaml:"bounds"`
	// HasNested is set when a construct was detected inside Bounds.
	HasNested bool       `json:"has_nested" yaml:"has_nested"`
	Nested    *Construct `json:"nested,omitempty" yaml:"nested,omitempty"`
	// Error records why nested detection did not run for this domain.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Tree is a hierarchy laid out by offset: each step right (vertical trees)
// or down (horizontal trees) is one level deeper.
type Tree struct {
	Orientation    classify.Orientation `json:"orientation" yaml:"orientation"`
	HasChildHeader bool                 `json:"has_child_header,omitempty" yaml:"has_child_header,omitempty"`
	// Elements holds every element in extraction order.
	Elements []Element `json:"elements" yaml:"elements"`
	// Roots lists the indices of level-stack roots.
	Roots []int `json:"roots" yaml:"roots"`
}

// Element returns the element at index i.
func (t *Tree) Element(i int) *Element {
	return &t.Elements[i]
}

// Find returns the first element whose content is s.
func (t *Tree) Find(s string) (*Element, bool) {
	for i := range t.Elements {
		if t.Elements[i].Content == s {
			return &t.Elements[i], true
		}
	}
	return nil, false
}

// Parents returns the indices of elements owning at least one child.
func (t *Tree) Parents() []int {
	var out []int
	for i := range t.Elements {
		if len(t.Elements[i].Children) > 0 {
			out = append(out, i)
		}
	}
	return out
}

// Boundary returns the index of the first element after i whose level is not
// deeper than i's (its next peer or ancestor), or len(Elements) if none.
func (t *Tree) Boundary(i int) int {
	level := t.Elements[i].Level
	for j := i + 1; j < len(t.Elements); j++ {
		if t.Elements[j].Level <= level {
			return j
		}
	}
	return len(t.Elements)
}

// Descendants returns the indices strictly between i and its boundary.
func (t *Tree) Descendants(i int) []int {
	end := t.Boundary(i)
	out := make([]int, 0, end-i-1)
	for j := i + 1; j < end; j++ {
		out = append(out, j)
	}
	return out
}

// DomainBounds returns the rectangle owned by element i's descendants. It
// spans the descendants' cells, starts after the parent's own line unless a
// descendant shares it, and stops before the next peer or ancestor. The
// second result is false when i has no descendants or the rectangle is empty.
func (t *Tree) DomainBounds(i int) (grid.Rect, bool) {
	desc := t.Descendants(i)
	if len(desc) == 0 {
		return grid.Rect{}, false
	}

	// Work in (primary, secondary) space: rows then columns for vertical
	// trees, columns then rows for horizontal ones.
	flip := t.Orientation == classify.Horizontal
	toAxis := func(p grid.Position) grid.Position {
		if flip {
			return grid.Position{Row: p.Col, Col: p.Row}
		}
		return p
	}
	fromAxis := func(r grid.Rect) grid.Rect {
		if flip {
			return grid.Rect{Top: r.Left, Bottom: r.Right, Left: r.Top, Right: r.Bottom}
		}
		return r
	}

	pts := make([]grid.Position, 0, len(desc))
	for _, j := range desc {
		pts = append(pts, toAxis(t.Elements[j].Position))
	}
	rect, _ := grid.RectAround(pts)

	parent := toAxis(t.Elements[i].Position)
	if rect.Contains(parent) {
		rect.Top = parent.Row + 1
	}
	if end := t.Boundary(i); end < len(t.Elements) {
		stop := toAxis(t.Elements[end].Position)
		if rect.Bottom >= stop.Row {
			rect.Bottom = stop.Row - 1
		}
	}
	if rect.Empty() {
		return grid.Rect{}, false
	}
	return fromAxis(rect), true
}

// Cells returns the positions of every element.
func (t *Tree) Cells() []grid.Position {
	out := make([]grid.Position, len(t.Elements))
	for i := range t.Elements {
		out[i] = t.Elements[i].Position
	}
	return out
}

// BuildTree builds a Tree. Elements are extracted along the primary axis and
// levelled by their offset from the cluster edge, then linked with a level
// stack.
func BuildTree(c *cluster.Cluster, s grid.Surface, r classify.Result, opts Options) *Construct {
	out := newConstruct(c, r, opts)
	b := c.Bounds
	t := &Tree{Orientation: r.Orientation, HasChildHeader: r.HasChildHeader}

	for i, p := range orderAlong(c.Points, r.Orientation) {
		content := s.Content(p.Row, p.Col)
		level := p.Col - b.Left
		if r.Orientation == classify.Horizontal {
			level = p.Row - b.Top
		} else {
			level += indentLevel(content, opts.IndentWidth)
		}
		t.Elements = append(t.Elements, Element{
			Index:    i,
			Position: p,
			Content:  content,
			Level:    level,
			Parent:   NoParent,
		})
	}

	linkLevels(t)

	steady, edges := 0, 0
	for i := range t.Elements {
		e := &t.Elements[i]
		if e.IsRoot() {
			continue
		}
		edges++
		if e.Level-t.Elements[e.Parent].Level == 1 {
			steady++
		}
	}

	for i := range t.Elements {
		e := &t.Elements[i]
		role := e.Role
		if t.HasChildHeader && isChildHeader(e, b, r.Orientation) {
			role = RoleChildHeader
		}
		out.Cells = append(out.Cells, Cell{Position: e.Position, Content: e.Content, Role: role})
	}

	out.Tree = t
	out.Confidence = 1
	if edges > 0 {
		out.Confidence = ratio(steady, edges)
	}
	return out
}

// linkLevels attaches every element to the nearest preceding element with a
// lower level and assigns roles.
func linkLevels(t *Tree) {
	var stack []int
	for i := range t.Elements {
		e := &t.Elements[i]
		for len(stack) > 0 && t.Elements[stack[len(stack)-1]].Level >= e.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) > 0 {
			parent := &t.Elements[stack[len(stack)-1]]
			e.Parent = parent.Index
			e.Role = RoleChild
			parent.Children = append(parent.Children, i)
			if parent.Role != RoleAnchor {
				parent.Role = RoleParent
			}
		} else {
			e.Role = RoleLeaf
			t.Roots = append(t.Roots, i)
		}
		if i == 0 {
			e.Role = RoleAnchor
		}
		stack = append(stack, i)
	}
}

// isChildHeader reports whether e sits on the second line of the tree past
// its first level, where trees with a child header keep the child labels.
func isChildHeader(e *Element, b grid.Rect, o classify.Orientation) bool {
	if o == classify.Horizontal {
		return e.Col == b.Left+1 && e.Row > b.Top
	}
	return e.Row == b.Top+1 && e.Col > b.Left
}

func indentLevel(content string, width int) int {
	if width <= 0 {
		return 0
	}
	spaces := 0
	for _, ch := range content {
		switch ch {
		case ' ':
			spaces++
		case '\t':
			spaces += width
		default:
			return spaces / width
		}
	}
	return spaces / width
}
