// Package cluster groups the filled cells of a surface into connected components.
package cluster

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/grid"
)

// ErrMalformed indicates a cluster whose bounds or connectivity do not match
// its point set. It is a caller contract violation.
var ErrMalformed = errors.New("malformed cluster")

// Connectivity selects which neighbours join two filled cells.
type Connectivity int

const (
	// FourWay joins cells sharing an edge (up, down, left, right).
	FourWay Connectivity = iota
	// EightWay also joins diagonal neighbours.
	EightWay
)

var (
	edgeSteps     = []grid.Position{{Row: -1}, {Row: 1}, {Col: -1}, {Col: 1}}
	diagonalSteps = []grid.Position{{Row: -1, Col: -1}, {Row: -1, Col: 1}, {Row: 1, Col: -1}, {Row: 1, Col: 1}}
)

func (c Connectivity) steps() []grid.Position {
	if c == EightWay {
		return append(append([]grid.Position{}, edgeSteps...), diagonalSteps...)
	}
	return edgeSteps
}

// String returns "four" or "eight".
func (c Connectivity) String() string {
	if c == EightWay {
		return "eight"
	}
	return "four"
}

// ParseConnectivity parses "four"/"4" or "eight"/"8".
func ParseConnectivity(s string) (Connectivity, error) {
	switch s {
	case "four", "4", "":
		return FourWay, nil
	case "eight", "8":
		return EightWay, nil
	}
	return FourWay, fmt.Errorf("invalid connectivity: %s (must be four or eight)", s)
}

// Cluster is a maximal connected set of filled cells with its tight bounding box.
type Cluster struct {
	// Points holds the filled positions in row-major order.
	Points []grid.Position
	// Bounds is the smallest rectangle enclosing Points.
	Bounds grid.Rect
	// Connectivity is the adjacency the cluster was grown with.
	Connectivity Connectivity

	index map[grid.Position]struct{}
}

// New builds a cluster from pts, computing its bounds. The point set is not
// checked; call Validate when pts does not come from a Finder.
func New(pts []grid.Position, conn Connectivity) *Cluster {
	sorted := append([]grid.Position(nil), pts...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	c := &Cluster{Points: sorted, Connectivity: conn}
	c.Bounds, _ = grid.RectAround(sorted)
	c.index = indexOf(sorted)
	return c
}

func indexOf(pts []grid.Position) map[grid.Position]struct{} {
	idx := make(map[grid.Position]struct{}, len(pts))
	for _, p := range pts {
		idx[p] = struct{}{}
	}
	return idx
}

// Len returns the number of filled points.
func (c *Cluster) Len() int {
	return len(c.Points)
}

// Contains reports whether p is one of the cluster's points.
func (c *Cluster) Contains(p grid.Position) bool {
	if c.index != nil {
		_, ok := c.index[p]
		return ok
	}
	for _, q := range c.Points {
		if q == p {
			return true
		}
	}
	return false
}

// Has reports whether the cell at the given offset from the cluster's
// top-left corner is one of its points (offsets are 0-based).
func (c *Cluster) Has(rowOffset, colOffset int) bool {
	return c.Contains(grid.Position{Row: c.Bounds.Top + rowOffset, Col: c.Bounds.Left + colOffset})
}

// MalformedError describes why a cluster failed validation.
type MalformedError struct {
	Bounds grid.Rect
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed cluster %s: %s", e.Bounds, e.Reason)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformed
}

// Validate checks that Bounds is the tight box of Points and that the points
// are connected under the cluster's connectivity.
func (c *Cluster) Validate() error {
	if len(c.Points) == 0 {
		return &MalformedError{Bounds: c.Bounds, Reason: "no points"}
	}
	seen := make(map[grid.Position]struct{}, len(c.Points))
	for _, p := range c.Points {
		if !c.Bounds.Contains(p) {
			return &MalformedError{Bounds: c.Bounds, Reason: fmt.Sprintf("point %s outside bounds", p)}
		}
		if _, dup := seen[p]; dup {
			return &MalformedError{Bounds: c.Bounds, Reason: fmt.Sprintf("duplicate point %s", p)}
		}
		seen[p] = struct{}{}
	}
	if tight, _ := grid.RectAround(c.Points); tight != c.Bounds {
		return &MalformedError{Bounds: c.Bounds, Reason: fmt.Sprintf("bounds are not tight, expected %s", tight)}
	}
	if reached := flood(c.Points[0], seen, c.Connectivity, nil); len(reached) != len(c.Points) {
		return &MalformedError{
			Bounds: c.Bounds,
			Reason: fmt.Sprintf("disconnected: %d of %d points reachable", len(reached), len(c.Points)),
		}
	}
	return nil
}

// flood collects every position of filled reachable from seed. Positions in
// visited are skipped and marked; visited may be nil.
func flood(seed grid.Position, filled map[grid.Position]struct{}, conn Connectivity, visited map[grid.Position]bool) []grid.Position {
	if visited == nil {
		visited = make(map[grid.Position]bool, len(filled))
	}
	steps := conn.steps()
	stack := []grid.Position{seed}
	visited[seed] = true
	var out []grid.Position
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		out = append(out, p)
		for _, d := range steps {
			n := grid.Position{Row: p.Row + d.Row, Col: p.Col + d.Col}
			if visited[n] {
				continue
			}
			if _, ok := filled[n]; !ok {
				continue
			}
			visited[n] = true
			stack = append(stack, n)
		}
	}
	return out
}
