package construct

import (
	"sort"

	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/classify"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/cluster"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/grid"
)

// List is a header followed by its items along one line.
type List struct {
	Header Cell   `json:"header" yaml:"header"`
	Items  []Cell `json:"items" yaml:"items"`
}

// BuildList builds a List from a one-row or one-column cluster.
func BuildList(c *cluster.Cluster, s grid.Surface, r classify.Result, opts Options) *Construct {
	out := newConstruct(c, r, opts)
	pts := orderAlong(c.Points, r.Orientation)

	l := &List{}
	for i, p := range pts {
		if i == 0 {
			l.Header = cellAt(s, p, RoleListHeader)
			out.Cells = append(out.Cells, l.Header)
			continue
		}
		cell := cellAt(s, p, RoleItem)
		l.Items = append(l.Items, cell)
		out.Cells = append(out.Cells, cell)
	}

	out.List = l
	out.Confidence = 1
	return out
}

// orderAlong returns pts in row-major order for vertical constructs and
// column-major order for horizontal ones.
func orderAlong(pts []grid.Position, o classify.Orientation) []grid.Position {
	out := append([]grid.Position(nil), pts...)
	if o == classify.Horizontal {
		sort.Slice(out, func(i, j int) bool {
			if out[i].Col != out[j].Col {
				return out[i].Col < out[j].Col
			}
			return out[i].Row < out[j].Row
		})
		return out
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
