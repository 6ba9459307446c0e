package detect

import (
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/construct"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/grid"
)

// resolveDomains attaches a domain to every parent element of t and, unless
// nested parsing is disabled, parses each domain as its own surface. The
// view only shows t's own cells so neighbouring clusters never leak in.
func (d *Detector) resolveDomains(t *construct.Tree, s grid.Surface, depth int, rep *Report) {
	own := grid.Mask(s, t.Cells())
	for _, i := range t.Parents() {
		bounds, ok := t.DomainBounds(i)
		if !ok {
			continue
		}
		parent := t.Element(i)
		dom := &construct.Domain{Bounds: bounds}
		parent.Domain = dom
		if d.params.SkipNested {
			continue
		}

		next := depth + 1
		if next > d.params.MaxDepth {
			err := &DepthError{Depth: next, Limit: d.params.MaxDepth, At: parent.Position}
			dom.Error = err.Error()
			rep.Errors = append(rep.Errors, err)
			rep.Truncated++
			d.logger.Warn("domain not parsed", "bounds", bounds.String(), "error", err)
			continue
		}

		nested := pickLargest(d.detect(grid.Region(own, bounds), next, rep))
		if nested == nil {
			continue
		}
		dom.HasNested = true
		dom.Nested = nested
		d.logger.Debug("nested construct",
			"parent", parent.Position.String(),
			"domain", bounds.String(),
			"type", nested.Type.String(),
			"depth", next)
	}
}

// pickLargest returns the construct with the most cells; the first wins ties.
func pickLargest(cs []*construct.Construct) *construct.Construct {
	var best *construct.Construct
	for _, c := range cs {
		if best == nil || len(c.Cells) > len(best.Cells) {
			best = c
		}
	}
	return best
}
