package classify

import (
	"errors"
	"fmt"

	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/cluster"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/grid"
)

// lookup maps every binary corner key to its construct. Keys missing here
// (0-6, 8, 14) are not constructs.
var lookup = map[Signature]Result{
	7:  {Type: TypeMatrix, Orientation: Vertical},
	9:  {Type: TypeKeyValue, Orientation: Vertical},
	10: {Type: TypeTree, Orientation: Vertical},
	11: {Type: TypeTree, Orientation: Vertical, HasChildHeader: true},
	12: {Type: TypeTree, Orientation: Horizontal},
	13: {Type: TypeTree, Orientation: Horizontal, HasChildHeader: true},
	15: {Type: TypeTable, Orientation: Vertical},
}

// Lookup returns the classification bound to sig. Unknown and reserved keys
// yield a TypeNone result.
func Lookup(sig Signature) Result {
	switch sig {
	case SignatureVerticalList:
		return Result{Type: TypeList, Orientation: Vertical, Signature: sig}
	case SignatureHorizontalList:
		return Result{Type: TypeList, Orientation: Horizontal, Signature: sig}
	}
	r, ok := lookup[sig]
	if !ok {
		return Result{Type: TypeNone, Signature: sig}
	}
	r.Signature = sig
	return r
}

// ComputeSignature derives the signature of c from the fill state reported by
// filled, which receives 0-based offsets from the cluster's top-left corner.
func ComputeSignature(c *cluster.Cluster, filled func(rowOffset, colOffset int) bool) Signature {
	if c.Len() == 1 {
		return SignatureSingleCell
	}
	b := c.Bounds
	if b.Width() == 1 && b.Height() >= 2 && filled(0, 0) && filled(1, 0) {
		return SignatureVerticalList
	}
	if b.Height() == 1 && b.Width() >= 2 && filled(0, 0) && filled(0, 1) {
		return SignatureHorizontalList
	}

	var key Signature
	if filled(0, 0) {
		key |= BitR1C1
	}
	if filled(0, 1) {
		key |= BitR1C2
	}
	if filled(1, 0) {
		key |= BitR2C1
	}
	if filled(1, 1) {
		key |= BitR2C2
	}
	return key
}

// Classify returns the construct type of c. A cell counts as filled when it is
// one of c's points and s holds content for it.
//
// A cluster that is not a construct yields a TypeNone result and no error.
// An error is returned only for malformed clusters (see cluster.ErrMalformed).
func Classify(c *cluster.Cluster, s grid.Surface) (Result, error) {
	if c == nil {
		return Result{Signature: SignatureNone}, &cluster.MalformedError{Reason: "nil cluster"}
	}
	if err := c.Validate(); err != nil {
		return Result{Signature: SignatureNone}, err
	}
	for _, p := range c.Points {
		if s.Content(p.Row, p.Col) == "" {
			return Result{Signature: SignatureNone}, &cluster.MalformedError{
				Bounds: c.Bounds,
				Reason: fmt.Sprintf("point %s is empty on the surface", p),
			}
		}
	}

	sig := ComputeSignature(c, func(dr, dc int) bool {
		p := grid.Position{Row: c.Bounds.Top + dr, Col: c.Bounds.Left + dc}
		return c.Contains(p) && s.Content(p.Row, p.Col) != ""
	})
	return Lookup(sig), nil
}

// IsMalformed reports whether err came from a malformed cluster.
func IsMalformed(err error) bool {
	return errors.Is(err, cluster.ErrMalformed)
}
