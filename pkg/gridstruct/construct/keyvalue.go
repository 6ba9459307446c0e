package construct

import (
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/classify"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/cluster"
	"github.com/ukaji3/gridstruct-go/pkg/gridstruct/grid"
)

// Pair is one key with every value aligned to it.
type Pair struct {
	Key    Cell   `json:"key" yaml:"key"`
	Values []Cell `json:"values" yaml:"values"`
}

// KeyValue is a headed block of keys and their values.
type KeyValue struct {
	Header *Cell  `json:"header,omitempty" yaml:"header,omitempty"`
	Pairs  []Pair `json:"pairs" yaml:"pairs"`
}

// Lookup returns the values stored under key.
func (kv *KeyValue) Lookup(key string) ([]Cell, bool) {
	for _, p := range kv.Pairs {
		if p.Key.Content == key {
			return p.Values, true
		}
	}
	return nil, false
}

// BuildKeyValue builds a KeyValue block. Vertical blocks keep the header at
// R1C1, keys in the second column from the second row down, and values to
// the right of their key. Horizontal blocks are the transpose.
func BuildKeyValue(c *cluster.Cluster, s grid.Surface, r classify.Result, opts Options) *Construct {
	out := newConstruct(c, r, opts)
	b := c.Bounds
	kv := &KeyValue{}

	// line is the key's row (vertical) or column (horizontal); depth is the
	// position along it.
	axes := func(p grid.Position) (line, depth int) {
		if r.Orientation == classify.Horizontal {
			return p.Col - b.Left, p.Row - b.Top
		}
		return p.Row - b.Top, p.Col - b.Left
	}

	pairAt := make(map[int]int)
	for _, p := range c.Points {
		line, depth := axes(p)
		if line >= 1 && depth == 1 {
			pairAt[line] = len(kv.Pairs)
			kv.Pairs = append(kv.Pairs, Pair{Key: cellAt(s, p, RoleKey)})
		}
	}

	for _, p := range c.Points {
		line, depth := axes(p)
		switch {
		case line == 0 && depth == 0:
			cell := cellAt(s, p, RoleBlockHeader)
			kv.Header = &cell
			out.Cells = append(out.Cells, cell)
		case line >= 1 && depth == 1:
			out.Cells = append(out.Cells, cellAt(s, p, RoleKey))
		case depth > 1:
			i, ok := pairAt[line]
			if !ok {
				out.Cells = append(out.Cells, cellAt(s, p, RoleUnassigned))
				continue
			}
			cell := cellAt(s, p, RoleValue)
			kv.Pairs[i].Values = append(kv.Pairs[i].Values, cell)
			out.Cells = append(out.Cells, cell)
		default:
			out.Cells = append(out.Cells, cellAt(s, p, RoleUnassigned))
		}
	}

	withValues := 0
	for _, p := range kv.Pairs {
		if len(p.Values) > 0 {
			withValues++
		}
	}
	out.KeyValue = kv
	out.Confidence = ratio(withValues, len(kv.Pairs))
	return out
}
