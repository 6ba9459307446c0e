// Package classify decides which construct a cluster represents from the fill
// pattern of its top-left corner.
package classify

import "fmt"

// Type is the kind of construct a cluster holds.
type Type int

const (
	// TypeNone means the cluster is not a construct.
	TypeNone Type = iota
	TypeTable
	TypeMatrix
	TypeKeyValue
	TypeList
	TypeTree
)

var typeNames = map[Type]string{
	TypeNone:     "none",
	TypeTable:    "table",
	TypeMatrix:   "matrix",
	TypeKeyValue: "key_value",
	TypeList:     "list",
	TypeTree:     "tree",
}

func (t Type) String() string {
	if s, ok := typeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("type(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	for k, v := range typeNames {
		if v == string(b) {
			*t = k
			return nil
		}
	}
	return fmt.Errorf("unknown construct type %q", b)
}

// Orientation is the primary axis of a construct.
type Orientation int

const (
	// Vertical constructs read top to bottom (the regular layout).
	Vertical Orientation = iota
	// Horizontal constructs are transposed and read left to right.
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// MarshalText implements encoding.TextMarshaler.
func (o Orientation) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Orientation) UnmarshalText(b []byte) error {
	switch string(b) {
	case "vertical":
		*o = Vertical
	case "horizontal":
		*o = Horizontal
	default:
		return fmt.Errorf("unknown orientation %q", b)
	}
	return nil
}

// Signature is the binary corner key (0-15) or one of the sentinel codes.
type Signature int

const (
	// SignatureNone marks a signature that was not computed.
	SignatureNone Signature = -1
	// SignatureSingleCell marks a one-cell cluster.
	SignatureSingleCell Signature = -2
	// SignatureVerticalList marks a one-column cluster.
	SignatureVerticalList Signature = -3
	// SignatureHorizontalList marks a one-row cluster.
	SignatureHorizontalList Signature = -4
)

// Corner bits, most significant first.
const (
	BitR1C1 Signature = 1 << 3
	BitR1C2 Signature = 1 << 2
	BitR2C1 Signature = 1 << 1
	BitR2C2 Signature = 1 << 0
)

// IsBinary reports whether s is a 0-15 corner key.
func (s Signature) IsBinary() bool {
	return s >= 0 && s <= 15
}

func (s Signature) String() string {
	switch s {
	case SignatureNone:
		return "none"
	case SignatureSingleCell:
		return "single_cell"
	case SignatureVerticalList:
		return "list_vertical"
	case SignatureHorizontalList:
		return "list_horizontal"
	}
	if s.IsBinary() {
		return fmt.Sprintf("%04b", int(s))
	}
	return fmt.Sprintf("signature(%d)", int(s))
}

// Result is the outcome of classifying one cluster.
type Result struct {
	// Type is the construct type, TypeNone when the cluster is not a construct.
	Type Type `json:"type" yaml:"type"`
	// Orientation is the construct's primary axis.
	Orientation Orientation `json:"orientation" yaml:"orientation"`
	// Signature is the key the decision was made from.
	Signature Signature `json:"signature" yaml:"signature"`
	// HasChildHeader is set for trees whose first child row carries a header.
	HasChildHeader bool `json:"has_child_header,omitempty" yaml:"has_child_header,omitempty"`
}

// OK reports whether the result names a construct.
func (r Result) OK() bool {
	return r.Type != TypeNone
}
