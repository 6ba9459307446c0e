// Package grid defines the read-only cell surface the detectors work on.
package grid

import "fmt"

// Position is a cell coordinate (1-based row and column).
type Position struct {
	// Row is the row index (1-based).
	Row int `json:"r" yaml:"r"`
	// Col is the column index (1-based).
	Col int `json:"c" yaml:"c"`
}

// String returns the position as "R<row>C<col>".
func (p Position) String() string {
	return fmt.Sprintf("R%dC%d", p.Row, p.Col)
}

// Less orders positions row-major.
func (p Position) Less(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

// Rect is an inclusive rectangle of cells.
type Rect struct {
	// Top is the first row (1-based).
	Top int `json:"top" yaml:"top"`
	// Bottom is the last row (inclusive).
	Bottom int `json:"bottom" yaml:"bottom"`
	// Left is the first column (1-based).
	Left int `json:"left" yaml:"left"`
	// Right is the last column (inclusive).
	Right int `json:"right" yaml:"right"`
}

// RectAround returns the smallest rectangle holding every position.
// The second result is false when pts is empty.
func RectAround(pts []Position) (Rect, bool) {
	if len(pts) == 0 {
		return Rect{}, false
	}
	r := Rect{Top: pts[0].Row, Bottom: pts[0].Row, Left: pts[0].Col, Right: pts[0].Col}
	for _, p := range pts[1:] {
		r = r.Extend(p)
	}
	return r, true
}

// Extend grows r to include p.
func (r Rect) Extend(p Position) Rect {
	if p.Row < r.Top {
		r.Top = p.Row
	}
	if p.Row > r.Bottom {
		r.Bottom = p.Row
	}
	if p.Col < r.Left {
		r.Left = p.Col
	}
	if p.Col > r.Right {
		r.Right = p.Col
	}
	return r
}

// Empty reports whether r holds no cell.
func (r Rect) Empty() bool {
	return r.Bottom < r.Top || r.Right < r.Left
}

// Width returns the number of columns.
func (r Rect) Width() int {
	if r.Empty() {
		return 0
	}
	return r.Right - r.Left + 1
}

// Height returns the number of rows.
func (r Rect) Height() int {
	if r.Empty() {
		return 0
	}
	return r.Bottom - r.Top + 1
}

// Area returns the number of cells.
func (r Rect) Area() int {
	return r.Width() * r.Height()
}

// Origin returns the top-left position.
func (r Rect) Origin() Position {
	return Position{Row: r.Top, Col: r.Left}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Position) bool {
	return p.Row >= r.Top && p.Row <= r.Bottom && p.Col >= r.Left && p.Col <= r.Right
}

// Intersect returns the common part of r and o, which may be empty.
func (r Rect) Intersect(o Rect) Rect {
	return Rect{
		Top:    max(r.Top, o.Top),
		Bottom: min(r.Bottom, o.Bottom),
		Left:   max(r.Left, o.Left),
		Right:  min(r.Right, o.Right),
	}
}

// Overlaps reports whether r and o share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return !r.Intersect(o).Empty()
}

// String returns the rectangle as "R1C1:R3C4".
func (r Rect) String() string {
	return fmt.Sprintf("R%dC%d:R%dC%d", r.Top, r.Left, r.Bottom, r.Right)
}
