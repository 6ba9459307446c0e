package grid

import "sort"

// Surface is a read-only view of a bounded cell grid.
// An empty string means the cell is not filled.
type Surface interface {
	// Content returns the text of the cell at (row, col).
	Content(row, col int) string
	// Bounds returns the coordinate space covered by the surface.
	Bounds() Rect
}

// Enumerator is implemented by surfaces that can list their filled cells
// without scanning every coordinate.
type Enumerator interface {
	// Filled returns every filled position, in any order.
	Filled() []Position
}

// Sheet is an in-memory sparse Surface. It is the snapshot the detectors
// parse; it must not be mutated while a parse is running.
type Sheet struct {
	bounds Rect
	cells  map[Position]string
}

// NewSheet returns an empty sheet spanning rows x cols.
func NewSheet(rows, cols int) *Sheet {
	return &Sheet{
		bounds: Rect{Top: 1, Bottom: rows, Left: 1, Right: cols},
		cells:  make(map[Position]string),
	}
}

// SheetFromRows builds a sheet from row-major strings, as returned by
// spreadsheet readers (rows[0][0] is R1C1).
func SheetFromRows(rows [][]string) *Sheet {
	cols := 0
	for _, row := range rows {
		cols = max(cols, len(row))
	}
	s := NewSheet(len(rows), cols)
	for r, row := range rows {
		for c, v := range row {
			s.Set(r+1, c+1, v)
		}
	}
	return s
}

// Set stores content at (row, col), growing the bounds when needed.
// Setting an empty string clears the cell.
func (s *Sheet) Set(row, col int, content string) {
	p := Position{Row: row, Col: col}
	if content == "" {
		delete(s.cells, p)
		return
	}
	if s.bounds.Empty() {
		s.bounds = Rect{Top: 1, Bottom: row, Left: 1, Right: col}
	}
	s.bounds = s.bounds.Extend(p)
	s.cells[p] = content
}

// Content implements Surface.
func (s *Sheet) Content(row, col int) string {
	return s.cells[Position{Row: row, Col: col}]
}

// Bounds implements Surface.
func (s *Sheet) Bounds() Rect {
	return s.bounds
}

// Filled implements Enumerator.
func (s *Sheet) Filled() []Position {
	out := make([]Position, 0, len(s.cells))
	for p := range s.cells {
		out = append(out, p)
	}
	return out
}

// Len returns the number of filled cells.
func (s *Sheet) Len() int {
	return len(s.cells)
}

type region struct {
	parent Surface
	rect   Rect
}

// Region returns a view of s restricted to r. Coordinates stay absolute:
// a cell keeps the same (row, col) in the view as in s.
func Region(s Surface, r Rect) Surface {
	return &region{parent: s, rect: s.Bounds().Intersect(r)}
}

func (v *region) Content(row, col int) string {
	if !v.rect.Contains(Position{Row: row, Col: col}) {
		return ""
	}
	return v.parent.Content(row, col)
}

func (v *region) Bounds() Rect {
	return v.rect
}

func (v *region) Filled() []Position {
	var out []Position
	for _, p := range FilledPositions(v.parent) {
		if v.rect.Contains(p) {
			out = append(out, p)
		}
	}
	return out
}

type mask struct {
	parent Surface
	keep   map[Position]struct{}
	bounds Rect
}

// Mask returns a view of s in which only the given positions can be filled.
func Mask(s Surface, pts []Position) Surface {
	m := &mask{parent: s, keep: make(map[Position]struct{}, len(pts))}
	for _, p := range pts {
		m.keep[p] = struct{}{}
	}
	if r, ok := RectAround(pts); ok {
		m.bounds = r
	} else {
		m.bounds = Rect{Top: 1, Bottom: 0, Left: 1, Right: 0}
	}
	return m
}

func (m *mask) Content(row, col int) string {
	if _, ok := m.keep[Position{Row: row, Col: col}]; !ok {
		return ""
	}
	return m.parent.Content(row, col)
}

func (m *mask) Bounds() Rect {
	return m.bounds
}

func (m *mask) Filled() []Position {
	out := make([]Position, 0, len(m.keep))
	for p := range m.keep {
		if m.parent.Content(p.Row, p.Col) != "" {
			out = append(out, p)
		}
	}
	return out
}

// FilledPositions returns the filled positions of s in row-major order.
// Surfaces implementing Enumerator are not scanned cell by cell.
func FilledPositions(s Surface) []Position {
	var out []Position
	if e, ok := s.(Enumerator); ok {
		out = e.Filled()
	} else {
		b := s.Bounds()
		for r := b.Top; r <= b.Bottom; r++ {
			for c := b.Left; c <= b.Right; c++ {
				if s.Content(r, c) != "" {
					out = append(out, Position{Row: r, Col: c})
				}
			}
		}
		return out
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}
