package ray

import "fmt"

// Point is a (row, col) grid position
type Point struct {
	Row, Col int
}

// Add returns p moved one step along d
func (p Point) Add(d Direction) Point {
	dr, dc := d.Step()
	return Point{Row: p.Row + dr, Col: p.Col + dc}
}

// Grid stores cells in row-major order along with the active light source.
// Dimensions never change after construction.
type Grid struct {
	rows, cols int
	cells      []Cell
	light      Point
}

// NewGrid returns an all-empty grid with the light source at its centre
func NewGrid(rows, cols int) (*Grid, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", rows, cols, ErrInvalidSize)
	}
	g := &Grid{
		rows:  rows,
		cols:  cols,
		cells: make([]Cell, rows*cols),
		light: Point{Row: rows / 2, Col: cols / 2},
	}
	g.cells[g.index(g.light)] = LightSource()
	return g, nil
}

func (g *Grid) Rows() int    { return g.rows }
func (g *Grid) Cols() int    { return g.cols }
func (g *Grid) Light() Point { return g.light }

// InBounds reports whether p lies within [0,rows) x [0,cols)
func (g *Grid) InBounds(p Point) bool {
	return p.Row >= 0 && p.Row < g.rows && p.Col >= 0 && p.Col < g.cols
}

func (g *Grid) index(p Point) int {
	return p.Row*g.cols + p.Col
}

// Get returns the cell at p. p must be in bounds.
func (g *Grid) Get(p Point) Cell {
	return g.cells[g.index(p)]
}

// Set overwrites the cell at p. p must be in bounds.
func (g *Grid) Set(p Point, c Cell) {
	g.cells[g.index(p)] = c
}

// RelocateLight moves the light source, clearing its previous cell
func (g *Grid) RelocateLight(p Point) error {
	if !g.InBounds(p) {
		return fmt.Errorf("light at (%d,%d) in %dx%d grid: %w", p.Row, p.Col, g.rows, g.cols, ErrOutOfBounds)
	}
	g.cells[g.index(g.light)] = Empty()
	g.light = p
	g.cells[g.index(p)] = LightSource()
	return nil
}

// PlaceOpaque marks p as an obstacle. The light source cell cannot be covered.
func (g *Grid) PlaceOpaque(p Point) error {
	if !g.InBounds(p) {
		return fmt.Errorf("obstacle at (%d,%d) in %dx%d grid: %w", p.Row, p.Col, g.rows, g.cols, ErrOutOfBounds)
	}
	if p == g.light {
		return nil
	}
	g.cells[g.index(p)] = Opaque()
	return nil
}

// Reset clears every trail. The light source and obstacles stay in place.
func (g *Grid) Reset() {
	for i, c := range g.cells {
		if c.Kind != KindOpaque && c.Kind != KindLightSource {
			g.cells[i] = Empty()
		}
	}
}

// Count returns how many cells hold the given kind
func (g *Grid) Count(kind CellKind) int {
	n := 0
	for _, c := range g.cells {
		if c.Kind == kind {
			n++
		}
	}
	return n
}

// Row returns the backing slice of one grid row; callers must not modify it
func (g *Grid) Row(r int) []Cell {
	start := r * g.cols
	return g.cells[start : start+g.cols : start+g.cols]
}
