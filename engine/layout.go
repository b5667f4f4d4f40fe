package engine

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/Archer4499/raytracer/ray"
)

// Layout selects how obstacles are placed before the first round
type Layout uint8

const (
	LayoutScatter Layout = iota // Obstacles random cells
	LayoutMaze                  // broken maze walls
)

func (l Layout) String() string {
	switch l {
	case LayoutScatter:
		return "scatter"
	case LayoutMaze:
		return "maze"
	}
	return fmt.Sprintf("Layout(%d)", uint8(l))
}

// ParseLayout accepts the names printed by String
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scatter", "":
		return LayoutScatter, nil
	case "maze":
		return LayoutMaze, nil
	}
	return LayoutScatter, fmt.Errorf("unknown layout %q (want scatter or maze)", s)
}

// mazeWalls carves a maze over the odd lattice of a rows x cols grid with a
// recursive backtracker and returns its interior walls. Each wall survives
// with probability keep so rays can still cross the grid.
func mazeWalls(rows, cols int, keep float64, rng *rand.Rand) []ray.Point {
	if rows < 3 || cols < 3 {
		return nil
	}

	wall := make([]bool, rows*cols)
	for i := range wall {
		wall[i] = true
	}
	at := func(p ray.Point) int { return p.Row*cols + p.Col }

	start := ray.Point{Row: 1, Col: 1}
	wall[at(start)] = false
	stack := []ray.Point{start}
	steps := [4]ray.Point{{Row: -2}, {Row: 2}, {Col: -2}, {Col: 2}}

	for len(stack) > 0 {
		curr := stack[len(stack)-1]

		var candidates [4]ray.Point
		n := 0
		for _, s := range steps {
			next := ray.Point{Row: curr.Row + s.Row, Col: curr.Col + s.Col}
			// One cell of border stays unvisited
			if next.Row > 0 && next.Row < rows-1 && next.Col > 0 && next.Col < cols-1 && wall[at(next)] {
				candidates[n] = s
				n++
			}
		}
		if n == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		s := candidates[rng.Intn(n)]
		wall[at(ray.Point{Row: curr.Row + s.Row/2, Col: curr.Col + s.Col/2})] = false
		next := ray.Point{Row: curr.Row + s.Row, Col: curr.Col + s.Col}
		wall[at(next)] = false
		stack = append(stack, next)
	}

	// The border row and column are left open; rays bounce there instead
	var walls []ray.Point
	for r := 1; r < rows-1; r++ {
		for c := 1; c < cols-1; c++ {
			if wall[r*cols+c] && rng.Float64() < keep {
				walls = append(walls, ray.Point{Row: r, Col: c})
			}
		}
	}
	return walls
}
