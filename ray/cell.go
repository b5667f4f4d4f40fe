package ray

import "fmt"

// CellKind tags the variant held by a Cell
type CellKind uint8

const (
	KindEmpty CellKind = iota
	KindLightSource
	KindPassage
	KindIntersection
	KindBlock
	KindOpaque
)

// MaxBlockLevel is the saturated ("solid") block density
const MaxBlockLevel uint8 = 3

// Axis distinguishes the two intersection glyph families
type Axis uint8

const (
	AxisOrthogonal Axis = iota // ┼
	AxisDiagonal               // ╳
)

// AxisOf returns the intersection family drawn for a crossing ray travelling along d
func AxisOf(d Direction) Axis {
	if d.Orthogonal() {
		return AxisOrthogonal
	}
	return AxisDiagonal
}

// Cell is a tagged grid value. Only the payload field matching Kind is meaningful:
// Dir for passages, Axis for intersections, Level for blocks.
type Cell struct {
	Kind  CellKind
	Dir   Direction
	Axis  Axis
	Level uint8
}

// Constructors keep unused payload fields zeroed so cells compare with ==

func Empty() Cell       { return Cell{Kind: KindEmpty} }
func LightSource() Cell { return Cell{Kind: KindLightSource} }
func Opaque() Cell      { return Cell{Kind: KindOpaque} }

func Passage(d Direction) Cell {
	return Cell{Kind: KindPassage, Dir: d}
}

func Intersection(a Axis) Cell {
	return Cell{Kind: KindIntersection, Axis: a}
}

// Block returns a block cell, clamping level to MaxBlockLevel
func Block(level uint8) Cell {
	if level > MaxBlockLevel {
		level = MaxBlockLevel
	}
	return Cell{Kind: KindBlock, Level: level}
}

// Stops reports whether a ray entering c halts there
func (c Cell) Stops() bool {
	return c.Kind == KindLightSource || c.Kind == KindOpaque
}

// Solid reports whether c is a fully formed block
func (c Cell) Solid() bool {
	return c.Kind == KindBlock && c.Level >= MaxBlockLevel
}

func (c Cell) String() string {
	switch c.Kind {
	case KindEmpty:
		return "Empty"
	case KindLightSource:
		return "LightSource"
	case KindPassage:
		return fmt.Sprintf("Passage(%s)", c.Dir)
	case KindIntersection:
		if c.Axis == AxisDiagonal {
			return "Intersection(diagonal)"
		}
		return "Intersection(orthogonal)"
	case KindBlock:
		return fmt.Sprintf("Block(%d)", c.Level)
	case KindOpaque:
		return "Opaque"
	}
	return fmt.Sprintf("Cell(kind=%d)", c.Kind)
}
