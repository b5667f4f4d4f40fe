package ray

import "fmt"

// Direction is one of the 8 compass directions, ordered clockwise from east
type Direction uint8

const (
	East Direction = iota
	SouthEast
	South
	SouthWest
	West
	NorthWest
	North
	NorthEast
)

// DirectionCount is the number of supported directions
const DirectionCount = 8

// noReflection marks bounce table entries with no defined mirror
const noReflection Direction = 0xFF

// steps holds (dRow, dCol) per direction; rows grow downward
var steps = [DirectionCount][2]int{
	East:      {0, 1},
	SouthEast: {1, 1},
	South:     {1, 0},
	SouthWest: {1, -1},
	West:      {0, -1},
	NorthWest: {-1, -1},
	North:     {-1, 0},
	NorthEast: {-1, 1},
}

// bounceVertical reflects off a top or bottom edge, flipping the row component
var bounceVertical = [DirectionCount]Direction{
	East:      noReflection,
	SouthEast: NorthEast,
	South:     North,
	SouthWest: NorthWest,
	West:      noReflection,
	NorthWest: SouthWest,
	North:     South,
	NorthEast: SouthEast,
}

// bounceHorizontal reflects off a left or right edge, flipping the column component
var bounceHorizontal = [DirectionCount]Direction{
	East:      West,
	SouthEast: SouthWest,
	South:     noReflection,
	SouthWest: SouthEast,
	West:      East,
	NorthWest: NorthEast,
	North:     noReflection,
	NorthEast: NorthWest,
}

var directionNames = [DirectionCount]string{"E", "SE", "S", "SW", "W", "NW", "N", "NE"}

// Valid reports whether d is one of the 8 compass directions
func (d Direction) Valid() bool {
	return d < DirectionCount
}

// Step returns the unit (dRow, dCol) vector for d
func (d Direction) Step() (int, int) {
	s := steps[d&7]
	return s[0], s[1]
}

// Reverse returns the direction pointing exactly opposite
func (d Direction) Reverse() Direction {
	return (d + 4) & 7
}

// Line returns the glyph line shared by d and its reverse (0..3)
func (d Direction) Line() uint8 {
	return uint8(d & 3)
}

// Orthogonal reports whether d is one of north, south, east, west
func (d Direction) Orthogonal() bool {
	return d&1 == 0
}

// BounceVertical returns d reflected off a top/bottom boundary.
// Pure east/west rays cannot cross such a boundary and return ErrNoReflection.
func (d Direction) BounceVertical() (Direction, error) {
	if !d.Valid() || bounceVertical[d] == noReflection {
		return d, fmt.Errorf("vertical bounce of %s: %w", d, ErrNoReflection)
	}
	return bounceVertical[d], nil
}

// BounceHorizontal returns d reflected off a left/right boundary.
// Pure north/south rays cannot cross such a boundary and return ErrNoReflection.
func (d Direction) BounceHorizontal() (Direction, error) {
	if !d.Valid() || bounceHorizontal[d] == noReflection {
		return d, fmt.Errorf("horizontal bounce of %s: %w", d, ErrNoReflection)
	}
	return bounceHorizontal[d], nil
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}
