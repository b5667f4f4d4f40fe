package ray

import "errors"

var (
	// ErrInvalidSize is returned for grids with a non-positive dimension
	ErrInvalidSize = errors.New("grid dimensions must be positive")

	// ErrOutOfBounds is returned when a position lies outside the grid
	ErrOutOfBounds = errors.New("position outside grid")

	// ErrNoReflection signals a bounce requested along an axis the ray never crosses
	ErrNoReflection = errors.New("no reflection defined for direction")
)
