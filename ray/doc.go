// Package ray traces light rays across a character grid.
//
// A shot picks one of the 8 compass directions, steps cell by cell from the
// light source and reflects off the grid boundary until it hits an opaque
// cell or runs out of bounces. Every visited cell is re-encoded so crossing
// paths accumulate into intersections or brightness blocks, depending on
// the Mode.
package ray
