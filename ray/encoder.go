package ray

// Encode merges a ray travelling along d into the current cell state.
// ok is false when the ray must stop at the cell (light source or obstacle);
// the returned cell is then current, unchanged.
func Encode(current Cell, d Direction, mode Mode) (next Cell, ok bool) {
	if current.Stops() {
		return current, false
	}

	switch mode {
	case BlocksOnly:
		return thicken(current), true

	case Mixed:
		switch current.Kind {
		case KindEmpty:
			return Passage(d), true
		case KindPassage:
			if current.Dir.Line() == d.Line() {
				return current, true
			}
			return Intersection(AxisOf(d)), true
		default:
			return thicken(current), true
		}

	default:
		switch current.Kind {
		case KindEmpty:
			return Passage(d), true
		case KindPassage:
			if current.Dir.Line() == d.Line() {
				return current, true
			}
			return Intersection(AxisOf(d)), true
		case KindIntersection:
			return Intersection(AxisOf(d)), true
		default:
			// Blocks left over from another mode are drawn over unchanged
			return current, true
		}
	}
}

// thicken advances a cell one rung up the block ladder, saturating at MaxBlockLevel
func thicken(c Cell) Cell {
	if c.Kind != KindBlock {
		return Block(0)
	}
	if c.Level >= MaxBlockLevel {
		return c
	}
	return Block(c.Level + 1)
}
