package render

import (
	"github.com/Archer4499/raytracer/terminal"
)

// Cell is an alias to terminal.Cell to avoid copying
type Cell = terminal.Cell

// RenderBuffer is a row-major frame of terminal cells
// Uses []terminal.Cell directly to allow zero-copy flushing
type RenderBuffer struct {
	cells  []terminal.Cell
	width  int
	height int
}

// NewRenderBuffer creates a buffer with the specified dimensions
func NewRenderBuffer(width, height int) *RenderBuffer {
	b := &RenderBuffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocating only if capacity is insufficient
func (b *RenderBuffer) Resize(width, height int) {
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]terminal.Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to blanks using exponential copy
func (b *RenderBuffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = terminal.Cell{Rune: ' '}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// Set writes one cell; out of range coordinates are ignored
func (b *RenderBuffer) Set(x, y int, r rune, fg terminal.RGB, attrs terminal.Attr) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	b.cells[y*b.width+x] = terminal.Cell{Rune: r, Fg: fg, Attrs: attrs}
}

func (b *RenderBuffer) Width() int  { return b.width }
func (b *RenderBuffer) Height() int { return b.height }

// Flush writes the buffer to a terminal
func (b *RenderBuffer) Flush(t terminal.Terminal) error {
	return t.Flush(b.cells, b.width, b.height)
}
