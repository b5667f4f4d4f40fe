package terminal

import (
	"bufio"
	"io"
)

// outputBuffer tracks the frame on screen and writes only the cells that differ
type outputBuffer struct {
	front     []Cell
	width     int
	height    int
	colorMode ColorMode
	writer    *bufio.Writer

	cursorX     int
	cursorY     int
	cursorValid bool

	// Style state for coalescing
	lastFg    RGB
	lastAttr  Attr
	lastValid bool
}

func newOutputBuffer(w io.Writer, colorMode ColorMode) *outputBuffer {
	return &outputBuffer{
		writer:    bufio.NewWriterSize(w, 64*1024),
		colorMode: colorMode,
	}
}

// resize reallocates the front buffer, forcing a full redraw
func (o *outputBuffer) resize(width, height int) {
	size := width * height
	if cap(o.front) < size {
		o.front = make([]Cell, size)
	} else {
		o.front = o.front[:size]
	}
	o.width = width
	o.height = height

	for i := range o.front {
		o.front[i] = Cell{Rune: 0}
	}
	o.lastValid = false
	o.cursorValid = false
}

// flush writes cells to the terminal, diffing against the front buffer
func (o *outputBuffer) flush(cells []Cell, width, height int) error {
	if width != o.width || height != o.height {
		o.resize(width, height)
	}
	if len(cells) < width*height {
		return nil
	}

	w := o.writer
	for y := 0; y < height; y++ {
		rowStart := y * width
		x := 0

		for x < width {
			idx := rowStart + x
			if cells[idx] == o.front[idx] {
				x++
				continue
			}

			// Position cursor once for this dirty run
			if !o.cursorValid || x != o.cursorX || y != o.cursorY {
				if o.cursorValid && y == o.cursorY && x > o.cursorX {
					writeCursorForward(w, x-o.cursorX)
				} else {
					writeCursorPos(w, x, y)
				}
				o.cursorX = x
				o.cursorY = y
				o.cursorValid = true
			}

			for x < width {
				cidx := rowStart + x
				c := cells[cidx]
				if c == o.front[cidx] {
					break
				}

				o.writeStyle(w, c.Fg, c.Attrs)

				r := c.Rune
				if r == 0 {
					r = ' '
				}
				if r < 0x80 {
					w.WriteByte(byte(r))
				} else {
					w.WriteRune(r)
				}

				o.front[cidx] = c
				o.cursorX++
				x++
			}
		}
	}

	if o.lastValid {
		w.Write(csiSGR0)
		o.lastValid = false
	}
	return w.Flush()
}

// writeStyle emits SGR sequences only when the style differs from the last cell written
func (o *outputBuffer) writeStyle(w *bufio.Writer, fg RGB, attr Attr) {
	if o.colorMode == ColorModeNone {
		return
	}
	if o.lastValid && fg == o.lastFg && attr == o.lastAttr {
		return
	}

	if !o.lastValid || attr != o.lastAttr {
		w.Write(csiSGR0)
		if attr&AttrBold != 0 {
			w.Write(csiAttrBold)
		}
		if attr&AttrDim != 0 {
			w.Write(csiAttrDim)
		}
	}

	if o.colorMode == ColorModeTrueColor {
		w.Write(csiFgRGB)
		writeInt(w, int(fg.R))
		w.WriteByte(';')
		writeInt(w, int(fg.G))
		w.WriteByte(';')
		writeInt(w, int(fg.B))
		w.WriteByte('m')
	} else {
		w.Write(csiFg256)
		writeInt(w, int(RGBTo256(fg)))
		w.WriteByte('m')
	}

	o.lastFg = fg
	o.lastAttr = attr
	o.lastValid = true
}
