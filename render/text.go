package render

import (
	"context"
	"fmt"
	"io"

	"github.com/Archer4499/raytracer/ray"
)

// TextSink is the frame sink for output that is not a terminal.
// Frames are counted but not drawn; Final writes the finished grid once.
type TextSink struct {
	w      io.Writer
	glyphs *GlyphSet
	frames int
}

// NewTextSink writes plain frames to w; a nil glyph set selects ASCII glyphs
func NewTextSink(w io.Writer, glyphs *GlyphSet) *TextSink {
	if glyphs == nil {
		glyphs = &ASCIIGlyphs
	}
	return &TextSink{w: w, glyphs: glyphs}
}

// Frame implements ray.FrameSink
func (s *TextSink) Frame(ctx context.Context, _ *ray.Grid) error {
	s.frames++
	return ctx.Err()
}

// Frames returns how many frames were produced
func (s *TextSink) Frames() int { return s.frames }

// Final writes g followed by a newline
func (s *TextSink) Final(g *ray.Grid) error {
	_, err := fmt.Fprintln(s.w, String(g, s.glyphs))
	return err
}
