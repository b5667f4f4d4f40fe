package render

import (
	"context"
	"time"

	"github.com/Archer4499/raytracer/ray"
	"github.com/Archer4499/raytracer/terminal"
)

// Renderer is the frame sink drawing grids on a terminal.
// Each frame is composed, flushed, then held for the frame delay.
type Renderer struct {
	term       terminal.Terminal
	buffer     *RenderBuffer
	glyphs     *GlyphSet
	palette    Palette
	frameDelay time.Duration
	frames     int
}

// NewRenderer creates a renderer; a nil glyph set selects Unicode glyphs
func NewRenderer(term terminal.Terminal, glyphs *GlyphSet, frameDelay time.Duration) *Renderer {
	if glyphs == nil {
		glyphs = &UnicodeGlyphs
	}
	return &Renderer{
		term:       term,
		buffer:     NewRenderBuffer(0, 0),
		glyphs:     glyphs,
		palette:    DefaultPalette(),
		frameDelay: frameDelay,
	}
}

// Frame implements ray.FrameSink
func (r *Renderer) Frame(ctx context.Context, g *ray.Grid) error {
	Compose(g, r.buffer, r.glyphs, &r.palette)
	if err := r.buffer.Flush(r.term); err != nil {
		return err
	}
	r.frames++
	return Sleep(ctx, r.frameDelay)
}

// Frames returns how many frames have been drawn
func (r *Renderer) Frames() int {
	return r.frames
}

// Glyphs returns the glyph set in use
func (r *Renderer) Glyphs() *GlyphSet {
	return r.glyphs
}

// Sleep pauses for d or until ctx is done. A non-positive d only checks ctx.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
