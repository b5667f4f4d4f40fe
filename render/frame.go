package render

import (
	"strings"

	"github.com/Archer4499/raytracer/ray"
	"github.com/Archer4499/raytracer/terminal"
)

// FrameSize returns the bordered frame dimensions for g
func FrameSize(g *ray.Grid) (width, height int) {
	return g.Cols() + 2, g.Rows() + 2
}

// Compose draws g inside a border into buf, resizing buf when needed
func Compose(g *ray.Grid, buf *RenderBuffer, glyphs *GlyphSet, palette *Palette) {
	w, h := FrameSize(g)
	if buf.Width() != w || buf.Height() != h {
		buf.Resize(w, h)
	}

	drawBorder(buf, boxChars[glyphs.Border], palette.Border)

	for r := 0; r < g.Rows(); r++ {
		for c, cell := range g.Row(r) {
			fg, attrs := palette.Style(cell)
			buf.Set(c+1, r+1, glyphs.Glyph(cell), fg, attrs)
		}
	}
}

// drawBorder draws a box around the buffer edge
func drawBorder(buf *RenderBuffer, chars [6]rune, fg terminal.RGB) {
	w, h := buf.Width(), buf.Height()
	if w < 2 || h < 2 {
		return
	}
	attrs := terminal.AttrDim

	buf.Set(0, 0, chars[boxTL], fg, attrs)
	buf.Set(w-1, 0, chars[boxTR], fg, attrs)
	buf.Set(0, h-1, chars[boxBL], fg, attrs)
	buf.Set(w-1, h-1, chars[boxBR], fg, attrs)

	for x := 1; x < w-1; x++ {
		buf.Set(x, 0, chars[boxH], fg, attrs)
		buf.Set(x, h-1, chars[boxH], fg, attrs)
	}
	for y := 1; y < h-1; y++ {
		buf.Set(0, y, chars[boxV], fg, attrs)
		buf.Set(w-1, y, chars[boxV], fg, attrs)
	}
}

// String renders g as plain text lines without a trailing newline
func String(g *ray.Grid, glyphs *GlyphSet) string {
	chars := boxChars[glyphs.Border]
	var sb strings.Builder
	sb.Grow((g.Cols() + 3) * (g.Rows() + 2) * 3)

	horizontal := strings.Repeat(string(chars[boxH]), g.Cols())

	sb.WriteRune(chars[boxTL])
	sb.WriteString(horizontal)
	sb.WriteRune(chars[boxTR])
	sb.WriteByte('\n')
	for r := 0; r < g.Rows(); r++ {
		sb.WriteRune(chars[boxV])
		for _, cell := range g.Row(r) {
			sb.WriteRune(glyphs.Glyph(cell))
		}
		sb.WriteRune(chars[boxV])
		sb.WriteByte('\n')
	}
	sb.WriteRune(chars[boxBL])
	sb.WriteString(horizontal)
	sb.WriteRune(chars[boxBR])

	return sb.String()
}
