package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/Archer4499/raytracer/ray"
)

// LineType specifies the frame border style
type LineType uint8

const (
	LineRounded LineType = iota // ╭─╮│╰╯
	LineASCII                   // +-+|++
)

// boxChars contains border character sets indexed by LineType
var boxChars = [...][6]rune{
	LineRounded: {'╭', '─', '╮', '│', '╰', '╯'},
	LineASCII:   {'+', '-', '+', '|', '+', '+'},
}

const (
	boxTL = 0 // top-left
	boxH  = 1 // horizontal
	boxTR = 2 // top-right
	boxV  = 3 // vertical
	boxBL = 4 // bottom-left
	boxBR = 5 // bottom-right
)

// GlyphSet maps every cell state to one display rune
type GlyphSet struct {
	Name         string
	Empty        rune
	Light        rune
	Opaque       rune
	Lines        [4]rune                    // indexed by Direction.Line(): E/W, SE/NW, N/S, SW/NE
	Intersection [2]rune                    // indexed by ray.Axis
	Blocks       [ray.MaxBlockLevel + 1]rune // increasing density
	Border       LineType
}

// UnicodeGlyphs draws with box-drawing and shade characters
var UnicodeGlyphs = GlyphSet{
	Name:         "unicode",
	Empty:        ' ',
	Light:        '@',
	Opaque:       '█',
	Lines:        [4]rune{'─', '╲', '│', '╱'},
	Intersection: [2]rune{'┼', '╳'},
	Blocks:       [ray.MaxBlockLevel + 1]rune{'░', '▒', '▓', '█'},
	Border:       LineRounded,
}

// ASCIIGlyphs is the fallback for terminals where box glyphs are double width
var ASCIIGlyphs = GlyphSet{
	Name:         "ascii",
	Empty:        ' ',
	Light:        '@',
	Opaque:       '#',
	Lines:        [4]rune{'-', '\\', '|', '/'},
	Intersection: [2]rune{'+', 'x'},
	Blocks:       [ray.MaxBlockLevel + 1]rune{'.', ':', '*', '%'},
	Border:       LineASCII,
}

// Glyph returns the rune drawn for c
func (s *GlyphSet) Glyph(c ray.Cell) rune {
	switch c.Kind {
	case ray.KindLightSource:
		return s.Light
	case ray.KindOpaque:
		return s.Opaque
	case ray.KindPassage:
		return s.Lines[c.Dir.Line()]
	case ray.KindIntersection:
		return s.Intersection[c.Axis&1]
	case ray.KindBlock:
		return s.Blocks[min(c.Level, ray.MaxBlockLevel)]
	}
	return s.Empty
}

// runes lists every rune the set can emit, border included
func (s *GlyphSet) runes() []rune {
	out := []rune{s.Empty, s.Light, s.Opaque}
	out = append(out, s.Lines[:]...)
	out = append(out, s.Intersection[:]...)
	out = append(out, s.Blocks[:]...)
	out = append(out, boxChars[s.Border][:]...)
	return out
}

// SingleWidth reports whether every glyph occupies exactly one column under cond
func (s *GlyphSet) SingleWidth(cond *runewidth.Condition) bool {
	for _, r := range s.runes() {
		if cond.RuneWidth(r) != 1 {
			return false
		}
	}
	return true
}

// SelectGlyphs picks the glyph set for this terminal. Unicode box glyphs are
// East Asian ambiguous width and break the grid in CJK locales, so ASCII is
// used there as well as when forced.
func SelectGlyphs(forceASCII bool, cond *runewidth.Condition) *GlyphSet {
	if cond == nil {
		cond = runewidth.DefaultCondition
	}
	if forceASCII || !UnicodeGlyphs.SingleWidth(cond) {
		return &ASCIIGlyphs
	}
	return &UnicodeGlyphs
}
