package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Archer4499/raytracer/ray"
	"github.com/Archer4499/raytracer/terminal"
)

// Palette assigns a foreground color and attributes to each cell state
type Palette struct {
	Border       terminal.RGB
	Light        terminal.RGB
	Opaque       terminal.RGB
	Passage      terminal.RGB
	Intersection terminal.RGB
	Blocks       [ray.MaxBlockLevel + 1]terminal.RGB
}

var (
	rgbBorder       = terminal.RGB{R: 96, G: 100, B: 128}
	rgbLight        = terminal.RGB{R: 255, G: 214, B: 64}
	rgbOpaque       = terminal.RGB{R: 150, G: 150, B: 160}
	rgbPassage      = terminal.RGB{R: 122, G: 200, B: 255}
	rgbIntersection = terminal.RGB{R: 236, G: 240, B: 255}

	// Block shading runs from a dim glow to near white
	rgbBlockDim    = terminal.RGB{R: 52, G: 72, B: 140}
	rgbBlockBright = terminal.RGB{R: 250, G: 246, B: 220}
)

// DefaultPalette returns the standard colors with block shades blended in HCL space
func DefaultPalette() Palette {
	p := Palette{
		Border:       rgbBorder,
		Light:        rgbLight,
		Opaque:       rgbOpaque,
		Passage:      rgbPassage,
		Intersection: rgbIntersection,
	}
	levels := len(p.Blocks)
	for i := range p.Blocks {
		t := float64(i) / float64(levels-1)
		p.Blocks[i] = BlendHcl(rgbBlockDim, rgbBlockBright, t)
	}
	return p
}

// BlendHcl interpolates between a and b in HCL space; t in [0,1]
func BlendHcl(a, b terminal.RGB, t float64) terminal.RGB {
	ca := colorful.Color{R: float64(a.R) / 255, G: float64(a.G) / 255, B: float64(a.B) / 255}
	cb := colorful.Color{R: float64(b.R) / 255, G: float64(b.G) / 255, B: float64(b.B) / 255}
	r, g, bl := ca.BlendHcl(cb, t).Clamped().RGB255()
	return terminal.RGB{R: r, G: g, B: bl}
}

// Style returns the color and attributes used to draw c
func (p *Palette) Style(c ray.Cell) (terminal.RGB, terminal.Attr) {
	switch c.Kind {
	case ray.KindLightSource:
		return p.Light, terminal.AttrBold
	case ray.KindOpaque:
		return p.Opaque, terminal.AttrNone
	case ray.KindPassage:
		return p.Passage, terminal.AttrNone
	case ray.KindIntersection:
		return p.Intersection, terminal.AttrBold
	case ray.KindBlock:
		return p.Blocks[min(c.Level, ray.MaxBlockLevel)], terminal.AttrNone
	}
	return p.Passage, terminal.AttrNone
}
