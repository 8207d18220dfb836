package texture

import (
	"image/color"
)

type colorRGBA16 uint16

func (c colorRGBA16) RGBA() (r, g, b, a uint32) {
	return uint32(c & 0xf800), uint32(c<<5) & 0xf800,
		uint32(c<<10) & 0xf800, uint32(c&1) * 0xffff
}

var RGBA16Model color.Model = color.ModelFunc(rgba16Model)

func rgba16Model(c color.Color) color.Color {
	if _, ok := c.(colorRGBA16); ok {
		return c
	}
	r, g, b, a := c.RGBA()
	return colorRGBA16((r & 0xf800) | (g&0xf800)>>5 | (b&0xf800)>>10 | a>>15)
}

// Palette is a color lookup table with up to 256 RGBA16 entries. It
// implements color.Model by nearest color.
type Palette struct {
	pix []byte
}

func NewColorPalette(size int) *Palette {
	return &Palette{pix: make([]byte, size*2)}
}

// FromPalette converts pal's colors to RGBA16 entries.
func FromPalette(pal color.Palette) *Palette {
	p := NewColorPalette(len(pal))
	for i, c := range pal {
		p.SetColor(i, c)
	}
	return p
}

func (p *Palette) Len() int { return len(p.pix) >> 1 }

func (p *Palette) Color(i int) color.Color {
	return colorRGBA16(uint16(p.pix[i<<1])<<8 | uint16(p.pix[i<<1+1]))
}

func (p *Palette) SetColor(i int, c color.Color) {
	col, _ := rgba16Model(c).(colorRGBA16)
	p.pix[i<<1] = uint8(col >> 8)
	p.pix[i<<1+1] = uint8(col & 0xff)
}

func (p *Palette) Convert(c color.Color) color.Color {
	return p.Color(p.Index(c))
}

// Index returns the palette index of the entry closest to c, measured as
// squared distance in RGBA space.
func (p *Palette) Index(c color.Color) int {
	cr, cg, cb, ca := c.RGBA()
	best, bestSum := 0, ^uint32(0)
	for i := 0; i < p.Len(); i++ {
		vr, vg, vb, va := p.Color(i).RGBA()
		sum := sqDiff(cr, vr) + sqDiff(cg, vg) + sqDiff(cb, vb) + sqDiff(ca, va)
		if sum < bestSum {
			if sum == 0 {
				return i
			}
			best, bestSum = i, sum
		}
	}
	return best
}

func sqDiff(x, y uint32) uint32 {
	d := x - y
	return (d * d) >> 2
}
