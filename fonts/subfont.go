package fonts

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/embeddedgo/display/font/subfont"

	"github.com/DragonMinded/dragontext/debug"
	"github.com/DragonMinded/dragontext/fixed"
	"github.com/DragonMinded/dragontext/text"
)

// SubfontFace adapts an embeddedgo/display subfont face to [text.Face],
// so fonts shipped for that module can be laid out without conversion.
// Glyph indices are the codepoints themselves, which limits such faces
// to codepoints below 0x8000. Subfont faces carry no kerning and no
// styles, all glyphs render in a single color.
//
// Faces with a [subfont.Loader] load subfonts lazily and are then not
// safe for concurrent layout.
type SubfontFace struct {
	Face *subfont.Face

	// Color renders all glyphs, regardless of the record's style.
	Color color.RGBA
}

func NewSubfontFace(f *subfont.Face) *SubfontFace {
	return &SubfontFace{Face: f, Color: color.RGBA{0xff, 0xff, 0xff, 0xff}}
}

func (f *SubfontFace) Metrics() text.Metrics {
	return text.Metrics{
		Ascent:  float32(f.Face.Ascent),
		Descent: float32(f.Face.Ascent - f.Face.Height),
	}
}

func (f *SubfontFace) subfont(r rune) *subfont.Subfont {
	for _, sf := range f.Face.Subfonts {
		if sf != nil && sf.First <= r && r <= sf.Last {
			return sf
		}
	}
	if f.Face.Loader == nil {
		return nil
	}
	var sf *subfont.Subfont
	sf, f.Face.Subfonts = f.Face.Loader.Load(r, f.Face.Subfonts)
	return sf
}

func (f *SubfontFace) GlyphIndex(r rune) text.Glyph {
	if r > 0x7fff || f.subfont(r) == nil {
		return -1
	}
	return text.Glyph(r)
}

func (f *SubfontFace) GlyphMetrics(g text.Glyph) text.GlyphMetrics {
	sf := f.subfont(rune(g))
	debug.Assert(sf != nil, "glyph without subfont")
	img, origin, advance := sf.Data.Glyph(sf.Offset + int(rune(g)-sf.First))
	b := img.Bounds()
	return text.GlyphMetrics{
		Advance: float32(advance),
		Ink: fixed.Rect(
			fixed.Int8(b.Min.X-origin.X), fixed.Int8(b.Min.Y-origin.Y),
			fixed.Int8(b.Max.X-origin.X), fixed.Int8(b.Max.Y-origin.Y)),
		Atlas: uint8(g >> 8),
	}
}

func (f *SubfontFace) Kerning(g1, g2 text.Glyph) float32 { return 0 }

// RenderRun implements [text.Face] analogous to [Font.RenderRun], with
// each glyph's subfont image as the mask.
func (f *SubfontFace) RenderRun(dst draw.Image, chars []text.Char, x0, y0 float32) int {
	id := chars[0].FontID()
	n := 1
	for n < len(chars) && chars[n].FontID() == id {
		n++
	}

	src := image.NewUniform(f.Color)
	for i := range chars[:n] {
		ch := &chars[i]
		sf := f.subfont(rune(ch.Glyph))
		debug.Assert(sf != nil, "glyph without subfont")
		img, origin, _ := sf.Data.Glyph(sf.Offset + int(rune(ch.Glyph)-sf.First))
		b := img.Bounds()
		x := int(x0 + float32(ch.X)*0.25 + float32(b.Min.X-origin.X))
		y := int(y0 + float32(ch.Y)*0.25 + float32(b.Min.Y-origin.Y))
		r := image.Rect(x, y, x+b.Dx(), y+b.Dy())
		draw.DrawMask(dst, r, src, image.Point{}, img, b.Min, draw.Over)
	}
	return n
}
