package fonts

import (
	"image"
	"image/draw"

	"github.com/DragonMinded/dragontext/text"
)

// RenderRun implements [text.Face] by software compositing: each glyph's
// atlas rect serves as alpha mask over the uniform style color. It
// consumes the leading run of records sharing the first record's font.
//
// The records arrive sorted by style and atlas, so both the source color
// and the mask page change at most a handful of times per run.
func (f *Font) RenderRun(dst draw.Image, chars []text.Char, x0, y0 float32) int {
	id := chars[0].FontID()
	n := 1
	for n < len(chars) && chars[n].FontID() == id {
		n++
	}

	style := chars[0].StyleID()
	src := image.NewUniform(f.style(style))
	for i := range chars[:n] {
		ch := &chars[i]
		if ch.StyleID() != style {
			style = ch.StyleID()
			src = image.NewUniform(f.style(style))
		}
		g := &f.Glyphs[ch.Glyph]
		if g.Ink.Empty() {
			continue
		}
		x := int(x0 + float32(ch.X)*0.25 + float32(g.Ink.Min.X))
		y := int(y0 + float32(ch.Y)*0.25 + float32(g.Ink.Min.Y))
		r := image.Rect(x, y, x+int(g.Ink.Dx()), y+int(g.Ink.Dy()))
		mp := image.Pt(int(g.ST.X), int(g.ST.Y))
		draw.DrawMask(dst, r, src, image.Point{}, f.Atlases[g.Atlas], mp, draw.Over)
	}
	return n
}
