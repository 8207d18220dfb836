// Package basicfont13 provides a builtin face converted from the fixed
// 7x13 face in golang.org/x/image/font/basicfont. It covers printable
// ASCII and U+FFFD with a uniform advance of 7 pixels.
package basicfont13

import (
	"image"
	"image/draw"

	"golang.org/x/image/font/basicfont"

	"github.com/DragonMinded/dragontext/fixed"
	"github.com/DragonMinded/dragontext/fonts"
	"github.com/DragonMinded/dragontext/text"
	"github.com/DragonMinded/dragontext/texture"
)

const (
	Height = 13
	Ascent = 11
)

// New repacks [basicfont.Face7x13] into a font with a single I8 atlas
// page, 16 glyph cells per row. The ellipsis renders as three dots.
func New() *fonts.Font {
	src := basicfont.Face7x13

	nglyphs := 0
	for _, rr := range src.Ranges {
		nglyphs += int(rr.High - rr.Low)
	}
	const cols = 16
	rows := (nglyphs + cols - 1) / cols
	atlas := texture.NewI8(image.Rect(0, 0, cols*src.Width, rows*src.Height))

	f := &fonts.Font{
		PointSize:  src.Height,
		Ascent:     src.Ascent,
		Descent:    -src.Descent,
		SpaceWidth: src.Advance,
		Ranges:     make([]fonts.Range, 0, len(src.Ranges)),
		Glyphs:     make([]fonts.Glyph, nglyphs),
		Atlases:    []*texture.Texture{atlas},
	}
	for _, rr := range src.Ranges {
		f.Ranges = append(f.Ranges, fonts.Range{
			First:      rr.Low,
			Last:       rr.High - 1,
			FirstGlyph: text.Glyph(rr.Offset),
		})
	}

	ink := fixed.Rect(
		fixed.Int8(src.Left), fixed.Int8(-src.Ascent),
		fixed.Int8(src.Left+src.Width), fixed.Int8(src.Height-src.Ascent))
	for i := range f.Glyphs {
		x, y := i%cols*src.Width, i/cols*src.Height
		f.Glyphs[i] = fonts.Glyph{
			Advance: fixed.Int10_6U(src.Advance),
			Ink:     ink,
			ST:      fixed.Pt(fixed.UInt8(x), fixed.UInt8(y)),
		}
		cell := image.Rect(x, y, x+src.Width, y+src.Height)
		draw.Draw(atlas, cell, src.Mask, image.Pt(0, i*src.Height), draw.Src)
	}

	if err := f.SetEllipsis('.', 3); err != nil {
		panic(err)
	}
	return f
}
