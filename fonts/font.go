// Package fonts provides bitmap fonts for the text layout engine.
//
// A [Font] holds pre-rendered glyphs in one or more texture atlases
// together with the tables the engine queries during layout: codepoint
// ranges, advances, ink boxes and kerning pairs. Fonts are generated
// offline by the font tool and loaded from font64 files, or converted at
// runtime from other formats, see [SubfontFace] and package basicfont13.
package fonts

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/DragonMinded/dragontext/fixed"
	"github.com/DragonMinded/dragontext/text"
	"github.com/DragonMinded/dragontext/texture"
)

var (
	ErrNoGlyph = errors.New("fonts: no glyph for codepoint")
)

// Range maps the codepoints First..Last, both inclusive, to the
// consecutive glyph indices starting at FirstGlyph.
type Range struct {
	First, Last rune
	FirstGlyph  text.Glyph
}

// Glyph is one glyph's layout data and its location in the atlas pages.
// The ink box is relative to the pen position on the baseline, so Min.Y
// is usually negative.
type Glyph struct {
	Advance fixed.Int10_6    // pen advance
	Ink     fixed.Rectangle8 // drawn extent relative to the pen
	ST      fixed.PointU8    // top left corner in the atlas page
	Atlas   uint8            // atlas page index
	KernLo  uint16           // kern table window, zero means no pairs
	KernHi  uint16
}

// Kern is one kerning pair: the pen adjustment between the owning glyph
// and Glyph2, scaled so that 127 equals the font's point size.
type Kern struct {
	Glyph2 text.Glyph
	Adjust int8
}

// Style is a color variant of a font, selected with the ^xx escape.
type Style struct {
	Color color.RGBA
}

// Font is a bitmap font backed by pre-rendered glyph atlases. It
// implements [text.Face] and [text.EllipsisFace].
//
// The table fields are exported for the generator tools; they must not
// be modified after the font was registered.
type Font struct {
	// PointSize is the size the font was rasterized at. It scales
	// kerning adjustments.
	PointSize int

	// Ascent, Descent and LineGap are the vertical metrics in pixels,
	// Descent negative below the baseline.
	Ascent, Descent, LineGap int

	// SpaceWidth is the advance of U+0020, measured at generation
	// time.
	SpaceWidth int

	// Ranges maps codepoints to glyph indices. It must be sorted by
	// First and must not overlap.
	Ranges []Range

	// Glyphs is indexed by glyph index.
	Glyphs []Glyph

	// Kerns holds all kerning pairs, grouped per first glyph and
	// sorted by Glyph2 within each group. The table is 1-based, entry
	// 0 is an unused dummy so that a zero KernLo can mean "no pairs".
	Kerns []Kern

	// Styles holds the registered color variants, see SetStyle.
	Styles map[text.StyleID]Style

	// Atlases are the texture pages referenced by the glyphs.
	Atlases []*texture.Texture

	ellipsis text.EllipsisMetrics
}

func (f *Font) Metrics() text.Metrics {
	return text.Metrics{
		Ascent:  float32(f.Ascent),
		Descent: float32(f.Descent),
		LineGap: float32(f.LineGap),
	}
}

// GlyphIndex implements [text.Face] by binary search over the codepoint
// ranges.
func (f *Font) GlyphIndex(r rune) text.Glyph {
	lo, hi := 0, len(f.Ranges)
	for lo < hi {
		mid := (lo + hi) / 2
		switch rg := &f.Ranges[mid]; {
		case r < rg.First:
			hi = mid
		case r > rg.Last:
			lo = mid + 1
		default:
			return rg.FirstGlyph + text.Glyph(r-rg.First)
		}
	}
	return -1
}

func (f *Font) GlyphMetrics(g text.Glyph) text.GlyphMetrics {
	gl := &f.Glyphs[g]
	return text.GlyphMetrics{
		Advance: float32(gl.Advance) / 64,
		Ink:     gl.Ink,
		Kerns:   gl.KernLo != 0,
		Atlas:   gl.Atlas,
	}
}

// Kerning implements [text.Face] by binary search in g1's window of the
// kern table.
func (f *Font) Kerning(g1, g2 text.Glyph) float32 {
	gl := &f.Glyphs[g1]
	if gl.KernLo == 0 {
		return 0
	}
	lo, hi := int(gl.KernLo), int(gl.KernHi)
	for lo <= hi {
		mid := (lo + hi) / 2
		switch k := &f.Kerns[mid]; {
		case k.Glyph2 < g2:
			lo = mid + 1
		case k.Glyph2 > g2:
			hi = mid - 1
		default:
			return float32(k.Adjust) * float32(f.PointSize) / 127
		}
	}
	return 0
}

func (f *Font) Ellipsis() text.EllipsisMetrics { return f.ellipsis }

// SetEllipsis selects the glyph repeated by WrapEllipses layouts,
// typically '.' three times. The glyph's advance, including its kerning
// against itself, becomes the ellipsis advance.
func (f *Font) SetEllipsis(r rune, reps int) error {
	g := f.GlyphIndex(r)
	if g < 0 {
		return fmt.Errorf("%w: ellipsis %q", ErrNoGlyph, r)
	}
	adv := float32(f.Glyphs[g].Advance)/64 + f.Kerning(g, g)
	f.ellipsis = text.EllipsisMetrics{
		Glyph:   g,
		Reps:    reps,
		Advance: adv,
		Width:   adv*float32(reps-1) + float32(f.Glyphs[g].Ink.Max.X),
	}
	return nil
}

// SetStyle registers a color variant under id. Records that never
// selected a style render with style 0, which defaults to solid white if
// it was never set.
func (f *Font) SetStyle(id text.StyleID, s Style) {
	if f.Styles == nil {
		f.Styles = make(map[text.StyleID]Style)
	}
	f.Styles[id] = s
}

func (f *Font) style(id text.StyleID) color.RGBA {
	if s, ok := f.Styles[id]; ok {
		return s.Color
	}
	return color.RGBA{0xff, 0xff, 0xff, 0xff}
}
