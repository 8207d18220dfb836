package text

import (
	"image/draw"
	"sort"

	"github.com/DragonMinded/dragontext/debug"
	"github.com/DragonMinded/dragontext/fixed"
)

// Char is one positioned glyph in a laid out paragraph. X and Y are
// quarter-pixel pen positions relative to the paragraph origin.
type Char struct {
	fsg   uint32
	Glyph Glyph
	X, Y  fixed.Int14_2
}

// makeFSG packs font, style and atlas id from high to low bits, so that
// ordering records by it yields maximal drawing batches.
func makeFSG(font FontID, style StyleID, atlas uint8) uint32 {
	return uint32(font)<<24 | uint32(style)<<16 | uint32(atlas)<<8
}

func (c Char) FontID() FontID   { return FontID(c.fsg >> 24) }
func (c Char) StyleID() StyleID { return StyleID(c.fsg >> 16) }
func (c Char) Atlas() uint8     { return uint8(c.fsg >> 8) }

func charLess(a, b *Char) bool {
	if a.fsg != b.fsg {
		return a.fsg < b.fsg
	}
	return a.Glyph < b.Glyph
}

// Paragraph is a fully laid out text, ready to be rendered any number of
// times at any position.
type Paragraph struct {
	// NChars and NLines count the glyph records and lines.
	NChars int
	NLines int

	// AdvanceX is the pen displacement on the last line, AdvanceY the
	// vertical displacement across all lines.
	AdvanceX, AdvanceY float32

	// BBox is the drawn extent (x0, y0, x1, y1) relative to the
	// drawing position.
	BBox [4]float32

	// X0 and Y0 shift the whole paragraph when rendering. Y0 is set by
	// vertical alignment.
	X0, Y0 float32

	chars    []Char
	fixedCap bool
	fonts    *Registry
}

func newParagraph(capacity int, fixedCap bool) *Paragraph {
	return &Paragraph{
		chars:    make([]Char, 0, capacity),
		fixedCap: fixedCap,
	}
}

// NewParagraph preallocates a paragraph with room for capacity-1 glyph
// records, one slot is reserved for the terminator. Passing it to
// Builder.Begin avoids allocations when laying out repeatedly; exceeding
// the capacity fails the build with ErrCapacity.
func NewParagraph(capacity int) *Paragraph {
	return newParagraph(capacity, true)
}

// Chars returns the glyph records, excluding the terminator.
func (p *Paragraph) Chars() []Char { return p.chars[:p.NChars] }

func (p *Paragraph) reset() {
	*p = Paragraph{chars: p.chars[:0], fixedCap: p.fixedCap}
}

func (p *Paragraph) truncate(n int) {
	p.chars = p.chars[:n]
	p.NChars = n
}

const insertionSortMax = 48

func insertionSortChars(chars []Char) {
	for i := 1; i < len(chars); i++ {
		tmp := chars[i]
		j := i
		for j > 0 && charLess(&tmp, &chars[j-1]) {
			chars[j] = chars[j-1]
			j--
		}
		chars[j] = tmp
	}
}

func sortChars(chars []Char) {
	if len(chars) < insertionSortMax {
		// For small sizes insertion sort is faster
		insertionSortChars(chars)
		return
	}
	sort.SliceStable(chars, func(i, j int) bool {
		return charLess(&chars[i], &chars[j])
	})
}

// Render draws the paragraph to dst with its origin at (x0, y0). Faces
// are looked up in the registry the paragraph was built with.
func (p *Paragraph) Render(dst draw.Image, x0, y0 float32) {
	debug.Assert(len(p.chars) > p.NChars, "render of unfinished paragraph")

	x0 += p.X0
	y0 += p.Y0
	for i := 0; p.chars[i].FontID() != 0; {
		fnt := p.fonts.Face(p.chars[i].FontID())
		n := fnt.RenderRun(dst, p.chars[i:], x0, y0)
		debug.Assert(n > 0 && i+n <= p.NChars, "render run out of bounds")
		i += n
	}
}
