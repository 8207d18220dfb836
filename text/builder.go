package text

import (
	"fmt"

	"github.com/DragonMinded/dragontext/fixed"
)

// A Builder incrementally lays out a paragraph from spans of text. Begin
// starts a paragraph, Span, Newline, Font and Style feed it, End finishes
// it. The zero value is ready to use.
//
// Errors latch: after the first failure all calls become no-ops and End
// returns the error. A Builder must not be used from multiple goroutines
// at once, build with one Builder per goroutine instead.
type Builder struct {
	// Fonts is the registry faces are looked up in, nil selects the
	// package level default.
	Fonts *Registry

	layout  *Paragraph
	parms   Parms
	font    Face
	metrics Metrics
	fontID  FontID
	styleID StyleID
	// TODO: expose scaling as a drawing parameter
	xscale, yscale float32
	x, y           float32
	chLineStart    int
	chLastSpace    int
	skipLine       bool
	mustSort       bool
	bboxValid      bool
	err            error
}

// Begin starts laying out a new paragraph. A nil parms lays out a single
// unbounded line. A nil layout allocates a growing paragraph, pass a
// preallocated one to reuse its storage across builds.
func (b *Builder) Begin(parms *Parms, id FontID, layout *Paragraph) {
	reg := b.Fonts
	if reg == nil {
		reg = Fonts
	}
	*b = Builder{Fonts: reg}

	if parms != nil {
		b.parms = *parms
	}
	if b.parms.Wrap != WrapNone && b.parms.Width == 0 {
		b.fail(fmt.Errorf("%w: wrapping requires a width", ErrParms))
		return
	}
	if b.parms.Width < 0 || b.parms.Height < 0 {
		b.fail(fmt.Errorf("%w: negative size", ErrParms))
		return
	}

	if layout == nil {
		layout = newParagraph(256, false)
	} else {
		layout.reset()
	}
	layout.fonts = reg
	layout.NLines = 1
	b.layout = layout

	b.xscale, b.yscale = 1, 1
	b.chLastSpace = -1
	b.Font(id)
	if b.err != nil {
		return
	}

	// start at center of pixel so that all rounds are to nearest
	b.x = 0.5 + float32(b.parms.Indent)
	b.y = 0.5
	if b.parms.Height != 0 {
		b.y += b.metrics.Ascent
	}
	b.skipLine = b.full()
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Err returns the first error encountered since Begin.
func (b *Builder) Err() error { return b.err }

// Font switches the active font and resets the style to 0. Under
// WrapEllipses the font must provide an ellipsis.
func (b *Builder) Font(id FontID) {
	if b.err != nil {
		return
	}
	f := b.Fonts.Face(id)
	if f == nil {
		if id == 0 {
			b.fail(ErrFontReserved)
		} else {
			b.fail(fmt.Errorf("%w: id %d", ErrFontUnknown, id))
		}
		return
	}
	if b.parms.Wrap == WrapEllipses {
		if e, ok := f.(EllipsisFace); !ok || e.Ellipsis().Reps == 0 {
			b.fail(fmt.Errorf("%w: font %d", ErrNoEllipsis, id))
			return
		}
	}
	b.mustSort = b.mustSort || b.fontID > id
	b.fontID = id
	b.font = f
	b.metrics = f.Metrics()
	b.styleID = 0
}

// Style switches the active style.
func (b *Builder) Style(id StyleID) {
	if b.err != nil {
		return
	}
	b.mustSort = b.mustSort || b.styleID > id
	b.styleID = id
}

// Optimize forces the records to be sorted at End even if they were
// appended in order, maximizing batching for paragraphs that are rendered
// many times.
func (b *Builder) Optimize() { b.mustSort = true }

// Full reports whether the paragraph's height is exhausted. Everything
// laid out from now on would be cut off.
func (b *Builder) Full() bool {
	return b.err == nil && b.full()
}

func (b *Builder) full() bool {
	return b.parms.Height != 0 && b.y-b.metrics.Descent >= float32(b.parms.Height)
}

func (b *Builder) appendChar(ch Char) bool {
	p := b.layout
	if p.fixedCap && cap(p.chars)-len(p.chars) < 2 {
		// one slot must remain for the terminator
		b.fail(fmt.Errorf("%w: %d/%d chars", ErrCapacity, p.NChars+1, cap(p.chars)))
		return false
	}
	p.chars = append(p.chars, ch)
	p.NChars++
	return true
}

// Span lays out a run of text in the active font and style. The text is
// taken literally: newlines and escape sequences are not interpreted
// here, use Newline, Font and Style, or lay out with Build.
func (b *Builder) Span(text string) {
	// We're skipping the current line, so this span isn't useful
	if b.err != nil || b.skipLine {
		return
	}

	fnt := b.font
	width := float32(b.parms.Width)
	charSpacing := float32(b.parms.CharSpacing)
	xcur, ycur := b.x, b.y
	next := Glyph(-1)
	isSpace, nextSpace := false, false

	i := 0
	for i < len(text) || next >= 0 {
		index := next
		next = -1
		if index >= 0 {
			isSpace = nextSpace
		} else {
			r, n := decodeRune(text, i)
			i += n
			isSpace = r == ' '
			index = fnt.GlyphIndex(r)
			if index < 0 {
				continue
			}
		}

		m := fnt.GlyphMetrics(index)

		if !isSpace {
			if !b.appendChar(Char{
				fsg:   makeFSG(b.fontID, b.styleID, m.Atlas),
				Glyph: index,
				X:     fixed.Int14_2F(xcur),
				Y:     fixed.Int14_2F(ycur),
			}) {
				return
			}
		} else {
			b.chLastSpace = b.layout.NChars
		}

		lastPixel := xcur + float32(m.Ink.Max.X)*b.xscale

		xcur += (m.Advance + charSpacing) * b.xscale

		if m.Kerns && i < len(text) {
			r, n := decodeRune(text, i)
			i += n
			nextSpace = r == ' '
			next = fnt.GlyphIndex(r)
			if next >= 0 {
				xcur += fnt.Kerning(index, next) * b.xscale
			}
		}

		if width == 0 || lastPixel <= width {
			continue
		}

		// The line is out of horizontal space
		switch b.parms.Wrap {
		case WrapChar:
			if b.layout.NChars <= b.chLineStart {
				b.skipLine = true
				return
			}
			if !b.wrap(b.layout.NChars-1, &xcur, &ycur) {
				return
			}
		case WrapWord:
			// Break at the last space on this line. Spaces on
			// previous lines don't count.
			if b.chLastSpace >= b.chLineStart {
				if !b.wrap(b.chLastSpace, &xcur, &ycur) {
					return
				}
				b.chLastSpace = -1
				continue
			}
			// No space to break at: drop the overflowing char
			// and cut the line.
			b.layout.truncate(b.layout.NChars - 1)
			b.skipLine = true
			return
		case WrapEllipses:
			b.ellipsize()
			b.skipLine = true
			return
		case WrapNone:
			// The text doesn't fit on this line anymore. Skip the
			// rest of the line, including the current character.
			b.skipLine = true
			return
		}
	}

	b.x = xcur
	b.y = ycur
}

// wrap forces a newline at wrapchar and moves everything laid out after
// it onto the new line. Returns false when the new line does not fit
// vertically anymore, truncating the paragraph at wrapchar.
func (b *Builder) wrap(wrapchar int, xcur, ycur *float32) bool {
	p := b.layout

	b.x = *xcur
	b.y = *ycur
	b.newline(wrapchar)
	if b.skipLine {
		p.truncate(wrapchar)
		return false
	}

	// If the wrapchar is the last char, we're done
	if wrapchar == p.NChars {
		*xcur = b.x
		*ycur = b.y
		return true
	}

	// Translate all characters from wrapchar to the end by the exact
	// quarter-pixel delta that moves the first one to the line start.
	chars := p.chars[wrapchar:p.NChars]
	dx := fixed.Int14_2F(b.x) - chars[0].X
	dy := fixed.Int14_2F(b.y) - chars[0].Y
	for i := range chars {
		chars[i].X += dx
		chars[i].Y += dy
	}

	*xcur += float32(dx) * 0.25
	*ycur += float32(dy) * 0.25
	return true
}

// ellipsize cuts the current line, searching backward for the last
// position where the ellipsis still fits inside the width.
func (b *Builder) ellipsize() {
	p := b.layout
	width := float32(b.parms.Width)

	wfnt := b.font.(EllipsisFace)
	var ellipsisX float32
	wrapchar := p.NChars - 1
	for wrapchar > b.chLineStart {
		prev := p.chars[wrapchar-1]
		wfnt = b.Fonts.Face(prev.FontID()).(EllipsisFace)

		// The position after the previous char. This may differ from
		// the wrap char's position because of elided whitespace.
		adv := wfnt.GlyphMetrics(prev.Glyph).Advance
		ellipsisX = float32(prev.X)*0.25 + adv*b.xscale

		if ellipsisX+wfnt.Ellipsis().Width < width {
			break
		}
		wrapchar--
	}

	if wrapchar <= b.chLineStart {
		// No room for an ellipsis at all, cut the whole line.
		p.truncate(b.chLineStart)
		return
	}

	prev := p.chars[wrapchar-1]
	ell := wfnt.Ellipsis()
	atlas := wfnt.GlyphMetrics(ell.Glyph).Atlas

	p.truncate(wrapchar)
	for i := 0; i < ell.Reps; i++ {
		if !b.appendChar(Char{
			fsg:   makeFSG(prev.FontID(), prev.StyleID(), atlas),
			Glyph: ell.Glyph,
			X:     fixed.Int14_2F(ellipsisX + ell.Advance*float32(i)*b.xscale),
			Y:     prev.Y,
		}) {
			return
		}
	}
}

// Newline ends the current line. The next line starts at the left edge,
// without indent.
func (b *Builder) Newline() {
	if b.err != nil {
		return
	}
	b.newline(b.layout.NChars)
}

func (b *Builder) newline(upTo int) {
	lineHeight := b.metrics.Ascent - b.metrics.Descent + b.metrics.LineGap
	lineHeight += float32(b.parms.LineSpacing)

	b.y += lineHeight * b.yscale
	b.x = 0.5
	b.skipLine = b.full()
	b.layout.NLines++

	b.finishLine(upTo)
}

// finishLine aligns the records of the line ending at upTo and merges its
// extents into the bounding box.
func (b *Builder) finishLine(upTo int) {
	p := b.layout
	ix0, ix1 := b.chLineStart, upTo

	// If there's at least one character on this line
	if ix0 != ix1 {
		ch0, ch1 := p.chars[ix0], p.chars[ix1-1]

		fnt0 := b.Fonts.Face(ch0.FontID())
		fnt1 := b.Fonts.Face(ch1.FontID())

		// Extract x of the first pixel of the first char and the last
		// pixel of the last char. This is slightly more accurate than
		// using the pen positions.
		x0 := float32(ch0.X)*0.25 + float32(fnt0.GlyphMetrics(ch0.Glyph).Ink.Min.X)*b.xscale
		x1 := float32(ch1.X)*0.25 + float32(fnt1.GlyphMetrics(ch1.Glyph).Ink.Max.X)*b.xscale

		// Right/center alignment of the row (and adjust extents)
		if b.parms.Width != 0 && b.parms.Align != AlignLeft {
			offset := float32(b.parms.Width) - (x1 - x0)
			if b.parms.Align == AlignCenter {
				offset *= 0.5
			}

			offFx := fixed.Int14_2U(int(offset))
			for i := ix0; i < ix1; i++ {
				p.chars[i].X += offFx
			}
			x0 += offset
			x1 += offset
		}

		if !b.bboxValid || p.BBox[0] > x0 {
			p.BBox[0] = x0
		}
		if !b.bboxValid || p.BBox[2] < x1 {
			p.BBox[2] = x1
		}
		b.bboxValid = true
	}

	b.chLineStart = upTo
}

// End finishes the paragraph: the last line is aligned, the records are
// ordered for batched rendering and the terminator is written. The
// returned paragraph stays valid after the builder moves on to the next
// Begin.
func (b *Builder) End() (*Paragraph, error) {
	if b.err != nil {
		return nil, b.err
	}
	p := b.layout

	// Terminate the current line to calculate alignment, bounding box,
	// etc. This is not a newline: NLines counts one plus the newlines
	// taken, and the pen does not move.
	if b.chLineStart != p.NChars {
		b.finishLine(p.NChars)
	}

	if p.NChars > 0 {
		// Update bounding box (vertically)
		y0 := float32(p.chars[0].Y)*0.25 - b.metrics.Ascent
		y1 := float32(p.chars[p.NChars-1].Y)*0.25 - b.metrics.Descent + b.metrics.LineGap + 1

		if b.parms.Height != 0 && b.parms.VAlign != VAlignTop {
			offset := float32(b.parms.Height) - (y1 - y0)
			if b.parms.VAlign == VAlignCenter {
				offset *= 0.5
			}
			offset = float32(int32(offset)) // truncate

			p.Y0 = offset
			y0 += offset
			y1 += offset
		}

		p.BBox[1] = y0
		p.BBox[3] = y1
	}

	// Sort the chars by font/style/atlas, with the glyph as tie break.
	// Appends in ascending order leave the records sorted already.
	if b.mustSort {
		sortChars(p.chars[:p.NChars])
	}

	// Make sure there is always a terminator.
	if cap(p.chars) == len(p.chars) {
		if p.fixedCap {
			b.fail(fmt.Errorf("%w: %d/%d chars", ErrCapacity, p.NChars, cap(p.chars)))
			return nil, b.err
		}
		p.chars = append(p.chars, Char{})
	} else {
		p.chars = p.chars[:p.NChars+1]
		p.chars[p.NChars] = Char{}
	}

	p.AdvanceX = b.x - 0.5
	p.AdvanceY = b.y - 0.5

	return p, nil
}
