// Package text lays out UTF-8 text into positioned glyph runs.
//
// Text is laid out by building a [Paragraph], either in one shot with
// [Build] or [Print], or incrementally with a [Builder]. A paragraph holds
// one record per visible glyph, positioned in quarter pixels and ordered so
// that all glyphs sharing a font, style and atlas can be drawn in a single
// batch.
//
// Fonts are [Face] implementations registered in a [Registry] under a one
// byte id. Inside the text, escape sequences switch the active font and
// style:
//
//	$xx	switch to font id xx (two hex digits, 01..ff)
//	^xx	switch to style id xx (two hex digits, 00..ff)
//	$$	literal dollar sign
//	^^	literal caret
//
// A newline character ends the current line. Any other codepoint is looked
// up in the current font and silently skipped if the font has no glyph for
// it. Malformed UTF-8 never fails, it decodes to U+FFFD.
package text

import (
	"errors"
	"fmt"
	"image/draw"

	"github.com/DragonMinded/dragontext/fixed"
)

var (
	ErrFontReserved   = errors.New("text: font id 0 is reserved")
	ErrFontRegistered = errors.New("text: font already registered")
	ErrFontUnknown    = errors.New("text: font not registered")
	ErrNoEllipsis     = errors.New("text: ellipses wrapping requires an ellipsis glyph in the font")
	ErrCapacity       = errors.New("text: paragraph capacity exhausted")
	ErrBadEscape      = errors.New("text: invalid escape sequence")
	ErrParms          = errors.New("text: invalid layout parameters")
)

// FontID identifies a registered font. Id 0 is reserved as the paragraph
// terminator.
type FontID uint8

// StyleID selects one of a font's styles, e.g. a color variant.
type StyleID uint8

// Glyph is a font internal glyph index. Negative values mean the font has
// no glyph for the requested codepoint.
type Glyph int16

// Metrics describes a face's vertical layout in pixels. Descent is a
// signed offset from the baseline, negative below it.
type Metrics struct {
	Ascent, Descent, LineGap float32
}

// GlyphMetrics describes a single glyph's horizontal layout. Advance is
// the pen advance in pixels. Ink is the glyph's drawn extent relative to
// the pen position, so Ink.Max.X is the rightmost drawn pixel. Kerns
// reports whether the glyph has kerning pairs at all. Atlas orders glyphs
// within a font for batched rendering, typically by texture page; it must
// not depend on the glyph's position.
type GlyphMetrics struct {
	Advance float32
	Ink     fixed.Rectangle8
	Kerns   bool
	Atlas   uint8
}

// EllipsisMetrics describes how a face renders an ellipsis when text is
// cut off by WrapEllipses: the glyph is drawn Reps times, advancing by
// Advance, occupying Width pixels in total. Reps 0 means the face cannot
// render an ellipsis.
type EllipsisMetrics struct {
	Glyph   Glyph
	Reps    int
	Advance float32
	Width   float32
}

// A Face provides glyph indices, metrics and rendering for a font. The
// layout engine owns text decoding, wrapping and ordering; the face owns
// metrics and pixels.
//
// Faces must be safe for concurrent lookups once registered.
type Face interface {
	Metrics() Metrics

	// GlyphIndex returns the face's index for a codepoint, negative if
	// the face has no glyph for it.
	GlyphIndex(r rune) Glyph

	GlyphMetrics(g Glyph) GlyphMetrics

	// Kerning returns the additional advance between two adjacent
	// glyphs in pixels, usually negative.
	Kerning(g1, g2 Glyph) float32

	// RenderRun draws the leading run of chars that share the first
	// record's font id and returns how many records it consumed. The
	// records are positioned relative to (x0, y0).
	RenderRun(dst draw.Image, chars []Char, x0, y0 float32) int
}

// EllipsisFace is implemented by faces that can render an ellipsis for
// WrapEllipses.
type EllipsisFace interface {
	Face
	Ellipsis() EllipsisMetrics
}

// A Registry maps font ids to faces. Faces are registered once, usually
// during init, and cannot be replaced or removed. Lookups after the
// registration phase are read-only, so a Registry needs no locking.
type Registry struct {
	faces [256]Face
}

// Fonts is the default registry used by Build, Print and any Builder
// without an explicit one.
var Fonts = new(Registry)

func (r *Registry) Register(id FontID, f Face) error {
	if id == 0 {
		return ErrFontReserved
	}
	if r.faces[id] != nil {
		return fmt.Errorf("%w: id %d", ErrFontRegistered, id)
	}
	r.faces[id] = f
	return nil
}

// Face returns the face registered under id, nil if there is none.
func (r *Registry) Face(id FontID) Face {
	return r.faces[id]
}
