package text

import (
	"fmt"
	"image/draw"

	"golang.org/x/text/encoding"
)

// TextMetrics describes how much space a printed text took up.
type TextMetrics struct {
	// Pen position after the last character, relative to the layout
	// origin.
	AdvanceX, AdvanceY float32
	// Number of lines, including the last one.
	Lines int
	// Number of bytes consumed. Less than the input length when the
	// paragraph ran out of vertical space, print the rest on the next
	// page.
	Advance int
}

func hexDigit(c byte) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// build scans text for escape sequences and feeds the spans between them
// to b. Returns the number of bytes consumed, which is less than
// len(text) if the paragraph filled up at a directive.
func build(b *Builder, parms *Parms, id FontID, text string, layout *Paragraph) (*Paragraph, int, error) {
	b.Begin(parms, id, layout)

	span, buf := 0, 0
scan:
	for buf < len(text) {
		switch esc := text[buf]; esc {
		case '$', '^':
			b.Span(text[span:buf])
			if buf+1 < len(text) && text[buf+1] == esc {
				// Escaped literal: the next span starts on the
				// second occurrence.
				buf += 2
				span = buf - 1
				break
			}
			if buf+2 >= len(text) {
				b.fail(fmt.Errorf("%w: truncated %q at byte %d", ErrBadEscape, text[buf:], buf))
				break scan
			}
			hi, lo := hexDigit(text[buf+1]), hexDigit(text[buf+2])
			if hi < 0 || lo < 0 {
				b.fail(fmt.Errorf("%w: %q at byte %d", ErrBadEscape, text[buf:buf+3], buf))
				break scan
			}
			if esc == '$' {
				if hi == 0 && lo == 0 {
					b.fail(fmt.Errorf("%w: %q at byte %d", ErrFontReserved, text[buf:buf+3], buf))
					break scan
				}
				b.Font(FontID(hi<<4 | lo))
			} else {
				b.Style(StyleID(hi<<4 | lo))
			}
			buf += 3
			span = buf
		case '\n':
			b.Span(text[span:buf])
			b.Newline()
			buf++
			span = buf
		default:
			buf++
			continue
		}
		if b.err != nil || b.Full() {
			break scan
		}
	}
	if span != buf {
		b.Span(text[span:buf])
	}

	p, err := b.End()
	if err != nil {
		return nil, 0, err
	}
	return p, buf, nil
}

// Build lays out text into a new paragraph, interpreting escape
// sequences. "$xx" with two hex digits switches to font xx, "^xx" to
// style xx, "$$" and "^^" are literals, '\n' breaks the line. All other
// bytes are laid out as UTF-8 in the active font, starting with font id.
//
// Returns the paragraph and the number of bytes consumed, see
// TextMetrics.Advance.
func Build(parms *Parms, id FontID, text string) (*Paragraph, int, error) {
	var b Builder
	return build(&b, parms, id, text, nil)
}

// Build is like the package level Build, but uses the builder's font
// registry and lays out into layout if it is non-nil.
func (b *Builder) Build(parms *Parms, id FontID, text string, layout *Paragraph) (*Paragraph, int, error) {
	return build(b, parms, id, text, layout)
}

// BuildBytes decodes raw through enc and lays out the result like Build.
// The decode is all or nothing: the consumed count is len(raw) if the
// whole text was laid out and 0 if layout stopped early, byte offsets
// into the decoded text don't map back into raw.
func BuildBytes(parms *Parms, id FontID, enc encoding.Encoding, raw []byte) (*Paragraph, int, error) {
	utf8, err := enc.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, 0, fmt.Errorf("text: decode: %w", err)
	}
	var b Builder
	p, n, err := build(&b, parms, id, string(utf8), nil)
	if err != nil {
		return nil, 0, err
	}
	if n < len(utf8) {
		return p, 0, nil
	}
	return p, len(raw), nil
}

// Print lays out text like Build and renders it onto dst with the layout
// origin at x0, y0.
func Print(dst draw.Image, parms *Parms, id FontID, x0, y0 float32, text string) (TextMetrics, error) {
	var b Builder
	// Every record consumes at least one byte of input, but ellipses can
	// add records beyond that, so the paragraph must be able to grow.
	layout := newParagraph(len(text)+1, false)
	p, n, err := build(&b, parms, id, text, layout)
	if err != nil {
		return TextMetrics{}, err
	}
	p.Render(dst, x0, y0)
	return TextMetrics{
		AdvanceX: p.AdvanceX,
		AdvanceY: p.AdvanceY,
		Lines:    p.NLines,
		Advance:  n,
	}, nil
}

// Printf formats like fmt.Sprintf and prints like Print.
func Printf(dst draw.Image, parms *Parms, id FontID, x0, y0 float32, format string, args ...any) (TextMetrics, error) {
	return Print(dst, parms, id, x0, y0, fmt.Sprintf(format, args...))
}
