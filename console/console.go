// Package console implements a scrollback text console rendered through
// the text layout engine.
package console

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"

	"github.com/DragonMinded/dragontext/text"
)

// Console collects written text in a scrollback buffer and renders its
// tail into a viewport, newest lines at the bottom. It implements
// io.Writer.
//
// Text is laid out with the default registry's font the console was
// created with, so escape sequences in the written text switch fonts and
// styles as usual. Writes only mutate the buffer, call Draw to update
// the display. Console is not safe for concurrent use.
type Console struct {
	buf    bytes.Buffer
	scroll image.Point
	font   text.FontID

	builder text.Builder
	layout  *text.Paragraph
}

func New(font text.FontID) *Console {
	return &Console{font: font}
}

func (c *Console) Write(p []byte) (n int, err error) {
	return c.buf.Write(p)
}

// Clear drops the scrollback and resets the scroll position.
func (c *Console) Clear() {
	c.buf.Reset()
	c.scroll = image.Point{}
}

// Scroll moves the viewport: positive dy scrolls back towards older
// lines, positive dx shifts the view right. The vertical offset is
// clamped to the scrollback on the next Draw.
func (c *Console) Scroll(dx, dy int) {
	c.scroll.X += dx
	c.scroll.Y += dy
}

// Draw clears dst's bounds and renders the visible part of the
// scrollback into it, wrapping long lines at word boundaries.
func (c *Console) Draw(dst draw.Image) error {
	bounds := dst.Bounds()
	draw.Draw(dst, bounds, image.Black, image.Point{}, draw.Src)

	face := text.Fonts.Face(c.font)
	if face == nil {
		return fmt.Errorf("%w: id %d", text.ErrFontUnknown, c.font)
	}
	m := face.Metrics()
	maxLines := bounds.Dy() / int(m.Ascent-m.Descent+m.LineGap)
	if maxLines < 1 {
		return nil
	}

	b := c.buf.Bytes()
	total := bytes.Count(b, []byte{'\n'}) + 1
	c.scroll.Y = min(max(c.scroll.Y, 0), max(total-maxLines, 0))

	// Cut the viewed slice out of the buffer: drop the scroll.Y newest
	// lines, then take up to maxLines above them.
	end := len(b)
	for i := 0; i < c.scroll.Y; i++ {
		end = bytes.LastIndexByte(b[:end], '\n')
	}
	start := end
	for i := 0; i < maxLines; i++ {
		idx := bytes.LastIndexByte(b[:start], '\n')
		if idx == -1 {
			start = 0
			break
		}
		start = idx
	}
	if start > 0 {
		start++
	}
	if start == end {
		return nil
	}

	parms := text.Parms{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Wrap:   text.WrapWord,
	}
	p, _, err := c.builder.Build(&parms, c.font, string(b[start:end]), c.layout)
	if err != nil {
		return err
	}
	c.layout = p
	p.Render(dst, float32(bounds.Min.X-c.scroll.X), float32(bounds.Min.Y))
	return nil
}
