package console

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/DragonMinded/dragontext/fixed"
	"github.com/DragonMinded/dragontext/text"
)

const testFont text.FontID = 1

// testFace draws every glyph as a solid 7x12 box with an advance of 8
// and a line height of 14, which makes pixel positions easy to predict.
type testFace struct{}

func (testFace) Metrics() text.Metrics {
	return text.Metrics{Ascent: 10, Descent: -2, LineGap: 2}
}

func (testFace) GlyphIndex(r rune) text.Glyph {
	if r < 0x20 || r > 0x7e {
		return -1
	}
	return text.Glyph(r)
}

func (testFace) GlyphMetrics(g text.Glyph) text.GlyphMetrics {
	return text.GlyphMetrics{
		Advance: 8,
		Ink:     fixed.Rect(fixed.Int8(0), fixed.Int8(-10), fixed.Int8(7), fixed.Int8(2)),
	}
}

func (testFace) Kerning(g1, g2 text.Glyph) float32 { return 0 }

func (testFace) RenderRun(dst draw.Image, chars []text.Char, x0, y0 float32) int {
	id := chars[0].FontID()
	n := 0
	for n < len(chars) && chars[n].FontID() == id {
		ch := &chars[n]
		x := int(x0 + float32(ch.X)*0.25)
		y := int(y0+float32(ch.Y)*0.25) - 10
		draw.Draw(dst, image.Rect(x, y, x+7, y+12), image.White, image.Point{}, draw.Src)
		n++
	}
	return n
}

func init() {
	if err := text.Fonts.Register(testFont, testFace{}); err != nil {
		panic(err)
	}
}

var (
	on  = color.RGBA{0xff, 0xff, 0xff, 0xff}
	off = color.RGBA{0, 0, 0, 0xff}
)

func checkPixel(t *testing.T, dst *image.RGBA, x, y int, want color.RGBA) {
	t.Helper()
	if got := dst.RGBAAt(x, y); got != want {
		t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
	}
}

// draw renders the console into a two line viewport. Glyph boxes occupy
// rows 0..11 on the first line and 14..25 on the second, columns 8i to
// 8i+6 for the i-th glyph.
func render(t *testing.T, c *Console) *image.RGBA {
	t.Helper()
	dst := image.NewRGBA(image.Rect(0, 0, 64, 28))
	if err := c.Draw(dst); err != nil {
		t.Fatal(err)
	}
	return dst
}

func TestDrawTail(t *testing.T) {
	c := New(testFont)
	fmt.Fprint(c, "a\nbb\nccc")

	dst := render(t, c)

	// only the last two lines fit: "bb" and "ccc"
	checkPixel(t, dst, 8, 0, on)
	checkPixel(t, dst, 16, 0, off)
	checkPixel(t, dst, 16, 14, on)
}

func TestScroll(t *testing.T) {
	c := New(testFont)
	fmt.Fprint(c, "a\nbb\nccc")

	c.Scroll(0, 1)
	dst := render(t, c)

	// scrolled back one line: "a" and "bb"
	checkPixel(t, dst, 0, 0, on)
	checkPixel(t, dst, 8, 0, off)
	checkPixel(t, dst, 8, 14, on)

	// scrolling past the oldest line clamps
	c.Scroll(0, 99)
	dst = render(t, c)
	if c.scroll.Y != 1 {
		t.Errorf("scroll.Y = %d, want 1", c.scroll.Y)
	}
	checkPixel(t, dst, 8, 14, on)

	// scrolling forward clamps at the newest line
	c.Scroll(0, -99)
	dst = render(t, c)
	checkPixel(t, dst, 16, 14, on)
}

func TestWrap(t *testing.T) {
	c := New(testFont)
	fmt.Fprint(c, "aaaaaaa bbb")

	dst := render(t, c)

	// the single written line breaks at the space
	checkPixel(t, dst, 0, 0, on)
	checkPixel(t, dst, 48, 0, on)
	checkPixel(t, dst, 0, 14, on)
	checkPixel(t, dst, 16, 14, on)
	checkPixel(t, dst, 24, 14, off)
}

func TestClear(t *testing.T) {
	c := New(testFont)
	fmt.Fprint(c, "aaa")
	c.Clear()

	dst := render(t, c)
	checkPixel(t, dst, 0, 0, off)

	// the console is usable after a clear
	fmt.Fprint(c, "b")
	dst = render(t, c)
	checkPixel(t, dst, 0, 0, on)
}

func TestUnknownFont(t *testing.T) {
	c := New(99)
	dst := image.NewRGBA(image.Rect(0, 0, 64, 28))
	if err := c.Draw(dst); !errors.Is(err, text.ErrFontUnknown) {
		t.Errorf("err = %v, want ErrFontUnknown", err)
	}
}
