package fonts

import (
	"image"
	"image/color"
	"testing"

	"github.com/embeddedgo/display/font/subfont"

	"github.com/DragonMinded/dragontext/fixed"
	"github.com/DragonMinded/dragontext/text"
)

// fakeSubfontData returns the same fully opaque 6x8 glyph for every
// index, with the origin one pixel into the cell.
type fakeSubfontData struct {
	img *image.Alpha
}

func newFakeSubfontData() *fakeSubfontData {
	img := image.NewAlpha(image.Rect(0, 0, 6, 8))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return &fakeSubfontData{img}
}

func (d *fakeSubfontData) Glyph(i int) (image.Image, image.Point, int) {
	return d.img, image.Pt(1, 7), 8
}

func (d *fakeSubfontData) Advance(i int) int { return 8 }

func testSubfontFace() *SubfontFace {
	return NewSubfontFace(&subfont.Face{
		Height: 9,
		Ascent: 7,
		Subfonts: []*subfont.Subfont{
			{First: 'a', Last: 'z', Data: newFakeSubfontData()},
		},
	})
}

func TestSubfontFace(t *testing.T) {
	f := testSubfontFace()

	if got, want := f.Metrics(), (text.Metrics{Ascent: 7, Descent: -2}); got != want {
		t.Errorf("Metrics() = %v, want %v", got, want)
	}
	if got := f.GlyphIndex('a'); got != 'a' {
		t.Errorf("GlyphIndex('a') = %v, want %v", got, 'a')
	}
	if got := f.GlyphIndex('A'); got != -1 {
		t.Errorf("GlyphIndex('A') = %v, want -1", got)
	}
	if got := f.GlyphIndex(0x8000); got != -1 {
		t.Errorf("GlyphIndex(0x8000) = %v, want -1", got)
	}

	m := f.GlyphMetrics('x')
	if m.Advance != 8 {
		t.Errorf("Advance = %v, want 8", m.Advance)
	}
	want := fixed.Rect(fixed.Int8(-1), fixed.Int8(-7), fixed.Int8(5), fixed.Int8(1))
	if m.Ink != want {
		t.Errorf("Ink = %v, want %v", m.Ink, want)
	}
	if m.Kerns || f.Kerning('a', 'b') != 0 {
		t.Error("subfont faces must not kern")
	}
}

func TestSubfontRender(t *testing.T) {
	f := testSubfontFace()
	reg := new(text.Registry)
	if err := reg.Register(1, f); err != nil {
		t.Fatal(err)
	}

	p := layout(t, reg, "ab")
	dst := image.NewRGBA(image.Rect(0, 0, 20, 12))
	p.Render(dst, 4, 8)

	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	checkPixel(t, dst, 3, 1, white)
	checkPixel(t, dst, 8, 8, white)
	checkPixel(t, dst, 9, 1, color.RGBA{})
	checkPixel(t, dst, 11, 1, white)
	checkPixel(t, dst, 16, 8, white)
}

type fakeLoader struct {
	data subfont.Data
}

func (l *fakeLoader) Load(r rune, current []*subfont.Subfont) (*subfont.Subfont, []*subfont.Subfont) {
	if r < 'A' || 'Z' < r {
		return nil, current
	}
	sf := &subfont.Subfont{First: 'A', Last: 'Z', Data: l.data}
	return sf, append(current, sf)
}

func TestSubfontLoader(t *testing.T) {
	f := NewSubfontFace(&subfont.Face{
		Height: 9,
		Ascent: 7,
		Loader: &fakeLoader{newFakeSubfontData()},
	})

	if got := f.GlyphIndex('A'); got != 'A' {
		t.Errorf("GlyphIndex('A') = %v, want %v", got, 'A')
	}
	if len(f.Face.Subfonts) != 1 {
		t.Errorf("loader added %d subfonts, want 1", len(f.Face.Subfonts))
	}
	if got := f.GlyphIndex('0'); got != -1 {
		t.Errorf("GlyphIndex('0') = %v, want -1", got)
	}
}
