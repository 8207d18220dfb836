package fonts

import (
	"image"
	"image/color"
	"testing"

	"github.com/DragonMinded/dragontext/text"
)

func layout(t *testing.T, reg *text.Registry, str string) *text.Paragraph {
	t.Helper()
	b := &text.Builder{Fonts: reg}
	p, _, err := b.Build(&text.Parms{}, 1, str, nil)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func checkPixel(t *testing.T, dst *image.RGBA, x, y int, want color.RGBA) {
	t.Helper()
	if got := dst.RGBAAt(x, y); got != want {
		t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
	}
}

func TestRenderRun(t *testing.T) {
	f := testFont()
	reg := new(text.Registry)
	if err := reg.Register(1, f); err != nil {
		t.Fatal(err)
	}

	white := color.RGBA{0xff, 0xff, 0xff, 0xff}

	t.Run("positions", func(t *testing.T) {
		p := layout(t, reg, "ab")
		dst := image.NewRGBA(image.Rect(0, 0, 20, 12))
		p.Render(dst, 4, 8)

		// 'a' inks a 5x8 box at pen (4.5, 8.5)
		checkPixel(t, dst, 4, 1, white)
		checkPixel(t, dst, 8, 8, white)
		checkPixel(t, dst, 3, 1, color.RGBA{})
		checkPixel(t, dst, 9, 1, color.RGBA{})
		// 'b' follows one advance later
		checkPixel(t, dst, 10, 1, white)
		checkPixel(t, dst, 14, 8, white)
		checkPixel(t, dst, 15, 1, color.RGBA{})
	})

	t.Run("styles", func(t *testing.T) {
		red := color.RGBA{0xff, 0, 0, 0xff}
		f.SetStyle(1, Style{red})

		p := layout(t, reg, "a^01b")
		dst := image.NewRGBA(image.Rect(0, 0, 20, 12))
		p.Render(dst, 4, 8)

		checkPixel(t, dst, 4, 1, white)
		checkPixel(t, dst, 10, 1, red)
	})

	t.Run("atlas switch", func(t *testing.T) {
		p := layout(t, reg, "0a")
		dst := image.NewRGBA(image.Rect(0, 0, 20, 12))
		p.Render(dst, 0, 8)

		checkPixel(t, dst, 0, 1, white)
		checkPixel(t, dst, 6, 1, white)
	})

	t.Run("run boundary", func(t *testing.T) {
		reg := new(text.Registry)
		reg.Register(1, f)
		reg.Register(2, f)

		p := layout(t, reg, "a$02b")
		dst := image.NewRGBA(image.Rect(0, 0, 20, 12))
		if n := f.RenderRun(dst, p.Chars(), 0, 8); n != 1 {
			t.Errorf("RenderRun consumed %d records, want 1", n)
		}

		// the render walk still draws both runs
		p.Render(dst, 4, 8)
		checkPixel(t, dst, 4, 1, white)
		checkPixel(t, dst, 10, 1, white)
	})
}
