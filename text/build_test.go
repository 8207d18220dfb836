package text

import (
	"errors"
	"image"
	"testing"

	"golang.org/x/text/encoding/charmap"
)

// Tests of the package level entry points need a font in the default
// registry. Registered once for the test binary.
const defaultTestFont FontID = 0x41

var defaultTestFace = newTestFace()

func init() {
	if err := Fonts.Register(defaultTestFont, defaultTestFace); err != nil {
		panic(err)
	}
}

func TestBuild(t *testing.T) {
	p, n, err := Build(nil, defaultTestFont, "A$41B")
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 {
		t.Errorf("consumed %d bytes, want 5", n)
	}
	if got := glyphString(p.Chars()); got != "AB" {
		t.Errorf("glyphs %q", got)
	}
	if p.chars[1].FontID() != defaultTestFont {
		t.Errorf("font = %d, want %d", p.chars[1].FontID(), defaultTestFont)
	}
}

func TestEscapes(t *testing.T) {
	reg := testFonts(t, newTestFace(), newTestFace())

	t.Run("round trip", func(t *testing.T) {
		b := Builder{Fonts: reg}
		text := "$01^02AB$$C^^D"
		p, n, err := b.Build(nil, 1, text, nil)
		if err != nil {
			t.Fatal(err)
		}
		if n != len(text) {
			t.Errorf("consumed %d bytes, want %d", n, len(text))
		}
		if got := glyphString(p.Chars()); got != "AB$C^D" {
			t.Fatalf("glyphs %q", got)
		}
		for i, c := range p.Chars() {
			if c.FontID() != 1 || c.StyleID() != 2 {
				t.Errorf("chars[%d] font/style = %d/%d, want 1/2", i, c.FontID(), c.StyleID())
			}
			if c.X != fx(0.5+8*float32(i)) {
				t.Errorf("chars[%d].X = %v", i, c.X)
			}
		}
	})

	t.Run("font switch resets style", func(t *testing.T) {
		b := Builder{Fonts: reg}
		p, _, err := b.Build(nil, 1, "^05A$02B", nil)
		if err != nil {
			t.Fatal(err)
		}
		if got := p.chars[0].StyleID(); got != 5 {
			t.Errorf("A style = %d, want 5", got)
		}
		if got := p.chars[1].StyleID(); got != 0 {
			t.Errorf("B style = %d, want 0", got)
		}
	})

	t.Run("any style id", func(t *testing.T) {
		// Styles are not registered, every id is valid.
		b := Builder{Fonts: reg}
		p, _, err := b.Build(nil, 1, "^ffA", nil)
		if err != nil {
			t.Fatal(err)
		}
		if got := p.chars[0].StyleID(); got != 0xff {
			t.Errorf("style = %#x, want 0xff", got)
		}
	})
}

func TestEscapeErrors(t *testing.T) {
	reg := testFonts(t, newTestFace())

	tests := map[string]struct {
		text string
		err  error
	}{
		"bad digits":        {"A$zzB", ErrBadEscape},
		"bad style digits":  {"A^0gB", ErrBadEscape},
		"truncated font":    {"AB$1", ErrBadEscape},
		"truncated at end":  {"AB$", ErrBadEscape},
		"truncated style":   {"AB^", ErrBadEscape},
		"font zero escape":  {"A$00B", ErrFontReserved},
		"unregistered font": {"A$09B", ErrFontUnknown},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			b := Builder{Fonts: reg}
			p, n, err := b.Build(nil, 1, tc.text, nil)
			if !errors.Is(err, tc.err) {
				t.Errorf("err = %v, want %v", err, tc.err)
			}
			if p != nil || n != 0 {
				t.Errorf("p, n = %v, %d, want nil, 0", p, n)
			}
		})
	}

	t.Run("trailing literal ok", func(t *testing.T) {
		b := Builder{Fonts: reg}
		p, _, err := b.Build(nil, 1, "AB$$", nil)
		if err != nil {
			t.Fatal(err)
		}
		if got := glyphString(p.Chars()); got != "AB$" {
			t.Errorf("glyphs %q", got)
		}
	})
}

func TestPagination(t *testing.T) {
	reg := testFonts(t, newTestFace())
	parms := &Parms{Height: 20} // one 14 px line per page
	text := "ab\ncd\nef"

	var pages []string
	for off := 0; off < len(text); {
		b := Builder{Fonts: reg}
		p, n, err := b.Build(parms, 1, text[off:], nil)
		if err != nil {
			t.Fatal(err)
		}
		if n == 0 {
			t.Fatal("pagination made no progress")
		}
		pages = append(pages, glyphString(p.Chars()))
		off += n
	}

	want := []string{"ab", "cd", "ef"}
	if len(pages) != len(want) {
		t.Fatalf("pages = %q, want %q", pages, want)
	}
	for i := range want {
		if pages[i] != want[i] {
			t.Errorf("page %d = %q, want %q", i, pages[i], want[i])
		}
	}
}

func TestBuildBytes(t *testing.T) {
	t.Run("latin1", func(t *testing.T) {
		raw := []byte{'c', 'a', 'f', 0xe9}
		p, n, err := BuildBytes(nil, defaultTestFont, charmap.ISO8859_1, raw)
		if err != nil {
			t.Fatal(err)
		}
		if n != len(raw) {
			t.Errorf("consumed %d bytes, want %d", n, len(raw))
		}
		if got := glyphString(p.Chars()); got != "café" {
			t.Errorf("glyphs %q", got)
		}
	})

	t.Run("stops early", func(t *testing.T) {
		// Byte offsets into the decoded text don't map back into the
		// raw input, a partial layout reports zero consumed bytes.
		raw := []byte("ab\ncd")
		p, n, err := BuildBytes(&Parms{Height: 20}, defaultTestFont, charmap.ISO8859_1, raw)
		if err != nil {
			t.Fatal(err)
		}
		if n != 0 {
			t.Errorf("consumed %d bytes, want 0", n)
		}
		if got := glyphString(p.Chars()); got != "ab" {
			t.Errorf("glyphs %q", got)
		}
	})
}

func TestPrint(t *testing.T) {
	defaultTestFace.runs = nil
	dst := image.NewRGBA(image.Rect(0, 0, 128, 64))

	m, err := Print(dst, nil, defaultTestFont, 20, 30, "ab")
	if err != nil {
		t.Fatal(err)
	}
	if m.AdvanceX != 16 || m.AdvanceY != 0 || m.Lines != 1 || m.Advance != 2 {
		t.Errorf("metrics = %+v", m)
	}
	if len(defaultTestFace.runs) != 1 {
		t.Fatalf("runs = %d, want 1", len(defaultTestFace.runs))
	}
	run := defaultTestFace.runs[0]
	if got := glyphString(run.chars); got != "ab" {
		t.Errorf("drew %q", got)
	}
	if run.x0 != 20 || run.y0 != 30 {
		t.Errorf("drew at (%v, %v), want (20, 30)", run.x0, run.y0)
	}
}

func TestPrintf(t *testing.T) {
	defaultTestFace.runs = nil
	dst := image.NewRGBA(image.Rect(0, 0, 128, 64))

	m, err := Printf(dst, nil, defaultTestFont, 0, 0, "n=%d", 42)
	if err != nil {
		t.Fatal(err)
	}
	if m.Advance != 4 || m.Lines != 1 {
		t.Errorf("metrics = %+v", m)
	}
	if got := glyphString(defaultTestFace.runs[0].chars); got != "n=42" {
		t.Errorf("drew %q", got)
	}
}
