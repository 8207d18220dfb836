package text

import "testing"

func mkChar(font FontID, style StyleID, atlas uint8, glyph Glyph) Char {
	return Char{fsg: makeFSG(font, style, atlas), Glyph: glyph}
}

func TestCharPacking(t *testing.T) {
	c := mkChar(3, 2, 1, 9)
	if c.FontID() != 3 || c.StyleID() != 2 || c.Atlas() != 1 || c.Glyph != 9 {
		t.Errorf("unpacked %d/%d/%d/%d, want 3/2/1/9",
			c.FontID(), c.StyleID(), c.Atlas(), c.Glyph)
	}
	// The font id must occupy the high byte so that a zero record reads
	// as the terminator.
	if (Char{}).FontID() != 0 {
		t.Error("zero Char is not a terminator")
	}
}

func TestSortChars(t *testing.T) {
	t.Run("precedence", func(t *testing.T) {
		// Font outranks style outranks atlas outranks glyph.
		chars := []Char{
			mkChar(2, 0, 0, 'a'),
			mkChar(1, 1, 0, 'b'),
			mkChar(1, 0, 1, 'c'),
			mkChar(1, 0, 0, 'e'),
			mkChar(1, 0, 0, 'd'),
		}
		want := []Char{
			mkChar(1, 0, 0, 'd'),
			mkChar(1, 0, 0, 'e'),
			mkChar(1, 0, 1, 'c'),
			mkChar(1, 1, 0, 'b'),
			mkChar(2, 0, 0, 'a'),
		}
		sortChars(chars)
		for i := range chars {
			if chars[i] != want[i] {
				t.Errorf("chars[%d] = %+v, want %+v", i, chars[i], want[i])
			}
		}
	})

	t.Run("large", func(t *testing.T) {
		// Exercise the comparison sort path above the insertion sort
		// cutoff.
		n := 2 * insertionSortMax
		chars := make([]Char, n)
		for i := range chars {
			chars[i] = mkChar(FontID(n-i), 0, 0, 0)
		}
		sortChars(chars)
		for i := range chars {
			if chars[i].FontID() != FontID(i+1) {
				t.Fatalf("chars[%d].FontID() = %d, want %d", i, chars[i].FontID(), i+1)
			}
		}
	})

	t.Run("stable", func(t *testing.T) {
		// Records with equal keys keep their layout order, so glyphs
		// drawn twice stay in pen order.
		chars := []Char{
			{fsg: makeFSG(2, 0, 0), Glyph: 'b', X: 0},
			{fsg: makeFSG(1, 0, 0), Glyph: 'a', X: 4},
			{fsg: makeFSG(1, 0, 0), Glyph: 'a', X: 8},
		}
		sortChars(chars)
		if chars[0].X != 4 || chars[1].X != 8 || chars[2].Glyph != 'b' {
			t.Errorf("sorted %+v", chars)
		}
	})
}
