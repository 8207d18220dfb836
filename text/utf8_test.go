package text

import "testing"

func TestDecodeRune(t *testing.T) {
	tests := map[string]struct {
		in string
		at int
		r  rune
		n  int
	}{
		"ascii":      {"A", 0, 'A', 1},
		"two byte":   {"é", 0, 0xe9, 2},
		"three byte": {"€", 0, 0x20ac, 3},
		"four byte":  {"\U0001f600", 0, 0x1f600, 4},
		"offset":     {"aé", 1, 0xe9, 2},

		// A continuation or out of range byte in leading position is
		// one replacement char, a cut off sequence swallows the tail.
		"stray continuation": {"\x80ab", 0, 0xfffd, 1},
		"invalid lead":       {"\xf8ab", 0, 0xfffd, 1},
		"truncated two":      {"\xc3", 0, 0xfffd, 1},
		"truncated three":    {"\xe2\x82", 0, 0xfffd, 2},
		"truncated four":     {"\xf0\x9f\x98", 0, 0xfffd, 3},

		// Continuation bytes are not validated, their low bits are
		// taken as payload.
		"lenient continuation": {"\xc3\x41", 0, 0xc1, 2},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			r, n := decodeRune(tc.in, tc.at)
			if r != tc.r || n != tc.n {
				t.Errorf("decodeRune(%q, %d) = %#x, %d, want %#x, %d",
					tc.in, tc.at, r, n, tc.r, tc.n)
			}
		})
	}
}
