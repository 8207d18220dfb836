package text

// decodeRune decodes the codepoint starting at s[i]. It is deliberately
// lenient: continuation bytes are not validated, their payload bits are
// used as is. A continuation or invalid byte in leading position decodes
// to U+FFFD and consumes one byte, as does a sequence cut off by the end
// of the string, which consumes the remainder. It never consumes zero
// bytes.
func decodeRune(s string, i int) (r rune, n int) {
	c := rune(s[i])
	switch {
	case c < 0x80:
		return c, 1
	case c < 0xC0:
		return 0xFFFD, 1
	case c < 0xE0:
		n = 2
	case c < 0xF0:
		n = 3
	case c < 0xF8:
		n = 4
	default:
		return 0xFFFD, 1
	}
	if i+n > len(s) {
		return 0xFFFD, len(s) - i
	}
	switch n {
	case 2:
		r = (c&0x1F)<<6 | rune(s[i+1])&0x3F
	case 3:
		r = (c&0x0F)<<12 | (rune(s[i+1])&0x3F)<<6 | rune(s[i+2])&0x3F
	case 4:
		r = (c&0x07)<<18 | (rune(s[i+1])&0x3F)<<12 | (rune(s[i+2])&0x3F)<<6 | rune(s[i+3])&0x3F
	}
	return r, n
}
