package lexer

import "jsfront/internal/token"

// identChannel scans identifiers and keywords. \uXXXX and \u{X...} escapes
// are accepted when the escaped character is itself valid at that place;
// a word spelled with escapes is never a keyword.
type identChannel struct{}

func (identChannel) consume(lx *Lexer) bool {
	c := &lx.cursor
	start := c.Mark()
	escaped := false
	for !c.EOF() {
		first := c.Off == uint32(start)
		r, size := c.PeekRune()
		if r == '\\' {
			val, n, ok := readUnicodeEscape(c.Rest())
			if !ok || !identRune(val, first) {
				break
			}
			c.Skip(n)
			escaped = true
			continue
		}
		if !identRune(r, first) {
			break
		}
		c.Skip(size)
	}
	if c.Off == uint32(start) {
		return false
	}
	kind := token.Ident
	if !escaped {
		if kw, ok := token.LookupKeyword(string(c.File.Content[start:c.Off])); ok {
			kind = kw
		}
	}
	lx.emit(kind, start)
	return true
}

func identRune(r rune, first bool) bool {
	if first {
		return token.IsIdentStart(r)
	}
	return token.IsIdentPart(r)
}

// readUnicodeEscape decodes a leading \uXXXX or \u{X...} sequence.
func readUnicodeEscape(b []byte) (r rune, n uint32, ok bool) {
	if len(b) < 2 || b[0] != '\\' || b[1] != 'u' {
		return 0, 0, false
	}
	if len(b) > 2 && b[2] == '{' {
		i := 3
		for ; i < len(b) && b[i] != '}'; i++ {
			if !token.IsHex(b[i]) {
				return 0, 0, false
			}
			r = r<<4 | rune(hexVal(b[i]))
			if r > 0x10FFFF {
				return 0, 0, false
			}
		}
		if i == 3 || i >= len(b) {
			return 0, 0, false
		}
		return r, uint32(i + 1), true //nolint:gosec // bounded by the escape length
	}
	if len(b) < 6 {
		return 0, 0, false
	}
	for _, h := range b[2:6] {
		if !token.IsHex(h) {
			return 0, 0, false
		}
		r = r<<4 | rune(hexVal(h))
	}
	return r, 6, true
}

func hexVal(b byte) byte {
	switch {
	case b >= '0' && b <= '9':
		return b - '0'
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10
	default:
		return b - 'A' + 10
	}
}
