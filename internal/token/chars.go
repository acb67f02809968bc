package token

import "unicode"

// Character classes of the language's lexical grammar.

var (
	identStartTables = []*unicode.RangeTable{unicode.Lu, unicode.Ll, unicode.Lt, unicode.Lm, unicode.Lo, unicode.Nl}
	identPartTables  = []*unicode.RangeTable{unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc}
)

const (
	zwnj = '\u200c'
	zwj  = '\u200d'
)

// IsIdentStart reports whether r may begin an identifier: '$', '_' or a
// Unicode letter (Lu, Ll, Lt, Lm, Lo, Nl).
func IsIdentStart(r rune) bool {
	switch {
	case r == '$' || r == '_':
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r < 0x80:
		return false
	}
	return unicode.In(r, identStartTables...)
}

// IsIdentPart reports whether r may continue an identifier: any start
// character, combining marks (Mn, Mc), digits (Nd), connector punctuation
// (Pc), ZWNJ or ZWJ.
func IsIdentPart(r rune) bool {
	if IsIdentStart(r) {
		return true
	}
	switch {
	case r >= '0' && r <= '9':
		return true
	case r < 0x80:
		return false
	case r == zwnj || r == zwj:
		return true
	}
	return unicode.In(r, identPartTables...)
}

// IsWhitespace reports tab, vertical tab, form feed, space, no-break space,
// byte order mark and any other Unicode space separator (Zs).
func IsWhitespace(r rune) bool {
	switch r {
	case '\t', '\v', '\f', ' ', '\u00a0', '\ufeff':
		return true
	}
	return r >= 0x80 && unicode.Is(unicode.Zs, r)
}

// IsLineTerminator reports LF, CR, LS (U+2028) and PS (U+2029).
func IsLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}

func IsDecimal(b byte) bool { return b >= '0' && b <= '9' }

func IsHex(b byte) bool {
	return (b >= '0' && b <= '9') || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}
