package source

import (
	"path/filepath"
	"sort"
)

// hasBOM reports a leading UTF-8 byte order mark. The mark stays in the
// content and is lexed as whitespace.
func hasBOM(content []byte) bool {
	return len(content) >= 3 && content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF
}

// buildLineIndex records the start offset of every line but the first.
// Line terminators: \n, \r\n, lone \r, U+2028 and U+2029.
func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, len(content)/32+1)
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '\n':
			out = append(out, uint32(i+1))
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				i++
			}
			out = append(out, uint32(i+1))
		case 0xE2:
			// U+2028 / U+2029 are E2 80 A8 / E2 80 A9
			if i+2 < len(content) && content[i+1] == 0x80 && (content[i+2] == 0xA8 || content[i+2] == 0xA9) {
				i += 2
				out = append(out, uint32(i+1))
			}
		}
	}
	return out
}

func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// number of line starts at or before off
	n := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] > off })
	if n == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}
	return LineCol{Line: uint32(n + 1), Col: off - lineIdx[n-1] + 1}
}

func normalizePath(p string) string {
	// единый вид в кроссплатформенных дифах
	return filepath.ToSlash(filepath.Clean(p))
}
