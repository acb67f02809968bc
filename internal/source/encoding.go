package source

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding is assumed when no character encoding is declared.
const DefaultEncoding = "utf-8"

// LookupEncoding resolves an IANA character set name ("utf-8", "UTF-16LE",
// "iso-8859-1", "windows-1252", ...). Empty name means UTF-8.
func LookupEncoding(name string) (encoding.Encoding, string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultEncoding
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, "", fmt.Errorf("unknown encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, "", fmt.Errorf("unsupported encoding %q", name)
	}
	canonical, err := ianaindex.IANA.Name(enc)
	if err != nil {
		canonical = strings.ToLower(name)
	}
	return enc, canonical, nil
}

// Decode converts content from the named encoding into UTF-8. The returned
// flags report whether the text starts with a BOM or bytes were transcoded.
func Decode(content []byte, name string) ([]byte, string, FileFlags, error) {
	enc, canonical, err := LookupEncoding(name)
	if err != nil {
		return nil, "", 0, err
	}
	var flags FileFlags
	if enc != unicode.UTF8 {
		out, err := enc.NewDecoder().Bytes(content)
		if err != nil {
			return nil, "", 0, fmt.Errorf("decode %s: %w", canonical, err)
		}
		content = out
		flags |= FileTranscoded
	}
	if hasBOM(content) {
		flags |= FileHadBOM
	}
	return content, canonical, flags, nil
}
