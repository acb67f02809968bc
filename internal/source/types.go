package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM indicates the decoded text starts with a byte order mark.
	FileHadBOM
	// FileTranscoded indicates the content was converted to UTF-8 from another encoding.
	FileTranscoded
)

// File captures metadata and content for a single source file.
// Content is always UTF-8 and is never normalised otherwise, so every byte
// of the original text survives lexing.
type File struct {
	ID       FileID
	Path     string
	Encoding string
	Content  []byte
	// LineIdx holds the offset of the first byte of every line after the first.
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
