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
	// FileHadBOM is set when the content starts with a UTF-8 byte order mark.
	// The mark is kept in Content so trees stay lossless.
	FileHadBOM
	// FileHasCRLF is set when at least one \r\n pair is present.
	FileHasCRLF
)

// File captures metadata and content for a single source file.
// Content is stored verbatim.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based, in bytes
}
