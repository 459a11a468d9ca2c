package source

type (
	// FileID identifies a source file inside one compilation collection.
	FileID uint32
	// FileFlags encodes metadata about a source file.
	FileFlags uint8
)

const (
	// FileVirtual indicates the file was added from memory (editor buffer, test).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
)

// File captures metadata and content for a single source file.
type File struct {
	ID         FileID
	Path       string
	Content    []byte
	LineStarts []uint32 // offsets of the first byte of every line; LineStarts[0] == 0
	Hash       [32]byte
	Flags      FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
