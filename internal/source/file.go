package source

import (
	"crypto/sha256"
	"fmt"

	"fortio.org/safecast"
)

// NewFile normalizes raw bytes (BOM, CRLF) and builds the line index.
// The caller owns the id space; the collection hands out dense ids.
func NewFile(id FileID, path string, raw []byte, flags FileFlags) *File {
	content, hadBOM := removeBOM(raw)
	content, hadCRLF := normalizeCRLF(content)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return &File{
		ID:         id,
		Path:       path,
		Content:    content,
		LineStarts: LineStarts(content),
		Hash:       sha256.Sum256(content),
		Flags:      flags,
	}
}

// Len returns the content length as a span offset.
func (f *File) Len() uint32 {
	n, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("file content overflow: %w", err))
	}
	return n
}

// Position converts a byte offset into a 1-based line/column pair.
func (f *File) Position(off uint32) LineCol {
	return toLineCol(f.LineStarts, off)
}

// Offset converts a 1-based line/column pair back into a byte offset.
// Out-of-range positions are clamped to the file bounds.
func (f *File) Offset(pos LineCol) uint32 {
	return toOffset(f.LineStarts, pos, f.Len())
}

// Resolve converts a span into start and end positions.
func (f *File) Resolve(span Span) (start, end LineCol) {
	return f.Position(span.Start), f.Position(span.End)
}

// Text returns the source text covered by span.
func (f *File) Text(span Span) string {
	limit := f.Len()
	start, end := min(span.Start, limit), min(span.End, limit)
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}

// GetLine returns the line with the given 1-based number without its newline.
// Missing lines yield an empty string.
func (f *File) GetLine(lineNum uint32) string {
	if lineNum == 0 || int(lineNum) > len(f.LineStarts) {
		return ""
	}
	start := f.LineStarts[lineNum-1]
	end := f.Len()
	if int(lineNum) < len(f.LineStarts) {
		end = f.LineStarts[lineNum] - 1
	}
	if start >= end {
		return ""
	}
	return string(f.Content[start:end])
}
