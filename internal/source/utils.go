package source

import (
	"fmt"
	"path/filepath"
	"slices"

	"fortio.org/safecast"
)

// normalizeCRLF replaces every \r\n with \n and leaves lone \r untouched.
// The flag reports whether anything was replaced.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}

	out := make([]byte, 0, len(content))
	changed := false

	i := 0
	for i < len(content) {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			out = append(out, '\n')
			i += 2
			changed = true
		} else {
			out = append(out, content[i])
			i++
		}
	}
	return out, changed
}

func removeBOM(content []byte) ([]byte, bool) {
	if len(content) < 3 {
		return content, false
	}

	if content[0] == 0xEF && content[1] == 0xBB && content[2] == 0xBF {
		return content[3:], true
	}

	return content, false
}

// LineStarts returns the offset of the first byte of every line.
// The result always starts with 0, so an empty text has one line.
func LineStarts(content []byte) []uint32 {
	out := make([]uint32, 1, 1+len(content)/32)
	for i, b := range content {
		if b != '\n' {
			continue
		}
		next, err := safecast.Conv[uint32](i + 1)
		if err != nil {
			panic(fmt.Errorf("line offset overflow: %w", err))
		}
		out = append(out, next)
	}
	return out
}

func toLineCol(lineStarts []uint32, off uint32) LineCol {
	if len(lineStarts) == 0 {
		return LineCol{Line: 1, Col: off + 1}
	}

	// largest i with lineStarts[i] <= off
	lo, hi := 0, len(lineStarts)-1
	for lo <= hi {
		mid := (lo + hi) >> 1
		if lineStarts[mid] <= off {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	if hi < 0 {
		hi = 0
	}
	line, err := safecast.Conv[uint32](hi + 1)
	if err != nil {
		panic(fmt.Errorf("line number overflow: %w", err))
	}
	return LineCol{Line: line, Col: off - lineStarts[hi] + 1}
}

func toOffset(lineStarts []uint32, pos LineCol, limit uint32) uint32 {
	if len(lineStarts) == 0 || pos.Line == 0 {
		return 0
	}
	if int(pos.Line) > len(lineStarts) {
		return limit
	}
	lineStart := lineStarts[pos.Line-1]
	lineEnd := limit
	if int(pos.Line) < len(lineStarts) {
		lineEnd = lineStarts[pos.Line] - 1
	}
	col := pos.Col
	if col == 0 {
		col = 1
	}
	off := lineStart + col - 1
	if off > lineEnd {
		return lineEnd
	}
	return off
}

// NormalizePath returns the slash-separated clean form used for display and keys.
func NormalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// RelativePath returns target relative to baseDir, falling back to the
// normalized absolute path when target lies outside baseDir.
func RelativePath(target, baseDir string) (string, error) {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil {
		return NormalizePath(absTarget), nil
	}
	if rel == ".." || len(rel) > 2 && rel[:3] == ".."+string(filepath.Separator) {
		return NormalizePath(absTarget), nil
	}
	return NormalizePath(rel), nil
}
