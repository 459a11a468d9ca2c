// Package diagfmt renders diagnostics for terminals and tools.
package diagfmt

import (
	"path/filepath"

	"strata/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto prints paths relative to BaseDir when they lie inside it.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// Files finds the source file a span refers to.
type Files interface {
	File(id source.FileID) *source.File
}

// PrettyOpts configures Pretty.
type PrettyOpts struct {
	Color     bool
	Context   uint8 // extra source lines shown above the primary line
	PathMode  PathMode
	BaseDir   string
	ShowNotes bool
}

// JSONOpts configures JSON and Msgpack.
type JSONOpts struct {
	Entry            string // labels the output when several entries are checked
	IncludePositions bool
	PathMode         PathMode
	BaseDir          string
	Max              int // 0 means all
	IncludeNotes     bool
}

func displayPath(f *source.File, mode PathMode, baseDir string) string {
	switch mode {
	case PathModeAbsolute:
		return f.Path
	case PathModeBasename:
		return filepath.Base(f.Path)
	case PathModeRelative, PathModeAuto:
		if baseDir == "" {
			return f.Path
		}
		if rel, err := source.RelativePath(f.Path, baseDir); err == nil {
			return rel
		}
	}
	return f.Path
}
