// Package fileio provides the file resolvers the compilation collection
// loads sources through.
package fileio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"strata/internal/source"
)

var (
	// ErrEmptyPath indicates an empty path or module reference.
	ErrEmptyPath = errors.New("empty path")
	// ErrNotFound indicates a file that does not exist.
	ErrNotFound = errors.New("file not found")
)

// Resolver maps paths to content. Normalized paths are the identity of a
// compilation; Read is only ever called with normalized paths.
type Resolver interface {
	// Normalize returns the canonical absolute form of path.
	Normalize(path string) (string, error)
	// Read returns the content of a normalized path.
	Read(path string) ([]byte, error)
	// ResolveModulePath resolves ref as written in a module declaration of
	// the file parent. Absolute references pass through; relative ones are
	// taken against the directory of parent.
	ResolveModulePath(parent, ref string) (string, error)
}

// OSResolver reads files from the local file system.
type OSResolver struct{}

var _ Resolver = OSResolver{}

func (OSResolver) Normalize(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", ErrEmptyPath
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return source.NormalizePath(abs), nil
}

func (OSResolver) Read(path string) ([]byte, error) {
	// #nosec G304 -- path comes from the user's module graph
	content, err := os.ReadFile(filepath.FromSlash(path))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	return content, err
}

func (r OSResolver) ResolveModulePath(parent, ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", ErrEmptyPath
	}
	native := filepath.FromSlash(ref)
	if filepath.IsAbs(native) {
		return r.Normalize(native)
	}
	return r.Normalize(filepath.Join(filepath.Dir(filepath.FromSlash(parent)), native))
}
