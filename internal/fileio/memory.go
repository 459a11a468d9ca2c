package fileio

import (
	"fmt"
	"path"
	"strings"
	"sync"
)

// MemoryResolver serves files from memory. Paths are slash separated and
// rooted at "/"; relative paths are taken against the root. It counts
// reads per path so callers can observe caching.
type MemoryResolver struct {
	mu    sync.Mutex
	files map[string][]byte
	reads map[string]int
}

var _ Resolver = (*MemoryResolver)(nil)

// NewMemoryResolver creates a resolver holding files (path -> content).
func NewMemoryResolver(files map[string]string) *MemoryResolver {
	r := &MemoryResolver{
		files: make(map[string][]byte, len(files)),
		reads: make(map[string]int),
	}
	for p, content := range files {
		r.Set(p, content)
	}
	return r
}

// Set adds or replaces a file.
func (r *MemoryResolver) Set(p, content string) {
	norm, err := r.Normalize(p)
	if err != nil {
		panic(fmt.Errorf("memory resolver: %w", err))
	}
	r.mu.Lock()
	r.files[norm] = []byte(content)
	r.mu.Unlock()
}

// Reads reports how many times p was read.
func (r *MemoryResolver) Reads(p string) int {
	norm, err := r.Normalize(p)
	if err != nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reads[norm]
}

func (r *MemoryResolver) Normalize(p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", ErrEmptyPath
	}
	return path.Clean("/" + strings.ReplaceAll(p, "\\", "/")), nil
}

func (r *MemoryResolver) Read(p string) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads[p]++
	content, ok := r.files[p]
	if !ok {
		return nil, fmt.Errorf("%s: %w", p, ErrNotFound)
	}
	return content, nil
}

func (r *MemoryResolver) ResolveModulePath(parent, ref string) (string, error) {
	if strings.TrimSpace(ref) == "" {
		return "", ErrEmptyPath
	}
	if strings.HasPrefix(ref, "/") {
		return r.Normalize(ref)
	}
	return r.Normalize(path.Join(path.Dir(parent), ref))
}
