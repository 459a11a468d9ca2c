// Package project locates and reads the strata.toml manifest.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// ManifestName is the file name searched for by FindManifest.
const ManifestName = "strata.toml"

var (
	// ErrProjectSectionMissing indicates a manifest without [project].
	ErrProjectSectionMissing = errors.New("missing [project]")
	// ErrEntryMissing indicates a manifest without [project].entry.
	ErrEntryMissing = errors.New("missing [project].entry")
	// ErrInvalidMaxDiagnostics indicates a negative [check].max-diagnostics.
	ErrInvalidMaxDiagnostics = errors.New("[check].max-diagnostics must not be negative")
)

// Manifest is a decoded strata.toml. Paths are absolute.
type Manifest struct {
	Path string
	Root string

	Entries          []string
	MaxDiagnostics   int
	WarningsAsErrors bool
	Catalog          string // empty: built-in resource types only
}

type manifestFile struct {
	Project struct {
		Entry   string   `toml:"entry"`
		Entries []string `toml:"entries"`
	} `toml:"project"`
	Check struct {
		MaxDiagnostics   int  `toml:"max-diagnostics"`
		WarningsAsErrors bool `toml:"warnings-as-errors"`
	} `toml:"check"`
	Types struct {
		Catalog string `toml:"catalog"`
	} `toml:"types"`
}

// FindManifest walks up from startDir to locate strata.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// LoadManifest decodes the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	var f manifestFile
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return nil, fmt.Errorf("%s: %w", path, ErrProjectSectionMissing)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	m := &Manifest{
		Path:             abs,
		Root:             filepath.Dir(abs),
		MaxDiagnostics:   f.Check.MaxDiagnostics,
		WarningsAsErrors: f.Check.WarningsAsErrors,
	}
	if m.MaxDiagnostics < 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidMaxDiagnostics)
	}

	var entries []string
	if meta.IsDefined("project", "entry") {
		entries = append(entries, f.Project.Entry)
	}
	if meta.IsDefined("project", "entries") {
		entries = append(entries, f.Project.Entries...)
	}
	for _, e := range entries {
		if e = strings.TrimSpace(e); e != "" {
			m.Entries = append(m.Entries, m.resolve(e))
		}
	}
	if len(m.Entries) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEntryMissing)
	}
	if c := strings.TrimSpace(f.Types.Catalog); c != "" {
		m.Catalog = m.resolve(c)
	}
	return m, nil
}

// FindAndLoad locates the manifest above startDir and loads it.
// ok is false when there is none.
func FindAndLoad(startDir string) (m *Manifest, ok bool, err error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err = LoadManifest(path)
	return m, err == nil, err
}

func (m *Manifest) resolve(p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(m.Root, p)
}
