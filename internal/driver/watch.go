package driver

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"strata/internal/project"
	"strata/internal/trace"
)

// SourceExt is the extension of source files.
const SourceExt = ".src"

// WatchOptions configure Watch.
type WatchOptions struct {
	Check Options
	// Debounce is the quiet period before a rerun; 250ms when zero.
	Debounce time.Duration
	// OnResults receives every run, including the first. changed is empty
	// for the first run.
	OnResults func(results []*Result, changed []string)
}

// Session remembers the last run of a watch so that unchanged programs
// are not reported twice.
type Session struct {
	entries []string
	opts    Options
	last    map[string]project.Digest
}

// NewSession prepares a session for entries.
func NewSession(entries []string, opts Options) *Session {
	return &Session{entries: entries, opts: opts, last: make(map[string]project.Digest)}
}

// Run checks every entry with fresh collections. fresh is false when no
// entry changed since the previous run.
func (s *Session) Run(ctx context.Context) (results []*Result, fresh bool, err error) {
	results, err = Check(ctx, s.entries, s.opts)
	if err != nil {
		return nil, false, err
	}
	for _, r := range results {
		prev, seen := s.last[r.Entry]
		// entries that did not load have a zero fingerprint and always rerun
		if !seen || prev != r.Fingerprint || r.Fingerprint == (project.Digest{}) {
			fresh = true
		}
		s.last[r.Entry] = r.Fingerprint
	}
	return results, fresh, nil
}

// Dirs lists the directories holding files of the last results, including
// files that failed to load.
func Dirs(results []*Result) []string {
	seen := make(map[string]bool)
	var dirs []string
	add := func(path string) {
		if path == "" {
			return
		}
		dir := filepath.Dir(path)
		if !seen[dir] {
			seen[dir] = true
			dirs = append(dirs, dir)
		}
	}
	for _, r := range results {
		if r.Collection == nil {
			add(r.Entry)
			continue
		}
		for _, c := range r.Collection.Compilations() {
			add(c.Path())
		}
		for _, f := range r.Collection.Failures() {
			add(f.Path)
		}
	}
	slices.Sort(dirs)
	return dirs
}

func relevant(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") {
		return false
	}
	return filepath.Ext(base) == SourceExt || base == project.ManifestName
}

// Watch checks entries, then rechecks them whenever a source file in a
// watched directory changes. It returns when ctx is done.
func Watch(ctx context.Context, entries []string, opts WatchOptions) error {
	tracer := trace.FromContext(ctx)
	session := NewSession(entries, opts.Check)
	results, _, err := session.Run(ctx)
	if err != nil {
		return err
	}
	if opts.OnResults != nil {
		opts.OnResults(results, nil)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	sync := func(results []*Result) {
		for _, dir := range Dirs(results) {
			if watched[dir] {
				continue
			}
			// a directory that does not exist yet is picked up on a later run
			if err := watcher.Add(dir); err == nil {
				watched[dir] = true
			}
		}
	}
	sync(results)

	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}
	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	pending := false
	pendingPaths := map[string]bool{}

	resetDebounce := func(path string) {
		pendingPaths[path] = true
		if pending {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		}
		timer.Reset(debounce)
		pending = true
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path := filepath.Clean(event.Name)
			if !relevant(path) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			resetDebounce(path)
		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			changed := make([]string, 0, len(pendingPaths))
			for path := range pendingPaths {
				changed = append(changed, path)
			}
			slices.Sort(changed)
			pendingPaths = map[string]bool{}

			trace.Point(tracer, trace.ScopeDriver, "rerun", strings.Join(changed, ","), 0)
			results, fresh, err := session.Run(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			sync(results)
			if fresh && opts.OnResults != nil {
				opts.OnResults(results, changed)
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return watchErr
		}
	}
}
