// Package driver runs checks over one or more entry files.
package driver

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"strata/internal/compile"
	"strata/internal/diag"
	"strata/internal/fileio"
	"strata/internal/observ"
	"strata/internal/project"
	"strata/internal/source"
	"strata/internal/trace"
	"strata/internal/types"
)

// Options configure a check.
type Options struct {
	// Resolver loads files; the local file system when nil.
	Resolver fileio.Resolver
	// Types describes resource types.
	Types            types.ResourceTypeProvider
	MaxDiagnostics   int // 0 means no limit
	WarningsAsErrors bool
	// Jobs bounds the number of entries checked at once; GOMAXPROCS when 0.
	Jobs int
	// Progress receives an event whenever an entry changes stage.
	Progress ProgressSink
}

// Result is the outcome of checking one entry file.
type Result struct {
	Entry string
	// Collection is nil when the entry path could not be normalized.
	Collection  *compile.Collection
	Diagnostics []diag.Diagnostic // sorted, at most MaxDiagnostics
	Dropped     int
	Errors      int
	Warnings    int
	Failed      bool
	Fingerprint project.Digest
	Timer       *observ.Timer
}

// File implements diagfmt.Files.
func (r *Result) File(id source.FileID) *source.File {
	if r.Collection == nil {
		return nil
	}
	return r.Collection.File(id)
}

// Check checks every entry in its own collection. Entries run in parallel;
// each collection stays on the goroutine that created it. The returned
// slice is in the order of entries. Only cancellation of ctx is an error.
func Check(ctx context.Context, entries []string, opts Options) ([]*Result, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "check", 0).WithExtra("entries", fmt.Sprint(len(entries)))
	defer span.End("")

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if opts.Progress == nil {
		opts.Progress = nopSink{}
	}
	for _, entry := range entries {
		opts.Progress.OnEvent(Event{Entry: entry, Status: StatusQueued})
	}
	results := make([]*Result, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(jobs, len(entries))))
	for i, entry := range entries {
		i, entry := i, entry
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = checkOne(entry, opts, tracer)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Failed reports whether any result failed.
func Failed(results []*Result) bool {
	for _, r := range results {
		if r.Failed {
			return true
		}
	}
	return false
}

func checkOne(entry string, opts Options, tracer trace.Tracer) *Result {
	res := &Result{Entry: entry, Timer: observ.NewTimer()}
	started := time.Now()
	report := func(stage Stage, status Status) {
		ev := Event{Entry: entry, Stage: stage, Status: status, Elapsed: time.Since(started)}
		if res.Collection != nil {
			ev.Files = len(res.Collection.Compilations())
		}
		opts.Progress.OnEvent(ev)
	}
	bag := diag.NewBag(opts.MaxDiagnostics)
	add := func(d diag.Diagnostic) {
		d.Severity = d.Severity.Promote(opts.WarningsAsErrors)
		switch d.Severity {
		case diag.SevError:
			res.Errors++
		case diag.SevWarning:
			res.Warnings++
		}
		if !bag.Add(d) {
			res.Dropped++
		}
	}
	defer func() {
		bag.Sort()
		res.Diagnostics = bag.Items()
		res.Failed = res.Errors > 0
		if res.Failed {
			report(StageAnalyze, StatusError)
		} else {
			report(StageAnalyze, StatusDone)
		}
	}()

	report(StageLoad, StatusWorking)
	var coll *compile.Collection
	var err error
	res.Timer.Time("load", func() string {
		coll, err = compile.Create(entry, compile.Options{Resolver: opts.Resolver, Types: opts.Types, Tracer: tracer})
		if err != nil {
			return ""
		}
		return fmt.Sprintf("%d files", coll.Len())
	})
	if err != nil {
		add(diag.NewError(diag.ProjEntryFailed, source.Span{}, err.Error()))
		return res
	}
	res.Collection = coll
	res.Fingerprint = fingerprint(coll)

	if _, err := coll.Main(); err != nil {
		add(diag.NewError(diag.ProjEntryFailed, source.Span{}, fmt.Sprintf("cannot check %s: %v", entry, err)))
		return res
	}
	report(StageAnalyze, StatusWorking)
	res.Timer.Time("analyze", func() string {
		coll.EmitDiagnosticsAndCheckSuccess(func(_ *compile.Compilation, d diag.Diagnostic) {
			add(d)
		})
		return fmt.Sprintf("%d diagnostics", res.Errors+res.Warnings)
	})
	return res
}

func fingerprint(coll *compile.Collection) project.Digest {
	comps := coll.Compilations()
	hashes := make([]project.Digest, 0, len(comps))
	for _, c := range comps {
		hashes = append(hashes, project.Digest(c.File().Hash))
	}
	return project.Fingerprint(hashes)
}
