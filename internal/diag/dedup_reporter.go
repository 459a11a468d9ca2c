package diag

// DedupReporter forwards each finding to next once. Parser recovery can
// reach the same bad token from several productions; only the first report
// survives.
type DedupReporter struct {
	next Reporter
	seen map[identity]struct{}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[identity]struct{})}
}

func (r *DedupReporter) Report(d Diagnostic) {
	if r == nil || r.next == nil {
		return
	}
	key := d.identity()
	if _, ok := r.seen[key]; ok {
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(d)
}
