package observ

import (
	"strings"
	"testing"
)

func TestTimerReportAndMerge(t *testing.T) {
	outer := NewTimer()
	outer.Time("discover", func() string { return "3 files" })

	inner := NewTimer()
	idx := inner.Begin("typecheck")
	inner.End(idx, "")
	inner.End(42, "ignored")
	outer.Merge("/main.src", inner)

	report := outer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %d", len(report.Phases))
	}
	if report.Phases[0].Note != "3 files" || report.Phases[1].Name != "/main.src: typecheck" {
		t.Fatalf("unexpected phases %+v", report.Phases)
	}
	summary := outer.Summary()
	if !strings.Contains(summary, "discover") || !strings.Contains(summary, "total") {
		t.Fatalf("summary missing rows:\n%s", summary)
	}
	if (&Timer{}).Report().Phases != nil {
		t.Fatalf("empty timer must report no phases")
	}
}
