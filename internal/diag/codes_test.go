package diag

import (
	"testing"

	"strata/internal/source"
)

func TestCodesHaveUniqueIDsAndTitles(t *testing.T) {
	ids := make(map[string]Code)
	for _, c := range Codes() {
		id := c.ID()
		if prev, dup := ids[id]; dup {
			t.Fatalf("code %d and %d share id %s", prev, c, id)
		}
		ids[id] = c
		if c != UnknownCode && c.Title() == UnknownCode.Title() {
			t.Fatalf("code %s has no description", id)
		}
	}
	if len(ids) < 40 {
		t.Fatalf("expected the full code table, got %d codes", len(ids))
	}
}

func TestModuleResolutionCodesAreDistinct(t *testing.T) {
	codes := []Code{SemaModulePathMissing, SemaModulePathInterpolation, SemaModuleLoadFailed}
	seen := map[Code]bool{}
	for _, c := range codes {
		if seen[c] {
			t.Fatalf("code %s reused", c.ID())
		}
		seen[c] = true
	}
}

func TestBagSortDedupAndLimit(t *testing.T) {
	bag := NewBag(3)
	b := Diagnostic{Severity: SevWarning, Code: SemaTypeMismatch, Primary: source.Span{File: 1, Start: 9, End: 10}, Message: "b"}
	a := Diagnostic{Severity: SevError, Code: SemaTypeMismatch, Primary: source.Span{File: 1, Start: 2, End: 3}, Message: "a"}
	if !bag.Add(b) || !bag.Add(a) || !bag.Add(a) {
		t.Fatalf("expected first three adds to succeed")
	}
	if bag.Add(a) {
		t.Fatalf("expected limit to reject the fourth diagnostic")
	}

	bag.Sort()
	bag.Dedup()
	items := bag.Items()
	if len(items) != 2 || items[0].Message != "a" || items[1].Message != "b" {
		t.Fatalf("unexpected bag contents %+v", items)
	}
	if !bag.HasErrors() || !bag.HasWarnings() {
		t.Fatalf("expected error and warning flags")
	}

	bag.Filter(func(d Diagnostic) bool { return d.Severity < SevError })
	if bag.HasErrors() || bag.Len() != 1 {
		t.Fatalf("filter left %+v", bag.Items())
	}
}

func TestDedupReporterForwardsOnce(t *testing.T) {
	sink := &SliceReporter{}
	r := NewDedupReporter(sink)
	sp := source.Span{File: 0, Start: 1, End: 4}
	ReportError(r, SemaUnresolvedSymbol, sp, "name 'x' does not exist").Emit()
	ReportError(r, SemaUnresolvedSymbol, sp, "name 'x' does not exist").Emit()
	ReportWarning(r, SemaUnresolvedSymbol, sp, "name 'x' does not exist").Emit()
	if len(sink.Items) != 2 {
		t.Fatalf("expected 2 forwarded diagnostics, got %d", len(sink.Items))
	}
}

func TestSeverityPromote(t *testing.T) {
	tests := []struct {
		sev     Severity
		promote bool
		want    Severity
	}{
		{SevWarning, true, SevError},
		{SevWarning, false, SevWarning},
		{SevInfo, true, SevInfo},
		{SevError, false, SevError},
	}
	for _, tt := range tests {
		if got := tt.sev.Promote(tt.promote); got != tt.want {
			t.Fatalf("%v.Promote(%v) = %v, want %v", tt.sev, tt.promote, got, tt.want)
		}
	}
	if Severity(9).String() != "UNKNOWN" || SevWarning.String() != "WARNING" {
		t.Fatalf("unexpected severity names")
	}
}
