package token

import "testing"

func TestKindNamesCoverAllKinds(t *testing.T) {
	for k := Invalid; k <= OrOr; k++ {
		if k.String() == "unknown" {
			t.Fatalf("kind %d has no name", k)
		}
	}
}

func TestLookupKeyword(t *testing.T) {
	if k, ok := LookupKeyword("module"); !ok || k != KwModule {
		t.Fatalf("LookupKeyword(module) = %v, %v", k, ok)
	}
	if _, ok := LookupKeyword("Module"); ok {
		t.Fatalf("keywords are case sensitive")
	}
}
