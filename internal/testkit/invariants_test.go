package testkit

import (
	"testing"

	"strata/internal/diag"
	"strata/internal/parser"
	"strata/internal/source"
)

func TestSpanInvariantsHoldForParsedFiles(t *testing.T) {
	inputs := []string{
		"",
		"var x = 1\n",
		"param p string = 'a'\nvar s = '${p}-x'\noutput o string = s\n",
		"resource r 'Web/sites@2022-09-01' = {\n  name: 'r'\n  location: [1, 2\n",
		"module m './m.src' = {\n  name: \n}\nvar = = =\n",
	}
	for _, in := range inputs {
		f := source.NewFile(1, "/t.src", []byte(in), 0)
		tree := parser.Parse(f, &diag.SliceReporter{})
		if err := CheckSpanInvariants(tree, f); err != nil {
			t.Fatalf("%q: %v", in, err)
		}
	}
}

func TestSpanInvariantsRejectForeignTree(t *testing.T) {
	f := source.NewFile(1, "/a.src", []byte("var x = 1\n"), 0)
	g := source.NewFile(2, "/b.src", []byte("var x = 1\n"), 0)
	tree := parser.Parse(f, nil)
	if err := CheckSpanInvariants(tree, g); err == nil {
		t.Fatalf("a tree of another file must be rejected")
	}
}
