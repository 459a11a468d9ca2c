package fuzztests

import (
	"testing"
	"time"

	"strata/internal/diag"
	"strata/internal/parser"
	"strata/internal/source"
	"strata/internal/testkit"
)

// parseTimeout is the maximum time allowed for parsing a single input.
const parseTimeout = 5 * time.Second

func FuzzParserBuildsTree(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("var x = {\n  a: [1, 2\n"))
	f.Add([]byte("module m '${'"))
	f.Add([]byte("var s = '${'${'${1}'}'}'\n"))
	f.Add([]byte("((((((((((1"))

	f.Fuzz(func(t *testing.T, input []byte) {
		file := source.NewFile(1, "/fuzz.src", clampInput(input), 0)
		done := make(chan error, 1)
		go func() {
			tree := parser.Parse(file, diag.BagReporter{Bag: diag.NewBag(128)})
			done <- testkit.CheckSpanInvariants(tree, file)
		}()
		select {
		case err := <-done:
			if err != nil {
				t.Fatalf("span invariants: %v", err)
			}
		case <-time.After(parseTimeout):
			t.Fatalf("parser did not finish within %v (input %d bytes)", parseTimeout, len(input))
		}
	})
}
