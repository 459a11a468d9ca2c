// Package testkit holds checks shared by parser, fuzz and collection tests.
package testkit

import (
	"fmt"

	"strata/internal/ast"
	"strata/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// the tree span covers the whole file, every node span lies inside the file
// and refers to it, and declarations appear in source order.
func CheckSpanInvariants(tree *ast.Tree, f *source.File) error {
	if tree == nil || f == nil {
		return fmt.Errorf("nil tree or file")
	}
	if tree.File != f.ID || tree.Span.File != f.ID {
		return fmt.Errorf("tree points to different file id: got=%d want=%d", tree.Span.File, f.ID)
	}
	if tree.Span.Start != 0 || tree.Span.End != f.Len() {
		return fmt.Errorf("tree span %d..%d does not cover the file (%d bytes)", tree.Span.Start, tree.Span.End, f.Len())
	}

	for i := uint32(1); i <= tree.NodeCount(); i++ {
		id := ast.NodeID(i)
		sp := tree.SpanOf(id)
		if sp.File != f.ID {
			return fmt.Errorf("node %d (%s) points to file %d", id, tree.Kind(id), sp.File)
		}
		if sp.Start > sp.End || sp.End > f.Len() {
			return fmt.Errorf("node %d (%s) span %d..%d out of bounds", id, tree.Kind(id), sp.Start, sp.End)
		}
	}

	var prev source.Span
	for i, d := range tree.Decls {
		sp := tree.SpanOf(d)
		if i > 0 && sp.Start < prev.Start {
			return fmt.Errorf("declaration %d starts at %d before the previous one at %d", i, sp.Start, prev.Start)
		}
		prev = sp
	}
	return nil
}
