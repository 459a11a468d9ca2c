package parser_test

import (
	"testing"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/parser"
	"strata/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.Tree, *diag.Bag) {
	t.Helper()
	file := source.NewFile(1, "test.src", []byte(src), source.FileVirtual)
	bag := diag.NewBag(0)
	tree := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	return tree, bag
}

func parseOK(t *testing.T, src string) *ast.Tree {
	t.Helper()
	tree, bag := parseSource(t, src)
	if bag.Len() != 0 {
		for _, d := range bag.Items() {
			t.Logf("%s: %s", d.Code.ID(), d.Message)
		}
		t.Fatalf("expected no diagnostics, got %d", bag.Len())
	}
	return tree
}

func hasCode(bag *diag.Bag, code diag.Code) bool {
	for _, d := range bag.Items() {
		if d.Code == code {
			return true
		}
	}
	return false
}

func declValue(t *testing.T, tree *ast.Tree, idx int) ast.NodeID {
	t.Helper()
	if idx >= len(tree.Decls) {
		t.Fatalf("declaration %d missing, have %d", idx, len(tree.Decls))
	}
	d, ok := tree.Decl(tree.Decls[idx])
	if !ok {
		t.Fatalf("node %d is not a declaration", tree.Decls[idx])
	}
	return d.Value
}
