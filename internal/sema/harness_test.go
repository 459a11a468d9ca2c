package sema_test

import (
	"testing"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/parser"
	"strata/internal/sema"
	"strata/internal/source"
	"strata/internal/symbols"
	"strata/internal/types/catalog"
)

type fixture struct {
	tree     *ast.Tree
	bindings *symbols.Bindings
	tm       *sema.TypeManager
}

func check(t *testing.T, src string, modules sema.ModuleResolver) fixture {
	t.Helper()
	file := source.NewFile(1, "main.src", []byte(src), source.FileVirtual)
	bag := diag.NewBag(0)
	tree := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.Len() != 0 {
		t.Fatalf("unexpected parse diagnostics: %v", bag.Items())
	}
	bindings := symbols.Bind(tree, symbols.BindOptions{Functions: sema.LookupFunction})
	ctx := symbols.NewContext[*sema.TypeManager](bindings)
	ctx.Unlock()
	tm := sema.NewTypeManager(ctx, tree, sema.Options{
		Resources: catalog.Default(),
		Modules:   modules,
	})
	return fixture{tree: tree, bindings: bindings, tm: tm}
}

func (f fixture) decl(t *testing.T, name string) ast.NodeID {
	t.Helper()
	sym, ok := f.bindings.Lookup(name)
	if !ok {
		t.Fatalf("no declaration %q", name)
	}
	s, _ := f.bindings.Symbol(sym)
	return s.Decl
}

func (f fixture) value(t *testing.T, name string) ast.NodeID {
	t.Helper()
	d, _ := f.tree.Decl(f.decl(t, name))
	return d.Value
}

func diagCodes(ds []diag.Diagnostic) []diag.Code {
	out := make([]diag.Code, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Code)
	}
	return out
}

func expectCodes(t *testing.T, ds []diag.Diagnostic, want ...diag.Code) {
	t.Helper()
	got := diagCodes(ds)
	if len(got) != len(want) {
		for _, d := range ds {
			t.Logf("%s: %s", d.Code.ID(), d.Message)
		}
		t.Fatalf("codes: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("code %d: got %v, want %v (all %v)", i, got[i], want[i], got)
		}
	}
}

// staticModules resolves every module declaration to the same interface.
func staticModules(mi sema.ModuleInterface) sema.ModuleResolver {
	return sema.ModuleResolverFunc(func(ast.NodeID) sema.ModuleResolution {
		return sema.ModuleResolution{Interface: mi}
	})
}
