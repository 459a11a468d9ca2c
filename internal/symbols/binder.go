package symbols

import (
	"fmt"
	"slices"
	"strings"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/project/dag"
)

// FunctionLookup resolves a builtin function name to its canonical spelling.
type FunctionLookup func(name string) (canonical string, ok bool)

type BindOptions struct {
	Functions FunctionLookup
}

// Bind resolves every name in tree and detects declaration cycles.
func Bind(tree *ast.Tree, opts BindOptions) *Bindings {
	fb := fileBinder{
		tree:  tree,
		b:     NewBuilder(tree.NodeCount()),
		funcs: opts.Functions,
		deps:  make(map[SymbolID][]SymbolID),
	}
	fb.declareAll()
	fb.bindAll()
	fb.detectCycles()
	return fb.b.Finish()
}

type fileBinder struct {
	tree  *ast.Tree
	b     *Builder
	funcs FunctionLookup
	// deps holds, per declaration symbol, the declarations its value refers to.
	deps map[SymbolID][]SymbolID
}

func (fb *fileBinder) lookupFunction(name string) (string, bool) {
	if fb.funcs == nil {
		return "", false
	}
	return fb.funcs(name)
}

func (fb *fileBinder) declareAll() {
	rep := fb.b.Reporter()
	for _, id := range fb.tree.Decls {
		d, ok := fb.tree.Decl(id)
		if !ok || d.Name == "" {
			continue
		}
		sym := Symbol{
			Name: d.Name,
			Kind: kindForDecl(fb.tree.Kind(id)),
			Decl: id,
			Span: d.NameSpan,
		}
		symID, first := fb.b.Declare(sym)
		if !first {
			prev, _ := fb.b.Lookup(d.Name)
			msg := fmt.Sprintf("identifier %q is declared multiple times", d.Name)
			diag.ReportError(rep, diag.SemaDuplicateSymbol, d.NameSpan, msg).
				WithNote(fb.b.Symbol(prev).Span, "first declared here").
				Emit()
			continue
		}
		if fn, isFn := fb.lookupFunction(d.Name); isFn {
			msg := fmt.Sprintf("%s %q shadows the builtin function %q", sym.Kind, d.Name, fn)
			diag.ReportWarning(rep, diag.SemaReservedName, d.NameSpan, msg).Emit()
		}
		fb.deps[symID] = nil
	}
}

func (fb *fileBinder) bindAll() {
	for _, id := range fb.tree.Decls {
		d, ok := fb.tree.Decl(id)
		if !ok {
			continue
		}
		owner := fb.b.nodes[id]
		// the type reference never names a symbol
		fb.bindExpr(owner, d.Target)
		fb.bindExpr(owner, d.Value)
	}
}

func (fb *fileBinder) bindExpr(owner SymbolID, root ast.NodeID) {
	fb.tree.Inspect(root, func(id ast.NodeID) bool {
		switch fb.tree.Kind(id) {
		case ast.NodeCall:
			call, _ := fb.tree.Call(id)
			fb.bindCallee(call.Callee)
			for _, arg := range call.Args {
				fb.bindExpr(owner, arg)
			}
			return false
		case ast.NodeIdent:
			fb.bindIdent(owner, id)
		}
		return true
	})
}

func (fb *fileBinder) bindCallee(id ast.NodeID) {
	ident, ok := fb.tree.Ident(id)
	if !ok {
		return
	}
	if fn, ok := fb.lookupFunction(ident.Name); ok {
		fb.b.Bind(id, fb.b.Function(fn))
		return
	}
	if sym, ok := fb.b.Lookup(ident.Name); ok {
		// calling a declaration is reported during type assignment
		fb.b.Bind(id, sym)
		return
	}
	fb.unresolved(id, ident.Name, "function")
}

func (fb *fileBinder) bindIdent(owner SymbolID, id ast.NodeID) {
	ident, _ := fb.tree.Ident(id)
	if sym, ok := fb.b.Lookup(ident.Name); ok {
		fb.b.Bind(id, sym)
		if owner.IsValid() {
			fb.deps[owner] = appendUnique(fb.deps[owner], sym)
		}
		return
	}
	if fn, ok := fb.lookupFunction(ident.Name); ok {
		// a function used as a value is reported during type assignment
		fb.b.Bind(id, fb.b.Function(fn))
		return
	}
	fb.unresolved(id, ident.Name, "symbol")
}

func (fb *fileBinder) unresolved(id ast.NodeID, name, what string) {
	span := fb.tree.SpanOf(id)
	sym := fb.b.ErrorSymbol(Symbol{Name: name, Span: span})
	fb.b.Bind(id, sym)
	msg := fmt.Sprintf("the name %q does not exist in the current context", name)
	if what == "function" {
		msg = fmt.Sprintf("the function %q does not exist", name)
	}
	diag.ReportError(fb.b.Reporter(), diag.SemaUnresolvedSymbol, span, msg).Emit()
}

// detectCycles reports every declaration that lies on a dependency cycle,
// once, naming a shortest cycle through it.
func (fb *fileBinder) detectCycles() {
	deps := func(s SymbolID) []SymbolID { return fb.deps[s] }
	rep := fb.b.Reporter()
	for _, component := range dag.FindCycles(fb.b.decls, deps) {
		for _, member := range component {
			fb.b.SetCycle(member, component)
			sym := fb.b.Symbol(member)
			msg := fmt.Sprintf("%s %q references itself", sym.Kind, sym.Name)
			if len(component) > 1 {
				msg = fmt.Sprintf("%s %q is involved in a cycle (%s)", sym.Kind, sym.Name, fb.cyclePath(shortestCycle(member, component, deps)))
			}
			diag.ReportError(rep, diag.SemaCyclicExpression, sym.Span, msg).Emit()
		}
	}
}

func shortestCycle(sym SymbolID, component []SymbolID, deps func(SymbolID) []SymbolID) []SymbolID {
	var best []SymbolID
	for _, next := range deps(sym) {
		if next == sym || !slices.Contains(component, next) {
			continue
		}
		if cycle := dag.CycleThrough(sym, next, deps); cycle != nil && (best == nil || len(cycle) < len(best)) {
			best = cycle
		}
	}
	return best
}

func (fb *fileBinder) cyclePath(cycle []SymbolID) string {
	names := make([]string, 0, len(cycle)+1)
	for _, id := range cycle {
		names = append(names, fmt.Sprintf("%q", fb.b.Symbol(id).Name))
	}
	names = append(names, names[0])
	return strings.Join(names, " -> ")
}

func appendUnique(list []SymbolID, id SymbolID) []SymbolID {
	for _, x := range list {
		if x == id {
			return list
		}
	}
	return append(list, id)
}
