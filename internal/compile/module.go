package compile

import (
	"fmt"
	"strings"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/sema"
	"strata/internal/source"
)

type refStatus uint8

const (
	refOK refStatus = iota
	refMissing
	refInterpolated
)

// moduleRef extracts the path literal of a module declaration.
func moduleRef(tree *ast.Tree, decl ast.NodeID) (string, refStatus) {
	d, ok := tree.Decl(decl)
	if !ok || !d.Target.IsValid() {
		return "", refMissing
	}
	str, ok := tree.StringLit(d.Target)
	if !ok {
		return "", refMissing
	}
	if str.IsInterpolated() {
		return "", refInterpolated
	}
	return str.Segments[0], refOK
}

// moduleResolver resolves the module declarations of one compilation
// through its collection.
type moduleResolver struct {
	coll *Collection
	from *Compilation
}

var _ sema.ModuleResolver = moduleResolver{}

func (r moduleResolver) ResolveModule(decl ast.NodeID) sema.ModuleResolution {
	tree := r.from.tree
	d, ok := tree.Decl(decl)
	if !ok {
		return fail(diag.SemaModulePathMissing, tree.SpanOf(decl), "module declaration has no path")
	}
	ref, status := moduleRef(tree, decl)
	switch status {
	case refMissing:
		return fail(diag.SemaModulePathMissing, d.NameSpan, fmt.Sprintf("module %q has no path", d.Name))
	case refInterpolated:
		return fail(diag.SemaModulePathInterpolation, tree.SpanOf(d.Target), "string interpolation is not supported in module paths")
	}

	at := tree.SpanOf(d.Target)
	target, err := r.coll.TryGetCompilationForModule(r.from, ref)
	if err != nil {
		return fail(diag.SemaModuleLoadFailed, at, fmt.Sprintf("unable to load module %q: %v", ref, err))
	}
	if cycle := r.coll.Cycle(r.from.id, decl); len(cycle) > 0 {
		return fail(diag.ProjModuleCycle, at, "module cycle detected: "+r.coll.describeCycle(cycle))
	}
	return sema.ModuleResolution{Interface: sema.InterfaceOf(target.tree)}
}

func fail(code diag.Code, span source.Span, msg string) sema.ModuleResolution {
	d := diag.NewError(code, span, msg)
	return sema.ModuleResolution{Failure: &d}
}

func (c *Collection) describeCycle(cycle []ID) string {
	parts := make([]string, 0, len(cycle)+1)
	for _, id := range cycle {
		parts = append(parts, c.Path(id))
	}
	parts = append(parts, c.Path(cycle[0]))
	return strings.Join(parts, " -> ")
}
