package sema

import (
	"fmt"
	"slices"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/symbols"
	"strata/internal/types"
)

// Options configure a TypeManager.
type Options struct {
	// Types is the interner to allocate types in; a fresh one when nil.
	Types *types.Interner
	// Resources describes known resource types; nil knows none.
	Resources types.ResourceTypeProvider
	// Modules resolves module declarations; nil fails every module.
	Modules ModuleResolver
}

// TypeManager computes and caches the types of one file's nodes.
type TypeManager struct {
	tree     *ast.Tree
	bindings *symbols.Bindings
	in       *types.Interner
	b        types.Builtins
	opts     Options

	assigned []*TypeAssignment // indexed by ast.NodeID
	visiting []bool
	callee   []bool

	declared     []types.TypeID // indexed by ast.NodeID
	declaredDone []bool

	diagsDone bool
	diags     []diag.Diagnostic
}

// Context is the symbol context a TypeManager is attached to.
type Context = symbols.Context[*TypeManager]

// NewTypeManager creates the type manager for tree and attaches it to ctx.
// ctx must be unlocked; reading a locked context panics with
// *symbols.BindingOrderError.
func NewTypeManager(ctx *Context, tree *ast.Tree, opts Options) *TypeManager {
	bindings := ctx.Bindings()
	in := opts.Types
	if in == nil {
		in = types.NewInterner()
	}
	n := tree.NodeCount() + 1
	tm := &TypeManager{
		tree:     tree,
		bindings: bindings,
		in:       in,
		b:        in.Builtins(),
		opts:     opts,
		assigned: make([]*TypeAssignment, n),
		visiting: make([]bool, n),
		callee:   make([]bool, n),

		declared:     make([]types.TypeID, n),
		declaredDone: make([]bool, n),
	}
	for _, call := range tree.Calls.Slice() {
		if call.Callee.IsValid() && int(call.Callee) < len(tm.callee) {
			tm.callee[call.Callee] = true
		}
	}
	ctx.SetTypeManager(tm)
	return tm
}

// Interner returns the interner the manager allocates types in.
func (tm *TypeManager) Interner() *types.Interner {
	return tm.in
}

// TypeOf returns the assigned type of node.
func (tm *TypeManager) TypeOf(node ast.NodeID) types.TypeID {
	return tm.TypeAssignment(node).Type
}

// TypeName renders the assigned type of node.
func (tm *TypeManager) TypeName(node ast.NodeID) string {
	return tm.in.Name(tm.TypeOf(node))
}

// TypeAssignment returns the assignment for node, computing it on first
// use. Invalid nodes get the error type. The result owns its diagnostics;
// changing them does not touch the cached assignment.
func (tm *TypeManager) TypeAssignment(node ast.NodeID) TypeAssignment {
	if !node.IsValid() || int(node) >= len(tm.assigned) {
		return TypeAssignment{Type: tm.b.Error}
	}
	if a := tm.assigned[node]; a != nil {
		return a.ReplaceDiagnostics(a.Diagnostics)
	}
	if tm.visiting[node] {
		// re-entered through a reference cycle that binding already reported
		return TypeAssignment{Type: tm.b.Error}
	}
	tm.visiting[node] = true
	a := tm.assign(node)
	tm.visiting[node] = false
	tm.assigned[node] = &a
	return a.ReplaceDiagnostics(a.Diagnostics)
}

// Diagnostics types every node of the file and returns all type
// diagnostics in node order. The result is computed once.
func (tm *TypeManager) Diagnostics() []diag.Diagnostic {
	if !tm.diagsDone {
		for id := ast.NodeID(1); uint32(id) <= tm.tree.NodeCount(); id++ {
			tm.diags = append(tm.diags, tm.TypeAssignment(id).Diagnostics...)
		}
		tm.diagsDone = true
	}
	return slices.Clone(tm.diags)
}

func (tm *TypeManager) assign(node ast.NodeID) TypeAssignment {
	rep := &diag.SliceReporter{}
	var a TypeAssignment
	switch kind := tm.tree.Kind(node); {
	case kind.IsDecl():
		a = tm.assignDecl(node, rep)
	case kind == ast.NodeTypeRef:
		a.Type = tm.assignTypeRef(node, rep)
	default:
		a.Type = tm.assignExpr(node, rep)
	}
	if a.Type == types.NoTypeID {
		a.Type = tm.b.Error
	}
	a.Diagnostics = append(a.Diagnostics, rep.Items...)
	return a
}

func (tm *TypeManager) assignTypeRef(node ast.NodeID, rep diag.Reporter) types.TypeID {
	ref, _ := tm.tree.TypeRef(node)
	if id, ok := tm.in.FromName(ref.Name); ok {
		return id
	}
	code := diag.SemaInvalidParamType
	if tm.parentDeclKind(node) == ast.NodeOutput {
		code = diag.SemaInvalidOutputType
	}
	msg := fmt.Sprintf("%q is not a valid type; expected one of string, int, bool, object, array or T[]", ref.Name)
	diag.ReportError(rep, code, tm.tree.SpanOf(node), msg).Emit()
	return tm.b.Error
}

func (tm *TypeManager) parentDeclKind(typeRef ast.NodeID) ast.NodeKind {
	for _, id := range tm.tree.Decls {
		if d, ok := tm.tree.Decl(id); ok && d.Type == typeRef {
			return tm.tree.Kind(id)
		}
	}
	return ast.NodeBad
}

// checkAssignable reports a mismatch when value's type does not fit want.
func (tm *TypeManager) checkAssignable(rep diag.Reporter, value ast.NodeID, want types.TypeID, context string) {
	got := tm.TypeOf(value)
	if tm.in.Assignable(got, want) {
		return
	}
	msg := fmt.Sprintf("expected a value of type %q for %s but the provided value is of type %q",
		tm.in.Name(want), context, tm.in.Name(got))
	diag.ReportError(rep, diag.SemaTypeMismatch, tm.tree.SpanOf(value), msg).Emit()
}
