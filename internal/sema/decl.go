package sema

import (
	"errors"
	"fmt"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/source"
	"strata/internal/symbols"
	"strata/internal/types"
)

func (tm *TypeManager) assignDecl(node ast.NodeID, rep diag.Reporter) TypeAssignment {
	d, _ := tm.tree.Decl(node)
	switch tm.tree.Kind(node) {
	case ast.NodeParam:
		declared := tm.DeclaredType(node)
		if d.Value.IsValid() {
			tm.checkAssignable(rep, d.Value, declared, fmt.Sprintf("the default value of parameter %q", d.Name))
		}
		return TypeAssignment{Type: declared, Declared: declared}

	case ast.NodeVar:
		if tm.declInCycle(node) {
			return TypeAssignment{Type: tm.b.Error}
		}
		return TypeAssignment{Type: tm.TypeOf(d.Value)}

	case ast.NodeOutput:
		declared := tm.DeclaredType(node)
		tm.checkAssignable(rep, d.Value, declared, fmt.Sprintf("output %q", d.Name))
		return TypeAssignment{Type: declared, Declared: declared}

	case ast.NodeResource:
		declared := tm.DeclaredType(node)
		tm.reportResourceType(rep, d)
		if !tm.declInCycle(node) {
			tm.checkBody(rep, node, d.Value, declared, "resource")
		}
		return TypeAssignment{Type: declared, Declared: declared}

	case ast.NodeModule:
		return tm.assignModule(node, d, rep)
	}
	return TypeAssignment{Type: tm.b.Error}
}

func (tm *TypeManager) declInCycle(node ast.NodeID) bool {
	sym := tm.bindings.SymbolOf(node)
	return sym.IsValid() && tm.bindings.InCycle(sym)
}

// reportResourceType explains a resource type the declared pass could not
// use. Unknown types are typed loosely with a warning.
func (tm *TypeManager) reportResourceType(rep diag.Reporter, d *ast.DeclData) {
	span := tm.tree.SpanOf(d.Target)
	ref, err := tm.resourceRef(d)
	switch {
	case errors.Is(err, errNoResourceType):
	case err != nil:
		diag.ReportError(rep, diag.SemaInvalidResourceType, span, err.Error()).Emit()
	case !tm.knownResource(ref):
		msg := fmt.Sprintf("resource type %q is not known; its properties cannot be validated", ref.String())
		diag.ReportWarning(rep, diag.SemaUnknownResourceType, span, msg).Emit()
	}
}

func (tm *TypeManager) knownResource(ref types.ResourceTypeReference) bool {
	if tm.opts.Resources == nil {
		return false
	}
	_, ok := tm.opts.Resources.Shape(ref)
	return ok
}

// checkBody validates an object body against the shape of declared.
func (tm *TypeManager) checkBody(rep diag.Reporter, decl, body ast.NodeID, declared types.TypeID, what string) {
	if tm.in.IsError(declared) || !body.IsValid() || tm.tree.Kind(body) == ast.NodeBad {
		return
	}
	obj, ok := tm.tree.Object(tm.tree.Unparen(body))
	if !ok {
		if k := tm.in.KindOf(tm.TypeOf(body)); k.IsObjectLike() || k == types.KindAny || k == types.KindError {
			return
		}
		msg := fmt.Sprintf("the body of a %s must be an object", what)
		diag.ReportError(rep, diag.SemaExpectObjectBody, tm.tree.SpanOf(body), msg).Emit()
		return
	}
	shape, _ := tm.in.Shape(declared)
	d, _ := tm.tree.Decl(decl)
	codes := shapeCodes{
		unknown: diag.SemaUnknownProperty,
		missing: diag.SemaMissingProperty,
		subject: what + " " + quote(d.Name),
	}
	if tm.tree.Kind(decl) == ast.NodeModule {
		codes.nested = map[string]bool{"params": true}
	}
	tm.checkObjectAgainstShape(rep, obj, shape, d.NameSpan, codes)
}

type shapeCodes struct {
	unknown diag.Code
	missing diag.Code
	subject string
	// nested keys hold object literals validated by the caller
	nested map[string]bool
}

// checkObjectAgainstShape compares object literal properties with shape:
// unknown keys, read-only keys, type mismatches and missing required keys.
func (tm *TypeManager) checkObjectAgainstShape(rep diag.Reporter, obj *ast.ObjectData, shape *types.ShapeInfo, missingAt source.Span, codes shapeCodes) {
	present := make(map[string]bool, len(obj.Props))
	for _, pid := range obj.Props {
		p, _ := tm.tree.Property(pid)
		present[p.Key] = true
		want, known := shape.Lookup(p.Key)
		switch {
		case !known && !shape.Open:
			msg := fmt.Sprintf("the property %q is not allowed on %s", p.Key, codes.subject)
			diag.ReportError(rep, codes.unknown, p.KeySpan, msg).Emit()
		case known && want.Flags.Has(types.PropReadOnly):
			msg := fmt.Sprintf("the property %q of %s is read-only", p.Key, codes.subject)
			diag.ReportError(rep, diag.SemaReadOnlyProperty, p.KeySpan, msg).Emit()
		case known && codes.nested[p.Key] && tm.tree.Kind(tm.tree.Unparen(p.Value)) == ast.NodeObject:
		case known:
			tm.checkAssignable(rep, p.Value, want.Type, fmt.Sprintf("property %q", p.Key))
		}
	}
	for _, want := range shape.Props {
		if want.Flags.Has(types.PropRequired) && !present[want.Name] {
			msg := fmt.Sprintf("%s is missing the required property %q", codes.subject, want.Name)
			diag.ReportError(rep, codes.missing, missingAt, msg).Emit()
		}
	}
}

func (tm *TypeManager) symbolFor(node ast.NodeID) (symbols.Symbol, bool) {
	return tm.bindings.Symbol(tm.bindings.SymbolOf(node))
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}
