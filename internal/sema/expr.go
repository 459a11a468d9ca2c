package sema

import (
	"fmt"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/source"
	"strata/internal/symbols"
	"strata/internal/types"
)

func (tm *TypeManager) assignExpr(node ast.NodeID, rep diag.Reporter) types.TypeID {
	t := tm.tree
	switch t.Kind(node) {
	case ast.NodeBad:
		return tm.b.Error
	case ast.NodeIdent:
		return tm.assignIdent(node, rep)
	case ast.NodeString:
		return tm.assignString(node, rep)
	case ast.NodeInt:
		return tm.b.Int
	case ast.NodeBool:
		return tm.b.Bool
	case ast.NodeNull:
		return tm.b.Null
	case ast.NodeObject:
		return tm.assignObject(node, rep)
	case ast.NodeProperty:
		p, _ := t.Property(node)
		return tm.TypeOf(p.Value)
	case ast.NodeArray:
		return tm.assignArray(node)
	case ast.NodeMember:
		m, _ := t.Member(node)
		return tm.memberType(rep, tm.TypeOf(m.Target), m.Name, m.NameSpan)
	case ast.NodeIndex:
		return tm.assignIndex(node, rep)
	case ast.NodeCall:
		return tm.assignCall(node, rep)
	case ast.NodeUnary:
		return tm.assignUnary(node, rep)
	case ast.NodeBinary:
		return tm.assignBinary(node, rep)
	case ast.NodeTernary:
		return tm.assignTernary(node, rep)
	case ast.NodeParen:
		p, _ := t.Paren(node)
		return tm.TypeOf(p.X)
	}
	return tm.b.Error
}

func (tm *TypeManager) assignIdent(node ast.NodeID, rep diag.Reporter) types.TypeID {
	sym, ok := tm.symbolFor(node)
	if !ok {
		return tm.b.Error
	}
	span := tm.tree.SpanOf(node)
	if tm.callee[node] {
		// callees are checked with their call
		return tm.b.Any
	}
	switch sym.Kind {
	case symbols.SymbolError:
		return tm.b.Error
	case symbols.SymbolFunction:
		msg := fmt.Sprintf("the function %q must be called with parentheses", sym.Name)
		diag.ReportError(rep, diag.SemaFunctionAsValue, span, msg).Emit()
		return tm.b.Error
	case symbols.SymbolOutput:
		msg := fmt.Sprintf("output %q cannot be referenced in expressions", sym.Name)
		diag.ReportError(rep, diag.SemaOutputReference, span, msg).Emit()
		return tm.b.Error
	}
	if tm.bindings.InCycle(tm.bindings.SymbolOf(node)) {
		return tm.b.Error
	}
	return tm.TypeOf(sym.Decl)
}

func (tm *TypeManager) assignString(node ast.NodeID, rep diag.Reporter) types.TypeID {
	s, _ := tm.tree.StringLit(node)
	for _, hole := range s.Holes {
		ht := tm.TypeOf(hole)
		if k := tm.in.KindOf(ht); k.IsObjectLike() || k == types.KindArray {
			msg := fmt.Sprintf("a value of type %q cannot be used in string interpolation", tm.in.Name(ht))
			diag.ReportError(rep, diag.SemaInterpolationValue, tm.tree.SpanOf(hole), msg).Emit()
		}
	}
	return tm.b.String
}

func (tm *TypeManager) assignObject(node ast.NodeID, rep diag.Reporter) types.TypeID {
	obj, _ := tm.tree.Object(node)
	info := types.ShapeInfo{Name: "object"}
	seen := make(map[string]ast.NodeID, len(obj.Props))
	for _, pid := range obj.Props {
		p, _ := tm.tree.Property(pid)
		if first, dup := seen[p.Key]; dup {
			fp, _ := tm.tree.Property(first)
			msg := fmt.Sprintf("the property %q is declared multiple times in this object", p.Key)
			diag.ReportError(rep, diag.SemaDuplicateProperty, p.KeySpan, msg).
				WithNote(fp.KeySpan, "first declared here").
				Emit()
			continue
		}
		seen[p.Key] = pid
		info.Props = append(info.Props, types.Property{Name: p.Key, Type: tm.TypeOf(pid)})
	}
	return tm.in.RegisterShape(types.KindObject, info)
}

// assignArray uses the common element type, or any for mixed arrays.
func (tm *TypeManager) assignArray(node ast.NodeID) types.TypeID {
	arr, _ := tm.tree.Array(node)
	elem := types.NoTypeID
	for _, item := range arr.Items {
		it := tm.TypeOf(item)
		switch {
		case tm.in.IsError(it):
		case elem == types.NoTypeID:
			elem = it
		case elem != it:
			elem = tm.b.Any
		}
	}
	if elem == types.NoTypeID {
		return tm.b.Array
	}
	return tm.in.ArrayOf(elem)
}

func (tm *TypeManager) memberType(rep diag.Reporter, target types.TypeID, name string, at source.Span) types.TypeID {
	tt, _ := tm.in.Lookup(target)
	switch {
	case tt.Kind == types.KindError || tt.Kind == types.KindInvalid:
		return tm.b.Error
	case tt.Kind == types.KindAny:
		return tm.b.Any
	case tt.Kind.IsObjectLike():
		shape, _ := tm.in.Shape(target)
		if p, ok := shape.Lookup(name); ok {
			return p.Type
		}
		if shape.Open {
			return tm.b.Any
		}
		msg := fmt.Sprintf("the type %q does not contain the property %q", tm.in.Name(target), name)
		diag.ReportError(rep, diag.SemaUnknownProperty, at, msg).Emit()
		return tm.b.Error
	default:
		msg := fmt.Sprintf("cannot access property %q on a value of type %q", name, tm.in.Name(target))
		diag.ReportError(rep, diag.SemaPropertyAccessOnScalar, at, msg).Emit()
		return tm.b.Error
	}
}

func (tm *TypeManager) assignIndex(node ast.NodeID, rep diag.Reporter) types.TypeID {
	ix, _ := tm.tree.Index(node)
	target := tm.TypeOf(ix.Target)
	index := tm.TypeOf(ix.Index)
	tt, _ := tm.in.Lookup(target)
	ik := tm.in.KindOf(index)
	indexOK := func(want types.Kind) bool {
		return ik == want || ik == types.KindAny || ik == types.KindError
	}
	span := tm.tree.SpanOf(ix.Index)

	switch {
	case tt.Kind == types.KindError || tt.Kind == types.KindInvalid:
		return tm.b.Error
	case tt.Kind == types.KindAny:
		return tm.b.Any
	case tt.Kind == types.KindArray:
		if !indexOK(types.KindInt) {
			msg := fmt.Sprintf("arrays are indexed by int, not %q", tm.in.Name(index))
			diag.ReportError(rep, diag.SemaInvalidIndex, span, msg).Emit()
			return tm.b.Error
		}
		return tt.Elem
	case tt.Kind.IsObjectLike():
		if !indexOK(types.KindString) {
			msg := fmt.Sprintf("objects are indexed by string, not %q", tm.in.Name(index))
			diag.ReportError(rep, diag.SemaInvalidIndex, span, msg).Emit()
			return tm.b.Error
		}
		if s, ok := tm.tree.StringLit(ix.Index); ok && !s.IsInterpolated() {
			return tm.memberType(rep, target, s.Segments[0], span)
		}
		return tm.b.Any
	default:
		msg := fmt.Sprintf("a value of type %q cannot be indexed", tm.in.Name(target))
		diag.ReportError(rep, diag.SemaInvalidIndex, tm.tree.SpanOf(node), msg).Emit()
		return tm.b.Error
	}
}

func (tm *TypeManager) assignCall(node ast.NodeID, rep diag.Reporter) types.TypeID {
	call, _ := tm.tree.Call(node)
	args := make([]types.TypeID, len(call.Args))
	for i, a := range call.Args {
		args[i] = tm.TypeOf(a)
	}
	sym, ok := tm.symbolFor(call.Callee)
	if !ok || sym.Kind == symbols.SymbolError {
		return tm.b.Error
	}
	if sym.Kind != symbols.SymbolFunction {
		msg := fmt.Sprintf("%s %q is not a function and cannot be called", sym.Kind, sym.Name)
		diag.ReportError(rep, diag.SemaNotCallable, tm.tree.SpanOf(call.Callee), msg).Emit()
		return tm.b.Error
	}
	fn, ok := lookupBuiltin(sym.Name)
	if !ok {
		return tm.b.Error
	}
	return fn.check(tm, rep, node, call.Args, args)
}

func (tm *TypeManager) assignUnary(node ast.NodeID, rep diag.Reporter) types.TypeID {
	u, _ := tm.tree.Unary(node)
	xt := tm.TypeOf(u.X)
	if tm.in.IsError(xt) {
		return tm.b.Error
	}
	want, result := types.KindBool, tm.b.Bool
	if u.Op == ast.UnaryNeg {
		want, result = types.KindInt, tm.b.Int
	}
	if k := tm.in.KindOf(xt); k != want && k != types.KindAny && k != types.KindError {
		msg := fmt.Sprintf("cannot apply operator %q to a value of type %q", u.Op.String(), tm.in.Name(xt))
		diag.ReportError(rep, diag.SemaInvalidUnaryOperand, tm.tree.SpanOf(node), msg).Emit()
		return tm.b.Error
	}
	return result
}

func (tm *TypeManager) assignBinary(node ast.NodeID, rep diag.Reporter) types.TypeID {
	bin, _ := tm.tree.Binary(node)
	xt, yt := tm.TypeOf(bin.X), tm.TypeOf(bin.Y)
	if tm.in.IsError(xt) || tm.in.IsError(yt) {
		return tm.b.Error
	}
	xk, yk := tm.in.KindOf(xt), tm.in.KindOf(yt)
	loose := func(k types.Kind) bool { return k == types.KindAny || k == types.KindError }
	fits := func(want types.Kind) bool {
		return (xk == want || loose(xk)) && (yk == want || loose(yk))
	}

	var ok bool
	var result types.TypeID
	switch {
	case bin.Op.IsArithmetic():
		ok, result = fits(types.KindInt), tm.b.Int
	case bin.Op.IsOrdering():
		ok, result = fits(types.KindInt), tm.b.Bool
	case bin.Op.IsLogical():
		ok, result = fits(types.KindBool), tm.b.Bool
	case bin.Op.IsEquality():
		ok, result = tm.in.Assignable(xt, yt) || tm.in.Assignable(yt, xt), tm.b.Bool
	}
	if !ok {
		msg := fmt.Sprintf("cannot apply operator %q to operands of type %q and %q", bin.Op.String(), tm.in.Name(xt), tm.in.Name(yt))
		diag.ReportError(rep, diag.SemaInvalidBinaryOperands, tm.tree.SpanOf(node), msg).Emit()
		return tm.b.Error
	}
	return result
}

func (tm *TypeManager) assignTernary(node ast.NodeID, rep diag.Reporter) types.TypeID {
	tr, _ := tm.tree.Ternary(node)
	tm.checkAssignable(rep, tr.Cond, tm.b.Bool, "the condition")
	then, els := tm.TypeOf(tr.Then), tm.TypeOf(tr.Else)
	switch {
	case then == els:
		return then
	case tm.in.IsError(then):
		return els
	case tm.in.IsError(els):
		return then
	case tm.in.KindOf(then) == types.KindNull:
		return els
	case tm.in.KindOf(els) == types.KindNull:
		return then
	default:
		return tm.b.Any
	}
}
