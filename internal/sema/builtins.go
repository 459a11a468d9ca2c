package sema

import (
	"fmt"

	"golang.org/x/text/cases"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/types"
)

// argSpec lists the kinds an argument accepts; empty accepts anything.
type argSpec []types.Kind

var (
	argAny      = argSpec(nil)
	argString   = argSpec{types.KindString}
	argSequence = argSpec{types.KindString, types.KindArray}
	argSized    = argSpec{types.KindString, types.KindArray, types.KindObject, types.KindResource, types.KindModule}
)

type builtinFunc struct {
	name string
	args []argSpec
	// variadic repeats the last argSpec; at least len(args) arguments are required.
	variadic bool
	result   resultFunc
}

type resultFunc func(tm *TypeManager, rep diag.Reporter, call ast.NodeID, args []types.TypeID) types.TypeID

func returns(pick func(types.Builtins) types.TypeID) resultFunc {
	return func(tm *TypeManager, _ diag.Reporter, _ ast.NodeID, _ []types.TypeID) types.TypeID {
		return pick(tm.b)
	}
}

var builtinFuncs = []builtinFunc{
	{name: "concat", args: []argSpec{argSequence}, variadic: true, result: concatResult},
	{name: "length", args: []argSpec{argSized}, result: returns(func(b types.Builtins) types.TypeID { return b.Int })},
	{name: "toUpper", args: []argSpec{argString}, result: returns(func(b types.Builtins) types.TypeID { return b.String })},
	{name: "toLower", args: []argSpec{argString}, result: returns(func(b types.Builtins) types.TypeID { return b.String })},
	{name: "string", args: []argSpec{argAny}, result: returns(func(b types.Builtins) types.TypeID { return b.String })},
	{name: "int", args: []argSpec{{types.KindString, types.KindInt}}, result: returns(func(b types.Builtins) types.TypeID { return b.Int })},
	{name: "contains", args: []argSpec{argSized, argAny}, result: returns(func(b types.Builtins) types.TypeID { return b.Bool })},
	{name: "empty", args: []argSpec{argSized}, result: returns(func(b types.Builtins) types.TypeID { return b.Bool })},
	{name: "uniqueString", args: []argSpec{argString}, variadic: true, result: returns(func(b types.Builtins) types.TypeID { return b.String })},
	{name: "resourceGroup", result: resourceGroupResult},
}

var builtinIndex = func() map[string]*builtinFunc {
	idx := make(map[string]*builtinFunc, len(builtinFuncs))
	fold := cases.Fold()
	for i := range builtinFuncs {
		idx[fold.String(builtinFuncs[i].name)] = &builtinFuncs[i]
	}
	return idx
}()

func lookupBuiltin(name string) (*builtinFunc, bool) {
	fn, ok := builtinIndex[cases.Fold().String(name)]
	return fn, ok
}

// LookupFunction resolves a builtin function name ignoring case and returns
// its canonical spelling. It is the function table used during binding.
func LookupFunction(name string) (string, bool) {
	fn, ok := lookupBuiltin(name)
	if !ok {
		return "", false
	}
	return fn.name, true
}

// FunctionNames lists the builtin functions in declaration order.
func FunctionNames() []string {
	out := make([]string, 0, len(builtinFuncs))
	for _, fn := range builtinFuncs {
		out = append(out, fn.name)
	}
	return out
}

func (fn *builtinFunc) check(tm *TypeManager, rep diag.Reporter, call ast.NodeID, argNodes []ast.NodeID, args []types.TypeID) types.TypeID {
	need := len(fn.args)
	if len(args) < need || (!fn.variadic && len(args) > need) {
		want := fmt.Sprintf("%d", need)
		if fn.variadic {
			want = fmt.Sprintf("at least %d", need)
		}
		msg := fmt.Sprintf("function %q expects %s argument(s) but got %d", fn.name, want, len(args))
		diag.ReportError(rep, diag.SemaArgumentCount, tm.tree.SpanOf(call), msg).Emit()
		return tm.b.Error
	}
	ok := true
	for i, at := range args {
		spec := fn.args[min(i, need-1)]
		if !spec.accepts(tm.in.KindOf(at)) {
			msg := fmt.Sprintf("argument %d of function %q cannot be of type %q", i+1, fn.name, tm.in.Name(at))
			diag.ReportError(rep, diag.SemaArgumentType, tm.tree.SpanOf(argNodes[i]), msg).Emit()
			ok = false
		}
	}
	if !ok {
		return tm.b.Error
	}
	return fn.result(tm, rep, call, args)
}

func (s argSpec) accepts(k types.Kind) bool {
	if len(s) == 0 || k == types.KindAny || k == types.KindError {
		return true
	}
	for _, want := range s {
		if k == want {
			return true
		}
	}
	return false
}

// concatResult joins strings into a string and arrays into an array; mixing
// both is not allowed.
func concatResult(tm *TypeManager, rep diag.Reporter, call ast.NodeID, args []types.TypeID) types.TypeID {
	var sawString, sawArray bool
	for _, a := range args {
		switch tm.in.KindOf(a) {
		case types.KindString:
			sawString = true
		case types.KindArray:
			sawArray = true
		}
	}
	switch {
	case sawString && sawArray:
		diag.ReportError(rep, diag.SemaArgumentType, tm.tree.SpanOf(call), "function \"concat\" cannot mix strings and arrays").Emit()
		return tm.b.Error
	case sawArray:
		return tm.b.Array
	default:
		return tm.b.String
	}
}

func resourceGroupResult(tm *TypeManager, _ diag.Reporter, _ ast.NodeID, _ []types.TypeID) types.TypeID {
	return tm.in.RegisterShape(types.KindObject, types.ShapeInfo{
		Name: "resourceGroup",
		Props: []types.Property{
			{Name: "id", Type: tm.b.String, Flags: types.PropReadOnly},
			{Name: "name", Type: tm.b.String, Flags: types.PropReadOnly},
			{Name: "location", Type: tm.b.String, Flags: types.PropReadOnly},
		},
	})
}
