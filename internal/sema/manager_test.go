package sema_test

import (
	"errors"
	"reflect"
	"testing"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/parser"
	"strata/internal/sema"
	"strata/internal/source"
	"strata/internal/symbols"
	"strata/internal/types"
)

func TestTypesOfDeclarations(t *testing.T) {
	f := check(t, `param name string = 'x'
param count int
var doubled = count * 2
var label = '${name}-${doubled}'
var flags = [true, false]
var mixed = [1, 'a']
var cfg = { a: 1, b: { c: 'd' } }
var deep = cfg.b.c
var picked = flags[0]
var cond = count > 3 ? 'big' : 'small'
output result string = label
`, nil)
	if ds := f.tm.Diagnostics(); len(ds) != 0 {
		expectCodes(t, ds)
	}

	in := f.tm.Interner()
	tests := []struct {
		name string
		want string
	}{
		{"name", "string"},
		{"count", "int"},
		{"doubled", "int"},
		{"label", "string"},
		{"flags", "bool[]"},
		{"mixed", "array"},
		{"deep", "string"},
		{"picked", "bool"},
		{"cond", "string"},
		{"result", "string"},
	}
	for _, tt := range tests {
		if got := in.Name(f.tm.TypeOf(f.decl(t, tt.name))); got != tt.want {
			t.Fatalf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
	if f.tm.DeclaredType(f.decl(t, "count")) != in.Builtins().Int {
		t.Fatalf("param must carry its declared type")
	}
	if f.tm.DeclaredType(f.decl(t, "doubled")) != types.NoTypeID {
		t.Fatalf("var has no declared type")
	}
}

func TestTypeAssignmentIsMemoized(t *testing.T) {
	f := check(t, "var a = 1 + 'x'\n", nil)
	node := f.value(t, "a")
	first := f.tm.TypeAssignment(node)
	second := f.tm.TypeAssignment(node)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("assignments differ:\n%+v\n%+v", first, second)
	}
	expectCodes(t, first.Diagnostics, diag.SemaInvalidBinaryOperands)

	d1 := f.tm.Diagnostics()
	d2 := f.tm.Diagnostics()
	if !reflect.DeepEqual(d1, d2) || len(d1) != 1 {
		t.Fatalf("diagnostics must be stable, got %v and %v", d1, d2)
	}
}

func TestDeclaredTypeReadsSyntaxOnly(t *testing.T) {
	resolved := 0
	counting := sema.ModuleResolverFunc(func(ast.NodeID) sema.ModuleResolution {
		resolved++
		return sema.ModuleResolution{}
	})
	f := check(t, `param size int = 1
resource site 'Web/sites@2022-09-01' = {
  name: 'site'
  location: 'west'
}
module m './m.src' = {
  name: 'm'
}
output count int = size
`, counting)
	in := f.tm.Interner()
	if got := f.tm.DeclaredType(f.decl(t, "m")); got != types.NoTypeID {
		t.Fatalf("a module states no type, got %q", in.Name(got))
	}
	if f.tm.DeclaredType(f.decl(t, "size")) != in.Builtins().Int || f.tm.DeclaredType(f.decl(t, "count")) != in.Builtins().Int {
		t.Fatalf("param and output types come from their type names")
	}
	if in.KindOf(f.tm.DeclaredType(f.decl(t, "site"))) != types.KindResource {
		t.Fatalf("resource type comes from its type string")
	}
	if resolved != 0 {
		t.Fatalf("declared types resolved %d modules", resolved)
	}
	f.tm.TypeOf(f.decl(t, "m"))
	if resolved != 1 {
		t.Fatalf("type assignment must resolve the module once, got %d", resolved)
	}
	if f.tm.TypeAssignment(f.decl(t, "site")).Declared != f.tm.DeclaredType(f.decl(t, "site")) {
		t.Fatalf("assignment must carry the declared type")
	}
}

func TestTypeAssignmentResultIsACopy(t *testing.T) {
	f := check(t, "var a = 1 + 'x'\n", nil)
	node := f.value(t, "a")
	first := f.tm.TypeAssignment(node)
	first.Diagnostics[0].Message = "changed"
	if again := f.tm.TypeAssignment(node); again.Diagnostics[0].Message == "changed" {
		t.Fatalf("editing a returned assignment changed the cached one")
	}
}

func TestReplaceDiagnosticsKeepsTypes(t *testing.T) {
	a := sema.TypeAssignment{Type: 3, Declared: 4, Diagnostics: []diag.Diagnostic{{Code: diag.SemaTypeMismatch}}}
	b := a.ReplaceDiagnostics([]diag.Diagnostic{{Code: diag.ProjModuleCycle, Severity: diag.SevError}})
	if b.Type != 3 || b.Declared != 4 {
		t.Fatalf("types changed: %+v", b)
	}
	if a.Diagnostics[0].Code != diag.SemaTypeMismatch {
		t.Fatalf("original must be untouched")
	}
	if !b.HasErrors() || b.Diagnostics[0].Code != diag.ProjModuleCycle {
		t.Fatalf("diagnostics not replaced: %+v", b.Diagnostics)
	}
}

func TestNewTypeManagerRequiresUnlockedContext(t *testing.T) {
	file := source.NewFile(1, "x.src", []byte("var a = 1\n"), source.FileVirtual)
	tree := parser.ParseFile(file, parser.Options{})
	ctx := symbols.NewContext[*sema.TypeManager](symbols.Bind(tree, symbols.BindOptions{}))
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, symbols.ErrBindingIncomplete) {
			t.Fatalf("expected binding-order panic, got %v", r)
		}
	}()
	sema.NewTypeManager(ctx, tree, sema.Options{})
}

func TestNewTypeManagerAttachesToContext(t *testing.T) {
	file := source.NewFile(1, "x.src", []byte("var a = 1\n"), source.FileVirtual)
	tree := parser.ParseFile(file, parser.Options{})
	ctx := symbols.NewContext[*sema.TypeManager](symbols.Bind(tree, symbols.BindOptions{}))
	ctx.Unlock()
	tm := sema.NewTypeManager(ctx, tree, sema.Options{})
	if ctx.TypeManager() != tm {
		t.Fatalf("context must expose the attached type manager")
	}
}

func TestExpressionErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []diag.Code
	}{
		{"bad param type", "param p float\n", []diag.Code{diag.SemaInvalidParamType}},
		{"bad output type", "output o float = 1\n", []diag.Code{diag.SemaInvalidOutputType}},
		{"default mismatch", "param p int = 'x'\n", []diag.Code{diag.SemaTypeMismatch}},
		{"output mismatch", "output o bool = 1\n", []diag.Code{diag.SemaTypeMismatch}},
		{"unary", "var a = -'x'\n", []diag.Code{diag.SemaInvalidUnaryOperand}},
		{"not callable", "var a = 1\nvar b = a()\n", []diag.Code{diag.SemaNotCallable}},
		{"function as value", "var a = concat\n", []diag.Code{diag.SemaFunctionAsValue}},
		{"output reference", "output o int = 1\nvar a = o\n", []diag.Code{diag.SemaOutputReference}},
		{"argument count", "var a = toUpper()\n", []diag.Code{diag.SemaArgumentCount}},
		{"argument type", "var a = toUpper(1)\n", []diag.Code{diag.SemaArgumentType}},
		{"concat mix", "var a = concat('a', [1])\n", []diag.Code{diag.SemaArgumentType}},
		{"scalar member", "var a = 1\nvar b = a.x\n", []diag.Code{diag.SemaPropertyAccessOnScalar}},
		{"unknown member", "var a = { x: 1 }\nvar b = a.y\n", []diag.Code{diag.SemaUnknownProperty}},
		{"array index type", "var a = [1]\nvar b = a['x']\n", []diag.Code{diag.SemaInvalidIndex}},
		{"index scalar", "var a = 1\nvar b = a[0]\n", []diag.Code{diag.SemaInvalidIndex}},
		{"duplicate key", "var a = { x: 1, x: 2 }\n", []diag.Code{diag.SemaDuplicateProperty}},
		{"interpolate object", "var a = { x: 1 }\nvar b = '${a}'\n", []diag.Code{diag.SemaInterpolationValue}},
		{"ternary condition", "var a = 1 ? 'x' : 'y'\n", []diag.Code{diag.SemaTypeMismatch}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := check(t, tt.src, nil)
			expectCodes(t, f.tm.Diagnostics(), tt.want...)
		})
	}
}

func TestErrorsDoNotCascade(t *testing.T) {
	f := check(t, "var a = missing\nvar b = a + 1\nvar c = toUpper(b)\n", nil)
	if ds := f.tm.Diagnostics(); len(ds) != 0 {
		t.Fatalf("unresolved name is a binding error only, got %v", diagCodes(ds))
	}
	if !f.tm.Interner().IsError(f.tm.TypeOf(f.decl(t, "a"))) {
		t.Fatalf("unresolved value must have the error type")
	}
}

func TestCyclicVariablesGetErrorType(t *testing.T) {
	f := check(t, "var a = b\nvar b = a\n", nil)
	if ds := f.tm.Diagnostics(); len(ds) != 0 {
		t.Fatalf("cycles are reported by binding, got %v", diagCodes(ds))
	}
	if !f.tm.Interner().IsError(f.tm.TypeOf(f.decl(t, "a"))) {
		t.Fatalf("cyclic declaration must have the error type")
	}
}

func TestInvalidNodeGetsErrorType(t *testing.T) {
	f := check(t, "var a = 1\n", nil)
	if !f.tm.Interner().IsError(f.tm.TypeOf(ast.NoNodeID)) {
		t.Fatalf("missing node must type as error")
	}
}

func TestBuiltinLookupIgnoresCase(t *testing.T) {
	for _, name := range []string{"toUpper", "TOUPPER", "toupper"} {
		canonical, ok := sema.LookupFunction(name)
		if !ok || canonical != "toUpper" {
			t.Fatalf("%s: got %q %v", name, canonical, ok)
		}
	}
	if _, ok := sema.LookupFunction("nope"); ok {
		t.Fatalf("unknown function resolved")
	}
	if len(sema.FunctionNames()) == 0 {
		t.Fatalf("no builtin functions")
	}
}
