package compile_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"strata/internal/compile"
	"strata/internal/diag"
	"strata/internal/fileio"
	"strata/internal/trace"
	"strata/internal/types/catalog"
)

func create(t *testing.T, entry string, files map[string]string) (*compile.Collection, *fileio.MemoryResolver) {
	t.Helper()
	res := fileio.NewMemoryResolver(files)
	coll, err := compile.Create(entry, compile.Options{Resolver: res, Types: catalog.Default()})
	if err != nil {
		t.Fatalf("Create(%q): %v", entry, err)
	}
	return coll, res
}

func mustGet(t *testing.T, coll *compile.Collection, path string) *compile.Compilation {
	t.Helper()
	comp, err := coll.TryGetCompilation(path)
	if err != nil {
		t.Fatalf("TryGetCompilation(%q): %v", path, err)
	}
	return comp
}

type emitted struct {
	path string
	d    diag.Diagnostic
}

func emit(coll *compile.Collection) ([]emitted, bool) {
	var out []emitted
	ok := coll.EmitDiagnosticsAndCheckSuccess(func(c *compile.Compilation, d diag.Diagnostic) {
		out = append(out, emitted{path: c.Path(), d: d})
	})
	return out, ok
}

func codesFor(all []emitted, path string) []diag.Code {
	var out []diag.Code
	for _, e := range all {
		if e.path == path {
			out = append(out, e.d.Code)
		}
	}
	return out
}

func module(name, path string) string {
	return "module " + name + " '" + path + "' = {\n  name: '" + name + "'\n}\n"
}

func TestSamePathLoadsOnce(t *testing.T) {
	coll, res := create(t, "main.src", map[string]string{
		"main.src": module("b", "./b.src") + module("again", "b.src"),
		"b.src":    "var x = 1\n",
	})
	if res.Reads("main.src") != 1 || res.Reads("b.src") != 1 {
		t.Fatalf("expected one read per file, got main=%d b=%d", res.Reads("main.src"), res.Reads("b.src"))
	}
	first := mustGet(t, coll, "b.src")
	second := mustGet(t, coll, "/x/../b.src")
	if first != second {
		t.Fatalf("same path must yield the same compilation")
	}
	if res.Reads("b.src") != 1 {
		t.Fatalf("cached lookup read the file again")
	}
	if coll.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", coll.Len())
	}
}

func TestFailedLoadIsCached(t *testing.T) {
	coll, res := create(t, "main.src", map[string]string{"main.src": "var x = 1\n"})
	_, err1 := coll.TryGetCompilation("missing.src")
	_, err2 := coll.TryGetCompilation("/missing.src")
	if err1 == nil || err1 != err2 {
		t.Fatalf("expected the same cached failure, got %v and %v", err1, err2)
	}
	var loadErr *compile.LoadError
	if !errors.As(err1, &loadErr) || loadErr.Path != "/missing.src" || !errors.Is(err1, fileio.ErrNotFound) {
		t.Fatalf("unexpected failure %#v", err1)
	}
	if res.Reads("missing.src") != 1 {
		t.Fatalf("failed path read %d times", res.Reads("missing.src"))
	}
	if len(coll.Failures()) != 1 || len(coll.Compilations()) != 1 {
		t.Fatalf("failure must occupy its own entry")
	}
}

func TestSemanticModelIsMemoized(t *testing.T) {
	coll, _ := create(t, "main.src", map[string]string{
		"main.src": "param p int\nvar v = p + 'x'\n",
	})
	comp := mustGet(t, coll, "main.src")
	model := comp.SemanticModel()
	if comp.SemanticModel() != model {
		t.Fatalf("semantic model must be cached")
	}
	if !model.Context().Unlocked() {
		t.Fatalf("context must be unlocked once the model exists")
	}
	if model.TypeManager() != model.Context().TypeManager() {
		t.Fatalf("type manager not attached to the context")
	}
	sym, ok := model.Bindings().Lookup("v")
	if !ok {
		t.Fatalf("v is not declared")
	}
	s, _ := model.Bindings().Symbol(sym)
	d, _ := comp.Tree().Decl(s.Decl)
	a1 := model.TypeAssignment(d.Value)
	a2 := model.TypeAssignment(d.Value)
	if len(a1.Diagnostics) != 1 || !reflect.DeepEqual(a1, a2) {
		t.Fatalf("type assignment differs between calls: %+v vs %+v", a1, a2)
	}
}

func TestAcyclicGraphHasNoCycleDiagnostics(t *testing.T) {
	coll, _ := create(t, "a.src", map[string]string{
		"a.src": module("b", "./b.src") + module("c", "./c.src"),
		"b.src": module("c", "./c.src"),
		"c.src": "var leaf = true\n",
	})
	all, ok := emit(coll)
	if !ok || len(all) != 0 {
		t.Fatalf("expected a clean graph, got ok=%v %v", ok, all)
	}
	if len(coll.Edges()) != 3 {
		t.Fatalf("expected 3 edges, got %d", len(coll.Edges()))
	}
}

func TestModuleCycleIsReportedOnEveryDeclaration(t *testing.T) {
	coll, _ := create(t, "a.src", map[string]string{
		"a.src": module("b", "./b.src"),
		"b.src": module("c", "./c.src"),
		"c.src": module("a", "./a.src"),
	})
	all, ok := emit(coll)
	if ok {
		t.Fatalf("a module cycle must fail the check")
	}
	for _, path := range []string{"/a.src", "/b.src", "/c.src"} {
		codes := codesFor(all, path)
		if len(codes) != 1 || codes[0] != diag.ProjModuleCycle {
			t.Fatalf("%s: expected one cycle diagnostic, got %v", path, codes)
		}
	}
	for _, e := range all {
		if !strings.Contains(e.d.Message, "/a.src -> /b.src -> /c.src -> /a.src") {
			t.Fatalf("cycle message does not list the path: %q", e.d.Message)
		}
	}
}

func TestOverlappingModuleCyclesFlagEveryEdge(t *testing.T) {
	// a <-> b, plus a -> c -> b -> a through a file reached after b
	coll, _ := create(t, "a.src", map[string]string{
		"a.src": module("b", "./b.src") + module("c", "./c.src"),
		"b.src": module("a", "./a.src"),
		"c.src": module("b", "./b.src"),
	})
	all, ok := emit(coll)
	if ok {
		t.Fatalf("module cycles must fail the check")
	}
	want := map[string]int{"/a.src": 2, "/b.src": 1, "/c.src": 1}
	for path, n := range want {
		codes := codesFor(all, path)
		if len(codes) != n {
			t.Fatalf("%s: expected %d cycle diagnostics, got %v", path, n, codes)
		}
		for _, code := range codes {
			if code != diag.ProjModuleCycle {
				t.Fatalf("%s: unexpected code %v", path, code)
			}
		}
	}
	for _, e := range all {
		if e.path == "/c.src" && !strings.Contains(e.d.Message, "/a.src -> /c.src -> /b.src -> /a.src") {
			t.Fatalf("c.src cycle message: %q", e.d.Message)
		}
	}
	c := mustGet(t, coll, "c.src")
	for _, e := range coll.Edges() {
		if e.From == c.ID() && len(coll.Cycle(e.From, e.Decl)) != 3 {
			t.Fatalf("c.src edge must lie on a three-file cycle, got %v", coll.Cycle(e.From, e.Decl))
		}
	}
}

func TestMissingModuleTarget(t *testing.T) {
	coll, _ := create(t, "main.src", map[string]string{
		"main.src": module("m", "b.src"),
	})
	main := mustGet(t, coll, "main.src")
	if _, err := coll.TryGetCompilationForModule(main, "b.src"); err == nil || err.Error() == "" {
		t.Fatalf("expected a failure with a message, got %v", err)
	}
	all, ok := emit(coll)
	if ok {
		t.Fatalf("a missing module must fail the check")
	}
	codes := codesFor(all, "/main.src")
	if len(codes) != 1 || codes[0] != diag.SemaModuleLoadFailed {
		t.Fatalf("expected exactly one load failure, got %v", codes)
	}
	if !strings.Contains(all[0].d.Message, "b.src") {
		t.Fatalf("failure message must name the target: %q", all[0].d.Message)
	}
	if len(coll.Compilations()) != 1 {
		t.Fatalf("no compilation may exist for the missing file")
	}
}

func TestModulePathCodesAreDistinct(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want diag.Code
	}{
		{"interpolated", "var v = 'b'\nmodule m './${v}.src' = {\n  name: 'm'\n}\n", diag.SemaModulePathInterpolation},
		{"missing", "module m = {\n  name: 'm'\n}\n", diag.SemaModulePathMissing},
		{"unresolvable", "module m '' = {\n  name: 'm'\n}\n", diag.SemaModuleLoadFailed},
		{"unreadable", "module m './nope.src' = {\n  name: 'm'\n}\n", diag.SemaModuleLoadFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coll, _ := create(t, "main.src", map[string]string{"main.src": tt.src})
			all, ok := emit(coll)
			if ok {
				t.Fatalf("expected failure")
			}
			codes := codesFor(all, "/main.src")
			if len(codes) != 1 || codes[0] != tt.want {
				t.Fatalf("codes: got %v, want [%v]", codes, tt.want)
			}
		})
	}
}

func TestUnresolvableModulePath(t *testing.T) {
	coll, _ := create(t, "main.src", map[string]string{"main.src": "var x = 1\n"})
	main := mustGet(t, coll, "main.src")
	_, err := coll.TryGetCompilationForModule(main, "  ")
	if !errors.Is(err, compile.ErrModulePathUnresolved) {
		t.Fatalf("expected ErrModulePathUnresolved, got %v", err)
	}
	_, err = coll.TryGetCompilationForModule(main, "./absent.src")
	if err == nil || errors.Is(err, compile.ErrModulePathUnresolved) {
		t.Fatalf("a read failure must not look like a resolution failure: %v", err)
	}
}

func TestSelfReferenceIsOneNodeCycle(t *testing.T) {
	coll, _ := create(t, "a.src", map[string]string{
		"a.src": module("selfRef", "./a.src"),
	})
	all, ok := emit(coll)
	if ok || len(all) != 1 || all[0].d.Code != diag.ProjModuleCycle {
		t.Fatalf("expected one cycle diagnostic, got ok=%v %v", ok, all)
	}
	a := mustGet(t, coll, "a.src")
	edges := coll.Edges()
	if len(edges) != 1 || edges[0].From != a.ID() || edges[0].To != a.ID() {
		t.Fatalf("unexpected edges %+v", edges)
	}
	if cycle := coll.Cycle(a.ID(), edges[0].Decl); len(cycle) != 1 {
		t.Fatalf("expected a one-node cycle, got %v", cycle)
	}
}

func TestEmitIsIdempotent(t *testing.T) {
	coll, _ := create(t, "main.src", map[string]string{
		"main.src": "var a = b\nvar n = 1 + 'x'\n" + module("m", "./lib.src"),
		"lib.src":  "param p string\noutput o int = p\n",
	})
	first, ok1 := emit(coll)
	second, ok2 := emit(coll)
	if ok1 || ok2 {
		t.Fatalf("expected failures")
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("emit differs between calls:\n%v\n%v", first, second)
	}
}

func TestModuleInterfaceFlowsAcrossFiles(t *testing.T) {
	coll, _ := create(t, "main.src", map[string]string{
		"main.src": `module net './net.src' = {
  name: 'net'
  params: {
    location: 'westus'
  }
}
var endpoint = net.outputs.endpoint
output upper string = toUpper(endpoint)
`,
		"net.src": "param location string\nparam size int = 2\noutput endpoint string = '${location}.example'\n",
	})
	all, ok := emit(coll)
	if !ok {
		t.Fatalf("unexpected diagnostics %v", all)
	}
	main := mustGet(t, coll, "main.src")
	model := main.SemanticModel()
	sym, _ := model.Bindings().Lookup("endpoint")
	s, _ := model.Bindings().Symbol(sym)
	if got := model.TypeManager().TypeName(s.Decl); got != "string" {
		t.Fatalf("endpoint: got %q, want string", got)
	}
}

func TestSyntaxErrorsAreEmitted(t *testing.T) {
	coll, _ := create(t, "main.src", map[string]string{"main.src": "var = 1\n"})
	all, ok := emit(coll)
	if ok || len(all) == 0 {
		t.Fatalf("syntax errors must fail the check")
	}
	for _, e := range all {
		if e.d.Primary.File != 1 {
			t.Fatalf("diagnostic attached to file %d", e.d.Primary.File)
		}
	}
}

func TestCreateWithPreloadedMain(t *testing.T) {
	res := fileio.NewMemoryResolver(map[string]string{
		"main.src": "this would not parse\n",
		"lib.src":  "output o int = 1\n",
	})
	coll, err := compile.CreateWithPreloadedMain("main.src", []byte(module("lib", "./lib.src")), compile.Options{Resolver: res})
	if err != nil {
		t.Fatal(err)
	}
	if res.Reads("main.src") != 0 {
		t.Fatalf("preloaded entry must not be read")
	}
	if _, ok := emit(coll); !ok {
		t.Fatalf("preloaded content must be the one checked")
	}
	main, err := coll.Main()
	if err != nil || main.Path() != "/main.src" {
		t.Fatalf("Main = %v, %v", main, err)
	}
}

func TestContextRequiresLoadedMain(t *testing.T) {
	coll, _ := create(t, "absent.src", nil)
	_, err := compile.NewContext(coll)
	var loadErr *compile.LoadError
	if !errors.As(err, &loadErr) {
		t.Fatalf("expected a load error, got %v", err)
	}
	if _, ok := emit(coll); !ok {
		t.Fatalf("a failed entry contributes no diagnostics")
	}

	ctx, err := compile.OpenContext("main.src", []byte("var x = 1\n"), compile.Options{Resolver: fileio.NewMemoryResolver(nil)})
	if err != nil {
		t.Fatal(err)
	}
	if ctx.Main.Path() != "/main.src" || ctx.Collection.Len() != 1 {
		t.Fatalf("unexpected context %+v", ctx)
	}
}

func TestCreateRejectsEmptyEntry(t *testing.T) {
	if _, err := compile.Create("", compile.Options{Resolver: fileio.NewMemoryResolver(nil)}); !errors.Is(err, fileio.ErrEmptyPath) {
		t.Fatalf("expected ErrEmptyPath, got %v", err)
	}
}

func TestCollectionTracesPasses(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDetail)
	res := fileio.NewMemoryResolver(map[string]string{
		"main.src": module("m", "./gone.src"),
	})
	coll, err := compile.Create("main.src", compile.Options{Resolver: res, Tracer: ring})
	if err != nil {
		t.Fatal(err)
	}
	emit(coll)
	seen := map[string]bool{}
	for _, ev := range ring.Snapshot() {
		seen[ev.Name] = true
	}
	for _, name := range []string{"discover", "cycles", "load", "load-failed", "bind", "typecheck"} {
		if !seen[name] {
			t.Fatalf("missing trace event %q (got %v)", name, seen)
		}
	}
}

func TestGraphOrdersDependenciesFirst(t *testing.T) {
	coll, _ := create(t, "a.src", map[string]string{
		"a.src": module("b", "./b.src"),
		"b.src": module("c", "./c.src"),
		"c.src": "var x = 1\n",
	})
	g := coll.Graph()
	if len(g.Children(1)) != 1 || len(g.Children(2)) != 1 || len(g.Children(3)) != 0 {
		t.Fatalf("unexpected graph %+v", g.Edges)
	}
}
