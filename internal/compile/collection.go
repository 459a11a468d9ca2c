package compile

import (
	"fmt"
	"slices"

	"fortio.org/safecast"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/fileio"
	"strata/internal/parser"
	"strata/internal/project/dag"
	"strata/internal/source"
	"strata/internal/trace"
	"strata/internal/types"
)

// Parser turns a file into a syntax tree, reporting syntax errors.
type Parser interface {
	Parse(file *source.File, reporter diag.Reporter) *ast.Tree
}

// ParserFunc adapts a function to Parser.
type ParserFunc func(file *source.File, reporter diag.Reporter) *ast.Tree

func (f ParserFunc) Parse(file *source.File, reporter diag.Reporter) *ast.Tree {
	return f(file, reporter)
}

// Options configure a Collection.
type Options struct {
	// Resolver loads files; the local file system when nil.
	Resolver fileio.Resolver
	// Types describes resource types; nil knows none.
	Types types.ResourceTypeProvider
	// Parser builds syntax trees; the strata parser when nil.
	Parser Parser
	// Tracer receives load and pass events; trace.Nop when nil.
	Tracer trace.Tracer
}

// Edge is one module declaration whose target loaded.
type Edge struct {
	From ID
	Decl ast.NodeID
	To   ID
}

type slot struct {
	path string
	comp *Compilation
	err  *LoadError
}

type declKey struct {
	comp ID
	decl ast.NodeID
}

// Collection owns every compilation reachable from an entry file.
type Collection struct {
	opts   Options
	slots  []slot // slots[0] reserved
	byPath map[string]ID
	main   string
	edges  []Edge
	cycles map[declKey][]ID
}

// Create loads entry and everything it reaches through module
// declarations, then checks the module graph for cycles. It fails only
// when entry cannot be normalized; a file that cannot be read is recorded
// in the collection.
func Create(entry string, opts Options) (*Collection, error) {
	c := newCollection(opts)
	norm, err := c.opts.Resolver.Normalize(entry)
	if err != nil {
		return nil, fmt.Errorf("entry %q: %w", entry, err)
	}
	c.build(norm, nil)
	return c, nil
}

// CreateWithPreloadedMain is Create with the content of the entry file
// supplied by the caller, as an editor does for an unsaved buffer. The
// entry is never read through the resolver.
func CreateWithPreloadedMain(entry string, content []byte, opts Options) (*Collection, error) {
	c := newCollection(opts)
	norm, err := c.opts.Resolver.Normalize(entry)
	if err != nil {
		return nil, fmt.Errorf("entry %q: %w", entry, err)
	}
	c.build(norm, content)
	return c, nil
}

func newCollection(opts Options) *Collection {
	if opts.Resolver == nil {
		opts.Resolver = fileio.OSResolver{}
	}
	if opts.Parser == nil {
		opts.Parser = ParserFunc(parser.Parse)
	}
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	return &Collection{
		opts:   opts,
		slots:  make([]slot, 1, 8),
		byPath: make(map[string]ID, 8),
		cycles: make(map[declKey][]ID),
	}
}

func (c *Collection) tracer() trace.Tracer {
	return c.opts.Tracer
}

func (c *Collection) build(main string, preloaded []byte) {
	c.main = main

	span := trace.Begin(c.tracer(), trace.ScopePass, "discover", 0)
	var comp *Compilation
	if preloaded != nil {
		comp = c.store(main, preloaded, source.FileVirtual)
	} else {
		comp, _ = c.load(main)
	}
	if comp != nil {
		c.populate(comp, make(map[ID]bool))
	}
	span.WithExtra("files", fmt.Sprint(len(c.slots)-1)).End("")

	span = trace.Begin(c.tracer(), trace.ScopePass, "cycles", 0)
	found := c.detectCycles()
	span.WithExtra("cycles", fmt.Sprint(found)).End("")
}

// TryGetCompilation returns the compilation of path, loading it on first
// use. A failed load is cached like a successful one: the same
// *LoadError comes back on every later call.
func (c *Collection) TryGetCompilation(path string) (*Compilation, error) {
	norm, err := c.opts.Resolver.Normalize(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: fmt.Sprintf("unable to resolve %q: %v", path, err), Err: err}
	}
	return c.load(norm)
}

// TryGetCompilationForModule resolves ref against the file of parent and
// returns the compilation it names. A reference that cannot be turned into
// a path fails with ErrModulePathUnresolved.
func (c *Collection) TryGetCompilationForModule(parent *Compilation, ref string) (*Compilation, error) {
	path, err := c.opts.Resolver.ResolveModulePath(parent.Path(), ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrModulePathUnresolved, ref, err)
	}
	return c.TryGetCompilation(path)
}

func (c *Collection) load(norm string) (*Compilation, error) {
	if id, ok := c.byPath[norm]; ok {
		trace.Point(c.tracer(), trace.ScopeModule, "cache-hit", norm, 0)
		s := c.slots[id]
		if s.err != nil {
			return nil, s.err
		}
		return s.comp, nil
	}
	content, err := c.opts.Resolver.Read(norm)
	if err != nil {
		loadErr := newLoadError(norm, err)
		c.allocate(slot{path: norm, err: loadErr})
		trace.Point(c.tracer(), trace.ScopeModule, "load-failed", loadErr.Message, 0)
		return nil, loadErr
	}
	return c.store(norm, content, 0), nil
}

func (c *Collection) store(norm string, content []byte, flags source.FileFlags) *Compilation {
	id := c.allocate(slot{path: norm})
	file := source.NewFile(source.FileID(id), norm, content, flags)
	rep := &diag.SliceReporter{}
	tree := c.opts.Parser.Parse(file, diag.NewDedupReporter(rep))
	comp := &Compilation{id: id, file: file, tree: tree, parse: rep.Items, coll: c}
	c.slots[id].comp = comp
	trace.Point(c.tracer(), trace.ScopeModule, "load", norm, 0)
	return comp
}

func (c *Collection) allocate(s slot) ID {
	n, err := safecast.Conv[uint32](len(c.slots))
	if err != nil {
		panic(fmt.Errorf("compilation collection overflow: %w", err))
	}
	id := ID(n)
	c.slots = append(c.slots, s)
	c.byPath[s.path] = id
	return id
}

// populate walks module declarations depth first, loading every target
// that is not cached yet. Edges are recorded only for targets that loaded.
func (c *Collection) populate(comp *Compilation, visited map[ID]bool) {
	if visited[comp.id] {
		return
	}
	visited[comp.id] = true
	for _, decl := range comp.tree.DeclsOf(ast.NodeModule) {
		ref, status := moduleRef(comp.tree, decl)
		if status != refOK {
			continue
		}
		target, err := c.TryGetCompilationForModule(comp, ref)
		if err != nil {
			continue
		}
		c.edges = append(c.edges, Edge{From: comp.id, Decl: decl, To: target.id})
		c.populate(target, visited)
	}
}

// detectCycles flags every module declaration whose edge lies on a cycle.
// Each one records a shortest cycle through its own edge, rotated to start
// at the component member that was discovered first.
func (c *Collection) detectCycles() int {
	succ := make(map[ID][]ID, len(c.slots))
	for _, e := range c.edges {
		if !slices.Contains(succ[e.From], e.To) {
			succ[e.From] = append(succ[e.From], e.To)
		}
	}
	nodes := make([]ID, 0, len(c.slots))
	for _, comp := range c.Compilations() {
		nodes = append(nodes, comp.id)
	}
	children := func(id ID) []ID { return succ[id] }
	components := dag.FindCycles(nodes, children)
	member := dag.MembersByNode(components)
	for _, e := range c.edges {
		component := member[e.From]
		if !slices.Contains(component, e.To) {
			continue
		}
		cycle := dag.CycleThrough(e.From, e.To, children)
		c.cycles[declKey{comp: e.From, decl: e.Decl}] = rotateTo(cycle, component)
	}
	return len(components)
}

// rotateTo rotates cycle to begin with the member listed first in order.
func rotateTo(cycle, order []ID) []ID {
	start := 0
	for i, id := range cycle {
		if slices.Index(order, id) < slices.Index(order, cycle[start]) {
			start = i
		}
	}
	return append(slices.Clone(cycle[start:]), cycle[:start]...)
}

// Main returns the compilation of the entry file or its load failure.
func (c *Collection) Main() (*Compilation, error) {
	return c.load(c.main)
}

// MainPath is the normalized path of the entry file.
func (c *Collection) MainPath() string {
	return c.main
}

// Compilations returns every loaded compilation in load order.
func (c *Collection) Compilations() []*Compilation {
	out := make([]*Compilation, 0, len(c.slots))
	for _, s := range c.slots[1:] {
		if s.comp != nil {
			out = append(out, s.comp)
		}
	}
	return out
}

// Failures returns every cached load failure in load order.
func (c *Collection) Failures() []*LoadError {
	var out []*LoadError
	for _, s := range c.slots[1:] {
		if s.err != nil {
			out = append(out, s.err)
		}
	}
	return out
}

// Len reports the number of paths the collection holds an entry for.
func (c *Collection) Len() int {
	return len(c.slots) - 1
}

// Get returns the compilation with the given id, nil when it failed to
// load or does not exist.
func (c *Collection) Get(id ID) *Compilation {
	if id == NoID || int(id) >= len(c.slots) {
		return nil
	}
	return c.slots[id].comp
}

// Path returns the normalized path of id.
func (c *Collection) Path(id ID) string {
	if id == NoID || int(id) >= len(c.slots) {
		return ""
	}
	return c.slots[id].path
}

// File returns the source file with the given id for rendering diagnostics.
func (c *Collection) File(id source.FileID) *source.File {
	if comp := c.Get(ID(id)); comp != nil {
		return comp.file
	}
	return nil
}

// Edges returns the module graph discovered at creation.
func (c *Collection) Edges() []Edge {
	return slices.Clone(c.edges)
}

// Graph returns the module graph over compilation ids for ordering.
func (c *Collection) Graph() dag.Graph {
	g := dag.NewGraph(len(c.slots))
	for _, e := range c.edges {
		g.AddEdge(dag.NodeID(e.From), dag.NodeID(e.To))
	}
	return g
}

// Cycle returns a module cycle through the edge of declaration decl of
// comp, or nil when that edge lies on no cycle.
func (c *Collection) Cycle(comp ID, decl ast.NodeID) []ID {
	return slices.Clone(c.cycles[declKey{comp: comp, decl: decl}])
}

// EmitDiagnosticsAndCheckSuccess passes every diagnostic of every loaded
// compilation to visit and reports whether none of them is an error.
// Files that failed to load contribute nothing; their failure is reported
// at the module declaration that refers to them.
func (c *Collection) EmitDiagnosticsAndCheckSuccess(visit func(*Compilation, diag.Diagnostic)) bool {
	ok := true
	for _, comp := range c.Compilations() {
		for _, d := range comp.Diagnostics() {
			if visit != nil {
				visit(comp, d)
			}
			if d.IsError() {
				ok = false
			}
		}
	}
	return ok
}
