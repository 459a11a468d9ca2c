package symbols

import (
	"strata/internal/ast"
	"strata/internal/diag"
)

// Builder collects symbols and bindings while a file is being bound. It only
// supports mutation; Finish hands the result over as read-only Bindings and
// retires the builder.
type Builder struct {
	symbols  table
	nodes    []SymbolID // indexed by ast.NodeID
	decls    []SymbolID // declaration symbols in source order
	names    map[string]SymbolID
	funcs    map[string]SymbolID
	cycles   map[SymbolID][]SymbolID
	diags    []diag.Diagnostic
	finished bool
}

// NewBuilder prepares a builder for a tree with nodeCount nodes.
func NewBuilder(nodeCount uint32) *Builder {
	return &Builder{
		symbols: newTable(nodeCount/4 + 8),
		nodes:   make([]SymbolID, nodeCount+1),
		names:   make(map[string]SymbolID),
		funcs:   make(map[string]SymbolID),
		cycles:  make(map[SymbolID][]SymbolID),
	}
}

func (b *Builder) mustBeOpen() {
	if b.finished {
		panic("symbols: Builder used after Finish")
	}
}

// Declare allocates a declaration symbol. The first symbol for a name wins
// lookups; later ones are still allocated so their declarations can be typed.
func (b *Builder) Declare(sym Symbol) (SymbolID, bool) {
	b.mustBeOpen()
	id := b.symbols.add(sym)
	b.decls = append(b.decls, id)
	b.Bind(sym.Decl, id)
	if _, dup := b.names[sym.Name]; dup {
		return id, false
	}
	b.names[sym.Name] = id
	return id, true
}

// Function returns the shared symbol for a builtin function, allocating it on first use.
func (b *Builder) Function(name string) SymbolID {
	b.mustBeOpen()
	if id, ok := b.funcs[name]; ok {
		return id
	}
	id := b.symbols.add(Symbol{Name: name, Kind: SymbolFunction})
	b.funcs[name] = id
	return id
}

// ErrorSymbol allocates a placeholder for an unresolved name.
func (b *Builder) ErrorSymbol(sym Symbol) SymbolID {
	b.mustBeOpen()
	sym.Kind = SymbolError
	return b.symbols.add(sym)
}

// Lookup finds a declared name while binding is in progress.
func (b *Builder) Lookup(name string) (SymbolID, bool) {
	id, ok := b.names[name]
	return id, ok
}

// Symbol returns the symbol for id while binding is in progress.
func (b *Builder) Symbol(id SymbolID) *Symbol {
	return b.symbols.at(id)
}

// Bind records that node refers to sym.
func (b *Builder) Bind(node ast.NodeID, sym SymbolID) {
	b.mustBeOpen()
	if !node.IsValid() || int(node) >= len(b.nodes) {
		return
	}
	b.nodes[node] = sym
}

// SetCycle records that sym participates in the cycle members.
func (b *Builder) SetCycle(sym SymbolID, members []SymbolID) {
	b.mustBeOpen()
	b.cycles[sym] = members
}

// Reporter exposes the builder as a diag.Reporter so binding passes can emit through diag.ReportError.
func (b *Builder) Reporter() diag.Reporter {
	return (*builderReporter)(b)
}

type builderReporter Builder

func (r *builderReporter) Report(d diag.Diagnostic) {
	r.diags = append(r.diags, d)
}

// Finish freezes the builder into Bindings.
func (b *Builder) Finish() *Bindings {
	b.mustBeOpen()
	b.finished = true
	return &Bindings{
		symbols: b.symbols,
		nodes:   b.nodes,
		decls:   b.decls,
		names:   b.names,
		cycles:  b.cycles,
		diags:   b.diags,
	}
}
