package symbols

import (
	"slices"

	"strata/internal/ast"
	"strata/internal/diag"
)

// Bindings is the read-only result of binding one file.
type Bindings struct {
	symbols table
	nodes   []SymbolID
	decls   []SymbolID
	names   map[string]SymbolID
	cycles  map[SymbolID][]SymbolID
	diags   []diag.Diagnostic
}

// Symbol returns a copy of the symbol; ok is false for unknown IDs.
func (b *Bindings) Symbol(id SymbolID) (Symbol, bool) {
	s := b.symbols.at(id)
	if s == nil {
		return Symbol{}, false
	}
	return *s, true
}

// SymbolOf returns the symbol bound to node: the declared symbol for a
// declaration node, the referenced symbol for an identifier.
func (b *Bindings) SymbolOf(node ast.NodeID) SymbolID {
	if !node.IsValid() || int(node) >= len(b.nodes) {
		return NoSymbolID
	}
	return b.nodes[node]
}

// Lookup finds a top-level declaration by name.
func (b *Bindings) Lookup(name string) (SymbolID, bool) {
	id, ok := b.names[name]
	return id, ok
}

// Declarations lists declaration symbols in source order.
func (b *Bindings) Declarations() []SymbolID {
	return slices.Clone(b.decls)
}

// Cycle returns the members of the cycle sym belongs to, or nil.
func (b *Bindings) Cycle(sym SymbolID) []SymbolID {
	return slices.Clone(b.cycles[sym])
}

// InCycle reports whether sym is part of a declaration cycle.
func (b *Bindings) InCycle(sym SymbolID) bool {
	_, ok := b.cycles[sym]
	return ok
}

// Diagnostics returns binding diagnostics in emission order.
func (b *Bindings) Diagnostics() []diag.Diagnostic {
	return slices.Clone(b.diags)
}

// Len reports the number of symbols, functions and error symbols included.
func (b *Bindings) Len() int {
	return len(b.symbols) - 1
}
