package symbols

// SymbolID uniquely identifies a symbol inside one Bindings.
type SymbolID uint32

// NoSymbolID marks the absence of a symbol.
const NoSymbolID SymbolID = 0

// IsValid reports whether the ID refers to a real symbol.
func (id SymbolID) IsValid() bool { return id != NoSymbolID }
