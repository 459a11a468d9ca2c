package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// table holds every symbol of one file; slot 0 is NoSymbolID.
type table []Symbol

func newTable(hint uint32) table {
	return make(table, 1, hint+1)
}

func (t *table) add(sym Symbol) SymbolID {
	n, err := safecast.Conv[uint32](len(*t))
	if err != nil {
		panic(fmt.Errorf("symbol table of %d entries: %w", len(*t), err))
	}
	*t = append(*t, sym)
	return SymbolID(n)
}

func (t table) at(id SymbolID) *Symbol {
	if !id.IsValid() || int(id) >= len(t) {
		return nil
	}
	return &t[id]
}
