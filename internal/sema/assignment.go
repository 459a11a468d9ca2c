package sema

import (
	"slices"

	"strata/internal/diag"
	"strata/internal/types"
)

// TypeAssignment is the result of typing one node.
type TypeAssignment struct {
	// Type is the assigned type; the error type when typing failed.
	Type types.TypeID
	// Declared is the type the declaration states, NoTypeID when there is none.
	Declared    types.TypeID
	Diagnostics []diag.Diagnostic
}

// ReplaceDiagnostics returns a copy with ds in place of the diagnostics.
// The types are kept as they are.
func (a TypeAssignment) ReplaceDiagnostics(ds []diag.Diagnostic) TypeAssignment {
	a.Diagnostics = slices.Clone(ds)
	return a
}

// HasErrors reports whether any diagnostic is an error.
func (a TypeAssignment) HasErrors() bool {
	for _, d := range a.Diagnostics {
		if d.IsError() {
			return true
		}
	}
	return false
}
