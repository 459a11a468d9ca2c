package symbols

import (
	"strata/internal/ast"
	"strata/internal/source"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolParam
	SymbolVar
	SymbolResource
	SymbolModule
	SymbolOutput
	SymbolFunction
	// SymbolError stands in for an identifier that did not resolve.
	SymbolError
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolParam:
		return "param"
	case SymbolVar:
		return "var"
	case SymbolResource:
		return "resource"
	case SymbolModule:
		return "module"
	case SymbolOutput:
		return "output"
	case SymbolFunction:
		return "function"
	case SymbolError:
		return "error"
	default:
		return "invalid"
	}
}

// IsDeclaration reports whether symbols of this kind come from a declaration in the file.
func (k SymbolKind) IsDeclaration() bool {
	return k >= SymbolParam && k <= SymbolOutput
}

func kindForDecl(k ast.NodeKind) SymbolKind {
	switch k {
	case ast.NodeParam:
		return SymbolParam
	case ast.NodeVar:
		return SymbolVar
	case ast.NodeResource:
		return SymbolResource
	case ast.NodeModule:
		return SymbolModule
	case ast.NodeOutput:
		return SymbolOutput
	default:
		return SymbolInvalid
	}
}

// Symbol is one named entity. Decl is NoNodeID for functions and error symbols.
type Symbol struct {
	Name string
	Kind SymbolKind
	Decl ast.NodeID
	Span source.Span
}
