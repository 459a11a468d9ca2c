package token

import (
	"strata/internal/source"
)

// Token represents a single source token with its location.
// For string tokens Value holds the unescaped text segment; Text is always raw.
type Token struct {
	Kind  Kind
	Span  source.Span
	Text  string
	Value string
}

// IsLiteral reports whether the token starts a literal expression.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, StringLit, StringHead, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsDeclKeyword reports whether the token opens a top-level declaration.
func (t Token) IsDeclKeyword() bool {
	switch t.Kind {
	case KwParam, KwVar, KwResource, KwModule, KwOutput:
		return true
	default:
		return false
	}
}
