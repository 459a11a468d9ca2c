package parser

import (
	"strata/internal/ast"
	"strata/internal/token"
)

// Binary operator precedence; higher binds tighter. All are left-associative.
const (
	precNone           = 0
	precLogicalOr      = 1 // ||
	precLogicalAnd     = 2 // &&
	precEquality       = 3 // == !=
	precComparison     = 4 // < <= > >=
	precAdditive       = 5 // + -
	precMultiplicative = 6 // * / %
)

func binaryOp(kind token.Kind) (ast.BinaryOp, int) {
	switch kind {
	case token.OrOr:
		return ast.BinaryOr, precLogicalOr
	case token.AndAnd:
		return ast.BinaryAnd, precLogicalAnd
	case token.EqEq:
		return ast.BinaryEq, precEquality
	case token.BangEq:
		return ast.BinaryNotEq, precEquality
	case token.Lt:
		return ast.BinaryLt, precComparison
	case token.LtEq:
		return ast.BinaryLtEq, precComparison
	case token.Gt:
		return ast.BinaryGt, precComparison
	case token.GtEq:
		return ast.BinaryGtEq, precComparison
	case token.Plus:
		return ast.BinaryAdd, precAdditive
	case token.Minus:
		return ast.BinarySub, precAdditive
	case token.Star:
		return ast.BinaryMul, precMultiplicative
	case token.Slash:
		return ast.BinaryDiv, precMultiplicative
	case token.Percent:
		return ast.BinaryMod, precMultiplicative
	default:
		return 0, precNone
	}
}
