package lexer

import (
	"fmt"

	"strata/internal/diag"
	"strata/internal/token"
)

func (lx *Lexer) scanOperatorOrPunct() (token.Token, bool) {
	start := lx.cursor.Mark()
	ch := lx.cursor.Bump()

	kind := token.Invalid
	switch ch {
	case '{':
		kind = token.LBrace
		if n := len(lx.interp); n > 0 {
			lx.interp[n-1]++
		}
	case '}':
		kind = token.RBrace
		if n := len(lx.interp); n > 0 && lx.interp[n-1] > 0 {
			lx.interp[n-1]--
		}
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case ',':
		kind = token.Comma
	case ':':
		kind = token.Colon
	case '.':
		kind = token.Dot
	case '?':
		kind = token.Question
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '%':
		kind = token.Percent
	case '=':
		kind = token.Assign
		if lx.cursor.Eat('=') {
			kind = token.EqEq
		}
	case '!':
		kind = token.Bang
		if lx.cursor.Eat('=') {
			kind = token.BangEq
		}
	case '<':
		kind = token.Lt
		if lx.cursor.Eat('=') {
			kind = token.LtEq
		}
	case '>':
		kind = token.Gt
		if lx.cursor.Eat('=') {
			kind = token.GtEq
		}
	case '&':
		if lx.cursor.Eat('&') {
			kind = token.AndAnd
		}
	case '|':
		if lx.cursor.Eat('|') {
			kind = token.OrOr
		}
	}

	tok := lx.make(kind, start)
	if kind == token.Invalid {
		lx.report(diag.LexUnknownChar, tok.Span, fmt.Sprintf("unexpected character %q", tok.Text))
	}
	return tok, true
}
