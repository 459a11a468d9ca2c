package parser

import (
	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/token"
)

// parseExpr parses a full expression including the ternary operator.
func (p *Parser) parseExpr() ast.NodeID {
	cond := p.parseBinary(precLogicalOr)
	if !p.at(token.Question) {
		return cond
	}
	p.advance()
	then := p.parseExpr()
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' in conditional expression, got "+p.describe(p.peek())); !ok {
		return p.tree.NewTernary(p.cover(p.tree.SpanOf(cond)), cond, then, p.tree.NewBad(p.diagSpan()))
	}
	els := p.parseExpr()
	return p.tree.NewTernary(p.cover(p.tree.SpanOf(cond)), cond, then, els)
}

// parseBinary is precedence climbing over left-associative operators.
func (p *Parser) parseBinary(minPrec int) ast.NodeID {
	left := p.parseUnary()
	for {
		op, prec := binaryOp(p.peek().Kind)
		if prec == precNone || prec < minPrec {
			return left
		}
		p.advance()
		right := p.parseBinary(prec + 1)
		left = p.tree.NewBinary(p.cover(p.tree.SpanOf(left)), op, left, right)
	}
}

func (p *Parser) parseUnary() ast.NodeID {
	switch p.peek().Kind {
	case token.Bang:
		tok := p.advance()
		x := p.parseUnary()
		return p.tree.NewUnary(p.cover(tok.Span), ast.UnaryNot, x)
	case token.Minus:
		tok := p.advance()
		x := p.parseUnary()
		return p.tree.NewUnary(p.cover(tok.Span), ast.UnaryNeg, x)
	default:
		return p.parsePostfix(p.parsePrimary())
	}
}

func (p *Parser) parsePostfix(x ast.NodeID) ast.NodeID {
	for {
		start := p.tree.SpanOf(x)
		switch p.peek().Kind {
		case token.Dot:
			p.advance()
			if !p.at(token.Ident) && !isKeywordName(p.peek().Kind) {
				p.err(diag.SynExpectIdentifier, "expected property name after '.', got "+p.describe(p.peek()))
				return p.tree.NewMember(p.cover(start), x, "", p.diagSpan())
			}
			name := p.advance()
			x = p.tree.NewMember(p.cover(start), x, name.Text, name.Span)
		case token.LBracket:
			p.advance()
			var index ast.NodeID
			p.withNewLines(false, func() {
				index = p.parseExpr()
				p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' after index, got "+p.describe(p.peek()))
			})
			x = p.tree.NewIndex(p.cover(start), x, index)
		case token.LParen:
			callee := x
			if p.tree.Kind(x) != ast.NodeIdent {
				p.err(diag.SynUnexpectedToken, "only named functions can be called")
				callee = p.tree.NewBad(start)
			}
			args := p.parseArgs()
			x = p.tree.NewCall(p.cover(start), callee, args)
		default:
			return x
		}
	}
}

func (p *Parser) parseArgs() []ast.NodeID {
	var args []ast.NodeID
	p.advance()
	p.withNewLines(false, func() {
		for !p.atOr(token.RParen, token.EOF) {
			args = append(args, p.parseExpr())
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close argument list, got "+p.describe(p.peek()))
	})
	return args
}

// isKeywordName reports whether a keyword may be used as a property name.
func isKeywordName(k token.Kind) bool {
	switch k {
	case token.KwParam, token.KwVar, token.KwResource, token.KwModule, token.KwOutput,
		token.KwTrue, token.KwFalse, token.KwNull:
		return true
	default:
		return false
	}
}
