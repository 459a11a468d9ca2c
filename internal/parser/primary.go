package parser

import (
	"strconv"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/token"
)

func (p *Parser) parsePrimary() ast.NodeID {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.tree.NewIdent(tok.Span, tok.Text)
	case token.IntLit:
		p.advance()
		v, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			p.report(diag.LexBadNumber, diag.SevError, tok.Span, "integer literal '"+tok.Text+"' is out of range")
			return p.tree.NewBad(tok.Span)
		}
		return p.tree.NewInt(tok.Span, v)
	case token.StringLit, token.StringHead:
		return p.parseString()
	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.tree.NewBool(tok.Span, tok.Kind == token.KwTrue)
	case token.KwNull:
		p.advance()
		return p.tree.NewNull(tok.Span)
	case token.LBrace:
		return p.parseObject()
	case token.LBracket:
		return p.parseArray()
	case token.LParen:
		return p.parseParen()
	case token.Invalid:
		// already reported by the lexer
		p.advance()
		return p.tree.NewBad(tok.Span)
	default:
		p.err(diag.SynExpectExpression, "expected expression, got "+p.describe(tok))
		span := p.diagSpan()
		if !p.atOr(token.NewLine, token.EOF, token.RBrace, token.RBracket, token.RParen, token.Comma) {
			p.advance()
		}
		return p.tree.NewBad(span)
	}
}

// parseString handles both plain and interpolated strings.
func (p *Parser) parseString() ast.NodeID {
	head := p.advance()
	if head.Kind == token.StringLit {
		return p.tree.NewString(head.Span, []string{head.Value}, nil)
	}

	segments := []string{head.Value}
	var holes []ast.NodeID
	for {
		var hole ast.NodeID
		p.withNewLines(false, func() {
			hole = p.parseExpr()
		})
		holes = append(holes, hole)

		next := p.peek()
		switch next.Kind {
		case token.StringMiddle:
			p.advance()
			segments = append(segments, next.Value)
			continue
		case token.StringTail:
			p.advance()
			segments = append(segments, next.Value)
		default:
			p.err(diag.SynUnexpectedToken, "expected '}' to close interpolation, got "+p.describe(next))
			segments = append(segments, "")
		}
		return p.tree.NewString(p.cover(head.Span), segments, holes)
	}
}

// parseObject parses { key: value ... } with newline or comma separators.
func (p *Parser) parseObject() ast.NodeID {
	open := p.advance()
	var props []ast.NodeID
	p.withNewLines(true, func() {
		for {
			p.skipSeparators()
			if p.atOr(token.RBrace, token.EOF) {
				break
			}
			prop, ok := p.parseProperty()
			if prop.IsValid() {
				props = append(props, prop)
			}
			if !ok {
				p.resyncUntil(token.NewLine, token.Comma, token.RBrace)
				continue
			}
			if !p.atOr(token.NewLine, token.Comma, token.RBrace) {
				p.err(diag.SynUnexpectedToken, "expected ',' or newline between properties, got "+p.describe(p.peek()))
				p.resyncUntil(token.NewLine, token.Comma, token.RBrace)
			}
		}
		p.expect(token.RBrace, diag.SynUnclosedBrace, "expected '}' to close object")
	})
	return p.tree.NewObject(p.cover(open.Span), props)
}

func (p *Parser) parseProperty() (ast.NodeID, bool) {
	keyTok := p.peek()
	var key string
	switch {
	case keyTok.Kind == token.Ident || isKeywordName(keyTok.Kind):
		key = keyTok.Text
	case keyTok.Kind == token.StringLit:
		key = keyTok.Value
	default:
		p.err(diag.SynExpectIdentifier, "expected property name, got "+p.describe(keyTok))
		return ast.NoNodeID, false
	}
	p.advance()
	if _, ok := p.expect(token.Colon, diag.SynExpectColon, "expected ':' after property name, got "+p.describe(p.peek())); !ok {
		return ast.NoNodeID, false
	}
	value := p.parseExpr()
	return p.tree.NewProperty(p.cover(keyTok.Span), key, keyTok.Span, value), true
}

// parseArray parses [ a, b ] with newline or comma separators.
func (p *Parser) parseArray() ast.NodeID {
	open := p.advance()
	var items []ast.NodeID
	p.withNewLines(true, func() {
		for {
			p.skipSeparators()
			if p.atOr(token.RBracket, token.EOF) {
				break
			}
			items = append(items, p.parseExpr())
			if !p.atOr(token.NewLine, token.Comma, token.RBracket) {
				p.err(diag.SynUnexpectedToken, "expected ',' or newline between array items, got "+p.describe(p.peek()))
				p.resyncUntil(token.NewLine, token.Comma, token.RBracket)
			}
		}
		p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']' to close array")
	})
	return p.tree.NewArray(p.cover(open.Span), items)
}

func (p *Parser) parseParen() ast.NodeID {
	open := p.advance()
	var x ast.NodeID
	p.withNewLines(false, func() {
		x = p.parseExpr()
		p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close parenthesized expression, got "+p.describe(p.peek()))
	})
	return p.tree.NewParen(p.cover(open.Span), x)
}

func (p *Parser) skipSeparators() {
	for p.atOr(token.NewLine, token.Comma) {
		p.advance()
	}
}

// resyncUntil skips tokens until one of stops (not consumed) or EOF.
// Nested brackets are skipped as a whole.
func (p *Parser) resyncUntil(stops ...token.Kind) {
	depth := 0
	for !p.at(token.EOF) {
		if depth == 0 && p.atOr(stops...) {
			return
		}
		switch p.advance().Kind {
		case token.LBrace, token.LBracket, token.LParen:
			depth++
		case token.RBrace, token.RBracket, token.RParen:
			if depth == 0 {
				return
			}
			depth--
		}
	}
}
