package parser

import (
	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/source"
	"strata/internal/token"
)

// parseDeclName reads the declared identifier. A missing name is reported and
// the declaration keeps an empty name so that binding can skip it.
func (p *Parser) parseDeclName(what string) (string, source.Span, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return tok.Text, tok.Span, true
	}
	span := p.diagSpan()
	p.report(diag.SynExpectIdentifier, diag.SevError, span, "expected "+what+" name, got "+p.describe(p.peek()))
	return "", span, false
}

func (p *Parser) parseTypeRef() (ast.NodeID, bool) {
	if p.at(token.Ident) {
		tok := p.advance()
		return p.tree.NewTypeRef(tok.Span, tok.Text), true
	}
	p.err(diag.SynExpectType, "expected type name, got "+p.describe(p.peek()))
	return ast.NoNodeID, false
}

func (p *Parser) parseAssignedValue(what string) (ast.NodeID, bool) {
	if _, ok := p.expect(token.Assign, diag.SynExpectAssign, "expected '=' in "+what+" declaration, got "+p.describe(p.peek())); !ok {
		return p.tree.NewBad(p.diagSpan()), false
	}
	return p.parseExpr(), true
}

// param <name> <type> [= <expr>]
func (p *Parser) parseParam() (ast.NodeID, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseDeclName("parameter")
	if !ok {
		return ast.NoNodeID, false
	}
	typ, ok := p.parseTypeRef()
	data := ast.DeclData{Name: name, NameSpan: nameSpan, Type: typ}
	if ok && p.at(token.Assign) {
		p.advance()
		data.Value = p.parseExpr()
	}
	return p.tree.NewDecl(ast.NodeParam, p.cover(kw.Span), data), ok
}

// var <name> = <expr>
func (p *Parser) parseVar() (ast.NodeID, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseDeclName("variable")
	if !ok {
		return ast.NoNodeID, false
	}
	value, ok := p.parseAssignedValue("variable")
	data := ast.DeclData{Name: name, NameSpan: nameSpan, Value: value}
	return p.tree.NewDecl(ast.NodeVar, p.cover(kw.Span), data), ok
}

// resource <name> '<Namespace/type@version>' = <expr>
func (p *Parser) parseResource() (ast.NodeID, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseDeclName("resource")
	if !ok {
		return ast.NoNodeID, false
	}
	data := ast.DeclData{Name: name, NameSpan: nameSpan}
	if p.atOr(token.StringLit, token.StringHead) {
		data.Target = p.parseString()
	} else {
		p.err(diag.SynExpectResourceRef, "expected resource type string, got "+p.describe(p.peek()))
		data.Target = p.tree.NewBad(p.diagSpan())
		if !p.at(token.Assign) {
			return p.tree.NewDecl(ast.NodeResource, p.cover(kw.Span), data), false
		}
	}
	data.Value, ok = p.parseAssignedValue("resource")
	return p.tree.NewDecl(ast.NodeResource, p.cover(kw.Span), data), ok
}

// module <name> <path-expr> = <expr>
//
// A missing path is not a syntax error; it is reported during analysis.
func (p *Parser) parseModule() (ast.NodeID, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseDeclName("module")
	if !ok {
		return ast.NoNodeID, false
	}
	data := ast.DeclData{Name: name, NameSpan: nameSpan}
	switch {
	case p.atOr(token.StringLit, token.StringHead):
		data.Target = p.parseString()
	case p.at(token.Assign):
		data.Target = ast.NoNodeID
	default:
		p.err(diag.SynExpectModulePath, "expected module path string, got "+p.describe(p.peek()))
		data.Target = p.tree.NewBad(p.diagSpan())
		return p.tree.NewDecl(ast.NodeModule, p.cover(kw.Span), data), false
	}
	data.Value, ok = p.parseAssignedValue("module")
	return p.tree.NewDecl(ast.NodeModule, p.cover(kw.Span), data), ok
}

// output <name> <type> = <expr>
func (p *Parser) parseOutput() (ast.NodeID, bool) {
	kw := p.advance()
	name, nameSpan, ok := p.parseDeclName("output")
	if !ok {
		return ast.NoNodeID, false
	}
	typ, ok := p.parseTypeRef()
	data := ast.DeclData{Name: name, NameSpan: nameSpan, Type: typ}
	if !ok {
		return p.tree.NewDecl(ast.NodeOutput, p.cover(kw.Span), data), false
	}
	data.Value, ok = p.parseAssignedValue("output")
	return p.tree.NewDecl(ast.NodeOutput, p.cover(kw.Span), data), ok
}
