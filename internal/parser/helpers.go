package parser

import (
	"slices"

	"strata/internal/diag"
	"strata/internal/source"
	"strata/internal/token"
)

// peek returns the next token, skipping newlines while they are insignificant.
func (p *Parser) peek() token.Token {
	for p.nlDepth > 0 && p.lx.Peek().Kind == token.NewLine {
		p.lx.Next()
	}
	return p.lx.Peek()
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance consumes the next token and remembers its span.
func (p *Parser) advance() token.Token {
	p.peek()
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.NewLine {
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) skipNewLines() {
	for p.lx.Peek().Kind == token.NewLine {
		p.lx.Next()
	}
}

// withNewLines runs fn with newline significance switched on or off.
func (p *Parser) withNewLines(significant bool, fn func()) {
	saved := p.nlDepth
	if significant {
		p.nlDepth = 0
	} else {
		p.nlDepth++
	}
	fn()
	p.nlDepth = saved
}

// diagSpan picks the best span for a diagnostic at the current position.
// At EOF or a newline it points just past the last consumed token.
func (p *Parser) diagSpan() source.Span {
	tok := p.peek()
	if tok.Kind == token.EOF || tok.Kind == token.NewLine {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return tok.Span
}

func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	span := p.diagSpan()
	p.report(code, diag.SevError, span, msg)
	return token.Token{Kind: token.Invalid, Span: span}, false
}

func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.diagSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string) bool {
	if p.opts.Reporter == nil {
		return false
	}
	if sev == diag.SevError {
		if p.opts.Enough() {
			return false
		}
		p.opts.CurrentErrors++
	}
	p.opts.Reporter.Report(diag.New(sev, code, sp, msg))
	return true
}

func (p *Parser) describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.NewLine:
		return "newline"
	}
	if tok.Text != "" {
		return "'" + tok.Text + "'"
	}
	return tok.Kind.String()
}

// cover builds a span from start to the last consumed token.
func (p *Parser) cover(start source.Span) source.Span {
	if p.lastSpan.End < start.Start {
		return start
	}
	return start.Cover(p.lastSpan)
}
