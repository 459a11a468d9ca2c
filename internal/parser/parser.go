package parser

import (
	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/lexer"
	"strata/internal/source"
	"strata/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error limit has been reached.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

// Parser holds the state for one file.
type Parser struct {
	lx       *lexer.Lexer
	tree     *ast.Tree
	opts     Options
	lastSpan source.Span
	// nlDepth > 0 means newlines are insignificant (inside parens, calls, index brackets).
	nlDepth int
}

// ParseFile parses file into a fresh tree. Lexical and syntax diagnostics go
// to opts.Reporter. Parsing never fails: malformed input yields NodeBad
// placeholders and diagnostics.
func ParseFile(file *source.File, opts Options) *ast.Tree {
	p := Parser{
		lx:       lexer.New(file, opts.Reporter),
		tree:     ast.NewTree(file.ID, sizeHint(file)),
		opts:     opts,
		lastSpan: source.Span{File: file.ID},
	}
	p.parseDecls()
	p.tree.Span = source.Span{File: file.ID, Start: 0, End: file.Len()}
	return p.tree
}

// Parse is ParseFile with only a reporter; it satisfies the compile.Parser shape.
func Parse(file *source.File, reporter diag.Reporter) *ast.Tree {
	return ParseFile(file, Options{Reporter: reporter})
}

func sizeHint(file *source.File) uint {
	// roughly one node per four bytes of source
	return uint(file.Len()/4) + 16
}

func (p *Parser) parseDecls() {
	for {
		p.skipNewLines()
		if p.at(token.EOF) {
			return
		}
		id, ok := p.parseDecl()
		if id.IsValid() {
			p.tree.PushDecl(id)
		}
		if !ok {
			p.resyncTop()
			continue
		}
		if !p.at(token.NewLine) && !p.at(token.EOF) {
			p.err(diag.SynExpectNewline, "expected newline after declaration, got "+p.describe(p.peek()))
			p.resyncTop()
		}
	}
}

func (p *Parser) parseDecl() (ast.NodeID, bool) {
	switch p.peek().Kind {
	case token.KwParam:
		return p.parseParam()
	case token.KwVar:
		return p.parseVar()
	case token.KwResource:
		return p.parseResource()
	case token.KwModule:
		return p.parseModule()
	case token.KwOutput:
		return p.parseOutput()
	default:
		p.err(diag.SynUnexpectedTopLevel, "expected declaration, got "+p.describe(p.peek()))
		return ast.NoNodeID, false
	}
}

// resyncTop skips to the next line that starts with a declaration keyword.
func (p *Parser) resyncTop() {
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF:
			return
		case tok.Kind == token.NewLine:
			p.advance()
			if p.peek().IsDeclKeyword() {
				return
			}
		default:
			p.advance()
		}
	}
}
