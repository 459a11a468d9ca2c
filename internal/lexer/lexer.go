package lexer

import (
	"strata/internal/diag"
	"strata/internal/source"
	"strata/internal/token"
)

type Lexer struct {
	file     *source.File
	cursor   Cursor
	reporter diag.Reporter
	look     *token.Token
	// interp holds the brace depth of every open ${...} hole, innermost last.
	interp []int
	// lastNewLine collapses runs of blank lines into one NewLine token.
	lastNewLine bool
}

// New creates a lexer over file. A nil reporter drops lexical diagnostics.
func New(file *source.File, reporter diag.Reporter) *Lexer {
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		reporter:    reporter,
		lastNewLine: true,
	}
}

// Next returns the next significant token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}

	for {
		tok, ok := lx.scan()
		if !ok {
			continue
		}
		if tok.Kind == token.NewLine {
			if lx.lastNewLine {
				continue
			}
			lx.lastNewLine = true
		} else {
			lx.lastNewLine = false
		}
		return tok
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.look = &t
	return t
}

// All drains the lexer, EOF included.
func (lx *Lexer) All() []token.Token {
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// scan produces one raw token; ok is false when only trivia was consumed.
func (lx *Lexer) scan() (token.Token, bool) {
	if lx.skipTrivia() {
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		return lx.make(token.NewLine, start), true
	}
	if lx.cursor.EOF() {
		if len(lx.interp) > 0 {
			lx.interp = lx.interp[:0]
		}
		return token.Token{Kind: token.EOF, Span: lx.cursor.SpanFrom(lx.cursor.Off)}, true
	}

	ch := lx.cursor.Peek()
	switch {
	case isIdentStart(ch):
		return lx.scanIdentOrKeyword(), true
	case isDigit(ch):
		return lx.scanNumber(), true
	case ch == '\'':
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		return lx.scanStringSegment(start, true), true
	case ch == '}' && len(lx.interp) > 0 && lx.interp[len(lx.interp)-1] == 0:
		start := lx.cursor.Mark()
		lx.cursor.Bump()
		lx.interp = lx.interp[:len(lx.interp)-1]
		return lx.scanStringSegment(start, false), true
	default:
		return lx.scanOperatorOrPunct()
	}
}

// skipTrivia skips spaces and comments. It stops in front of a significant
// newline and reports true in that case.
func (lx *Lexer) skipTrivia() bool {
	for !lx.cursor.EOF() {
		b0 := lx.cursor.Peek()
		switch {
		case b0 == '\n':
			if len(lx.interp) > 0 {
				lx.cursor.Bump()
				continue
			}
			return true
		case b0 == ' ' || b0 == '\t' || b0 == '\r':
			lx.cursor.Bump()
		case b0 == '/':
			_, b1, ok := lx.cursor.Peek2()
			if !ok {
				return false
			}
			switch b1 {
			case '/':
				for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
					lx.cursor.Bump()
				}
			case '*':
				lx.skipBlockComment()
			default:
				return false
			}
		default:
			return false
		}
	}
	return false
}

func (lx *Lexer) skipBlockComment() {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b0, b1, ok := lx.cursor.Peek2()
		if ok && b0 == '*' && b1 == '/' {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return
		}
		lx.cursor.Bump()
	}
	lx.report(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "block comment is not terminated")
}

func (lx *Lexer) make(kind token.Kind, start uint32) token.Token {
	span := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: span, Text: lx.file.Text(span)}
}

func (lx *Lexer) report(code diag.Code, span source.Span, msg string) {
	if lx.reporter == nil {
		return
	}
	diag.ReportError(lx.reporter, code, span, msg).Emit()
}
