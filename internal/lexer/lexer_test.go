package lexer

import (
	"testing"

	"strata/internal/diag"
	"strata/internal/source"
	"strata/internal/token"
)

func lexAll(t *testing.T, src string) ([]token.Token, []diag.Diagnostic) {
	t.Helper()
	f := source.NewFile(1, "test.src", []byte(src), source.FileVirtual)
	rep := &diag.SliceReporter{}
	return New(f, rep).All(), rep.Items
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func expectKinds(t *testing.T, got []token.Token, want ...token.Kind) {
	t.Helper()
	gk := kinds(got)
	if len(gk) != len(want) {
		t.Fatalf("kinds mismatch: got %v, want %v", gk, want)
	}
	for i := range want {
		if gk[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v (all: %v)", i, gk[i], want[i], gk)
		}
	}
}

func TestLexDeclarations(t *testing.T) {
	toks, diags := lexAll(t, "param name string = 'x'\nvar count = 3\n")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	expectKinds(t, toks,
		token.KwParam, token.Ident, token.Ident, token.Assign, token.StringLit, token.NewLine,
		token.KwVar, token.Ident, token.Assign, token.IntLit, token.NewLine,
		token.EOF,
	)
	if toks[4].Value != "x" || toks[4].Text != "'x'" {
		t.Fatalf("string literal: text %q value %q", toks[4].Text, toks[4].Value)
	}
}

func TestLexCollapsesBlankLinesAndComments(t *testing.T) {
	toks, diags := lexAll(t, "\n\n// leading\nvar a = 1 // trailing\n\n/* block\ncomment */\nvar b = 2")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	expectKinds(t, toks,
		token.KwVar, token.Ident, token.Assign, token.IntLit, token.NewLine,
		token.KwVar, token.Ident, token.Assign, token.IntLit,
		token.EOF,
	)
}

func TestLexOperators(t *testing.T) {
	toks, _ := lexAll(t, "a == b != c <= d >= e && f || !g ? h : i")
	expectKinds(t, toks,
		token.Ident, token.EqEq, token.Ident, token.BangEq, token.Ident, token.LtEq,
		token.Ident, token.GtEq, token.Ident, token.AndAnd, token.Ident, token.OrOr,
		token.Bang, token.Ident, token.Question, token.Ident, token.Colon, token.Ident,
		token.EOF,
	)
}

func TestLexInterpolatedString(t *testing.T) {
	toks, diags := lexAll(t, "'a${x}b${ {k: 1}.k }c'")
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	expectKinds(t, toks,
		token.StringHead, token.Ident,
		token.StringMiddle, token.LBrace, token.Ident, token.Colon, token.IntLit, token.RBrace, token.Dot, token.Ident,
		token.StringTail,
		token.EOF,
	)
	if toks[0].Value != "a" || toks[2].Value != "b" || toks[10].Value != "c" {
		t.Fatalf("segment values: %q %q %q", toks[0].Value, toks[2].Value, toks[10].Value)
	}
}

func TestLexEscapes(t *testing.T) {
	toks, diags := lexAll(t, `'it\'s \${not} a\\b\n'`)
	if len(diags) != 0 {
		t.Fatalf("unexpected diagnostics: %v", diags)
	}
	if toks[0].Kind != token.StringLit {
		t.Fatalf("expected plain string, got %v", toks[0].Kind)
	}
	if want := "it's ${not} a\\b\n"; toks[0].Value != want {
		t.Fatalf("value: got %q, want %q", toks[0].Value, want)
	}
}

func TestLexUnterminatedString(t *testing.T) {
	toks, diags := lexAll(t, "var a = 'oops\nvar b = 1")
	if len(diags) != 1 || diags[0].Code != diag.LexUnterminatedString {
		t.Fatalf("expected one unterminated-string diagnostic, got %v", diags)
	}
	expectKinds(t, toks,
		token.KwVar, token.Ident, token.Assign, token.StringLit, token.NewLine,
		token.KwVar, token.Ident, token.Assign, token.IntLit,
		token.EOF,
	)
}

func TestLexUnknownCharacter(t *testing.T) {
	toks, diags := lexAll(t, "var a = #")
	if len(diags) != 1 || diags[0].Code != diag.LexUnknownChar {
		t.Fatalf("expected unknown-char diagnostic, got %v", diags)
	}
	if toks[3].Kind != token.Invalid {
		t.Fatalf("expected invalid token, got %v", toks[3].Kind)
	}
}

func TestLexBadNumber(t *testing.T) {
	_, diags := lexAll(t, "var a = 12ab")
	if len(diags) != 1 || diags[0].Code != diag.LexBadNumber {
		t.Fatalf("expected bad-number diagnostic, got %v", diags)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	f := source.NewFile(1, "p.src", []byte("var x"), source.FileVirtual)
	lx := New(f, nil)
	if lx.Peek().Kind != token.KwVar {
		t.Fatalf("peek: expected var")
	}
	if lx.Next().Kind != token.KwVar || lx.Next().Kind != token.Ident || lx.Next().Kind != token.EOF {
		t.Fatalf("unexpected token order after peek")
	}
	if lx.Next().Kind != token.EOF {
		t.Fatalf("expected EOF to repeat")
	}
}
