package lexer

import (
	"strings"

	"strata/internal/diag"
	"strata/internal/token"
)

// scanStringSegment scans string text after an opening quote (opening=true)
// or after the '}' closing an interpolation hole. The segment ends at the
// closing quote or at the next '${'.
func (lx *Lexer) scanStringSegment(start uint32, opening bool) token.Token {
	var value strings.Builder
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			tok := lx.make(closingKind(opening), start)
			tok.Value = value.String()
			lx.report(diag.LexUnterminatedString, tok.Span, "string is not terminated")
			return tok
		}

		ch := lx.cursor.Peek()
		switch ch {
		case '\'':
			lx.cursor.Bump()
			tok := lx.make(closingKind(opening), start)
			tok.Value = value.String()
			return tok
		case '\\':
			escStart := lx.cursor.Mark()
			lx.cursor.Bump()
			esc := lx.cursor.Bump()
			switch esc {
			case '\\', '\'', '$':
				value.WriteByte(esc)
			case 'n':
				value.WriteByte('\n')
			case 'r':
				value.WriteByte('\r')
			case 't':
				value.WriteByte('\t')
			default:
				lx.report(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), "unknown escape sequence")
				value.WriteByte(esc)
			}
		case '$':
			_, b1, ok := lx.cursor.Peek2()
			if ok && b1 == '{' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				lx.interp = append(lx.interp, 0)
				kind := token.StringMiddle
				if opening {
					kind = token.StringHead
				}
				tok := lx.make(kind, start)
				tok.Value = value.String()
				return tok
			}
			value.WriteByte(lx.cursor.Bump())
		default:
			value.WriteByte(lx.cursor.Bump())
		}
	}
}

func closingKind(opening bool) token.Kind {
	if opening {
		return token.StringLit
	}
	return token.StringTail
}
