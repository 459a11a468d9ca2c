// Package lexer turns a source file into tokens.
//
// Newlines are significant outside of interpolation holes and are emitted as
// token.NewLine, with blank-line runs collapsed. Strings are single-quoted;
// an interpolated string produces StringHead, then the hole's tokens, then
// StringMiddle for each further hole and finally StringTail.
package lexer
