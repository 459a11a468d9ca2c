// Package token defines the lexical vocabulary of the strata language.
//
// Interpolated strings are split into StringHead / StringMiddle / StringTail
// tokens around the embedded expressions, so the parser never rescans text.
package token
