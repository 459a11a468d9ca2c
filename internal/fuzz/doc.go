// Package fuzztests houses Go fuzz harnesses for the front end: lexer,
// parser and a whole compilation collection. They guard against panics
// and hangs on arbitrary inputs.
package fuzztests
