package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF
	// NewLine separates declarations, object properties and array items.
	NewLine

	// Ident represents an identifier token.
	Ident
	// IntLit is a decimal integer literal.
	IntLit
	// StringLit is a complete single-quoted string without interpolation.
	StringLit
	// StringHead opens an interpolated string: 'text${
	StringHead
	// StringMiddle continues an interpolated string: }text${
	StringMiddle
	// StringTail closes an interpolated string: }text'
	StringTail

	KwParam    // param
	KwVar      // var
	KwResource // resource
	KwModule   // module
	KwOutput   // output
	KwTrue     // true
	KwFalse    // false
	KwNull     // null

	LBrace   // {
	RBrace   // }
	LBracket // [
	RBracket // ]
	LParen   // (
	RParen   // )
	Comma    // ,
	Colon    // :
	Dot      // .
	Assign   // =
	Question // ?
	Bang     // !
	Plus     // +
	Minus    // -
	Star     // *
	Slash    // /
	Percent  // %
	EqEq     // ==
	BangEq   // !=
	Lt       // <
	LtEq     // <=
	Gt       // >
	GtEq     // >=
	AndAnd   // &&
	OrOr     // ||
)

var kindNames = [...]string{
	Invalid:      "invalid",
	EOF:          "end of file",
	NewLine:      "new line",
	Ident:        "identifier",
	IntLit:       "integer",
	StringLit:    "string",
	StringHead:   "string",
	StringMiddle: "string",
	StringTail:   "string",
	KwParam:      "'param'",
	KwVar:        "'var'",
	KwResource:   "'resource'",
	KwModule:     "'module'",
	KwOutput:     "'output'",
	KwTrue:       "'true'",
	KwFalse:      "'false'",
	KwNull:       "'null'",
	LBrace:       "'{'",
	RBrace:       "'}'",
	LBracket:     "'['",
	RBracket:     "']'",
	LParen:       "'('",
	RParen:       "')'",
	Comma:        "','",
	Colon:        "':'",
	Dot:          "'.'",
	Assign:       "'='",
	Question:     "'?'",
	Bang:         "'!'",
	Plus:         "'+'",
	Minus:        "'-'",
	Star:         "'*'",
	Slash:        "'/'",
	Percent:      "'%'",
	EqEq:         "'=='",
	BangEq:       "'!='",
	Lt:           "'<'",
	LtEq:         "'<='",
	Gt:           "'>'",
	GtEq:         "'>='",
	AndAnd:       "'&&'",
	OrOr:         "'||'",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

var keywords = map[string]Kind{
	"param":    KwParam,
	"var":      KwVar,
	"resource": KwResource,
	"module":   KwModule,
	"output":   KwOutput,
	"true":     KwTrue,
	"false":    KwFalse,
	"null":     KwNull,
}

// LookupKeyword returns the keyword kind for ident, if any.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
