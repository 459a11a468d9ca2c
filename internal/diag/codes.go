package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexBadEscape                Code = 1005

	// syntax
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectIdentifier   Code = 2002
	SynExpectType         Code = 2003
	SynExpectExpression   Code = 2004
	SynExpectAssign       Code = 2005
	SynExpectNewline      Code = 2006
	SynUnclosedParen      Code = 2007
	SynUnclosedBrace      Code = 2008
	SynUnclosedBracket    Code = 2009
	SynExpectColon        Code = 2010
	SynExpectResourceRef  Code = 2011
	SynExpectModulePath   Code = 2012
	SynUnexpectedTopLevel Code = 2013

	// semantic
	SemaInfo                    Code = 3000
	SemaError                   Code = 3001
	SemaDuplicateSymbol         Code = 3002
	SemaUnresolvedSymbol        Code = 3003
	SemaCyclicExpression        Code = 3004
	SemaTypeMismatch            Code = 3005
	SemaInvalidParamType        Code = 3006
	SemaInvalidOutputType       Code = 3007
	SemaUnknownProperty         Code = 3008
	SemaMissingProperty         Code = 3009
	SemaReadOnlyProperty        Code = 3010
	SemaDuplicateProperty       Code = 3011
	SemaInvalidBinaryOperands   Code = 3012
	SemaInvalidUnaryOperand     Code = 3013
	SemaNotCallable             Code = 3014
	SemaArgumentCount           Code = 3015
	SemaArgumentType            Code = 3016
	SemaFunctionAsValue         Code = 3017
	SemaOutputReference         Code = 3018
	SemaInvalidIndex            Code = 3019
	SemaPropertyAccessOnScalar  Code = 3020
	SemaInvalidResourceType     Code = 3021
	SemaUnknownResourceType     Code = 3022
	SemaExpectObjectBody        Code = 3023
	SemaInterpolationValue      Code = 3024
	SemaModulePathMissing       Code = 3025
	SemaModulePathInterpolation Code = 3026
	SemaModuleLoadFailed        Code = 3027
	SemaModuleParamUnknown      Code = 3028
	SemaModuleParamMissing      Code = 3029
	SemaReservedName            Code = 3030

	// project / module graph
	ProjInfo        Code = 5000
	ProjModuleCycle Code = 5001
	ProjEntryFailed Code = 5002

	// observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number literal",
		LexBadEscape:                "Bad escape sequence",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynExpectIdentifier:         "Expect identifier",
		SynExpectType:               "Expect type",
		SynExpectExpression:         "Expect expression",
		SynExpectAssign:             "Expect '='",
		SynExpectNewline:            "Expect new line",
		SynUnclosedParen:            "Unclosed parenthesis",
		SynUnclosedBrace:            "Unclosed brace",
		SynUnclosedBracket:          "Unclosed bracket",
		SynExpectColon:              "Expect colon",
		SynExpectResourceRef:        "Expect resource type string",
		SynExpectModulePath:         "Expect module path",
		SynUnexpectedTopLevel:       "Unexpected top-level token",
		SemaInfo:                    "Semantic information",
		SemaError:                   "Semantic error",
		SemaDuplicateSymbol:         "Duplicate symbol",
		SemaUnresolvedSymbol:        "Unresolved symbol",
		SemaCyclicExpression:        "Cyclic declaration",
		SemaTypeMismatch:            "Type mismatch",
		SemaInvalidParamType:        "Invalid parameter type",
		SemaInvalidOutputType:       "Invalid output type",
		SemaUnknownProperty:         "Unknown property",
		SemaMissingProperty:         "Missing required property",
		SemaReadOnlyProperty:        "Read-only property assigned",
		SemaDuplicateProperty:       "Duplicate property",
		SemaInvalidBinaryOperands:   "Invalid operands for binary operator",
		SemaInvalidUnaryOperand:     "Invalid operand for unary operator",
		SemaNotCallable:             "Not a function",
		SemaArgumentCount:           "Wrong number of arguments",
		SemaArgumentType:            "Argument type mismatch",
		SemaFunctionAsValue:         "Function used as value",
		SemaOutputReference:         "Output referenced as value",
		SemaInvalidIndex:            "Invalid index",
		SemaPropertyAccessOnScalar:  "Property access on scalar",
		SemaInvalidResourceType:     "Invalid resource type reference",
		SemaUnknownResourceType:     "Unknown resource type",
		SemaExpectObjectBody:        "Declaration body must be an object",
		SemaInterpolationValue:      "Value cannot be interpolated",
		SemaModulePathMissing:       "Module path missing",
		SemaModulePathInterpolation: "Module path interpolation unsupported",
		SemaModuleLoadFailed:        "Module could not be loaded",
		SemaModuleParamUnknown:      "Unknown module parameter",
		SemaModuleParamMissing:      "Missing module parameter",
		SemaReservedName:            "Reserved name",
		ProjInfo:                    "Project information",
		ProjModuleCycle:             "Module cycle detected",
		ProjEntryFailed:             "Entry file could not be loaded",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

// Codes returns every defined code in ascending order.
func Codes() []Code {
	out := make([]Code, 0, len(codeDescription))
	for c := range codeDescription {
		out = append(out, c)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j] < out[j-1]; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
