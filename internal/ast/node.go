package ast

import (
	"strata/internal/source"
)

type NodeKind uint8

const (
	NodeBad NodeKind = iota

	// declarations
	NodeParam
	NodeVar
	NodeResource
	NodeModule
	NodeOutput

	NodeTypeRef

	// expressions
	NodeIdent
	NodeString
	NodeInt
	NodeBool
	NodeNull
	NodeObject
	NodeProperty
	NodeArray
	NodeMember
	NodeIndex
	NodeCall
	NodeUnary
	NodeBinary
	NodeTernary
	NodeParen
)

var nodeKindNames = [...]string{
	NodeBad:      "bad",
	NodeParam:    "param",
	NodeVar:      "var",
	NodeResource: "resource",
	NodeModule:   "module",
	NodeOutput:   "output",
	NodeTypeRef:  "type",
	NodeIdent:    "ident",
	NodeString:   "string",
	NodeInt:      "int",
	NodeBool:     "bool",
	NodeNull:     "null",
	NodeObject:   "object",
	NodeProperty: "property",
	NodeArray:    "array",
	NodeMember:   "member",
	NodeIndex:    "index",
	NodeCall:     "call",
	NodeUnary:    "unary",
	NodeBinary:   "binary",
	NodeTernary:  "ternary",
	NodeParen:    "paren",
}

func (k NodeKind) String() string {
	if int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "unknown"
}

// IsDecl reports whether the kind is a top-level declaration.
func (k NodeKind) IsDecl() bool {
	return k >= NodeParam && k <= NodeOutput
}

type Node struct {
	Kind    NodeKind
	Span    source.Span
	Payload PayloadID
}
