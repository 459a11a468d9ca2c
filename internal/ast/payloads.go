package ast

import (
	"strata/internal/source"
)

// DeclData is shared by every declaration kind.
//
//	param    Name Type [= Value]
//	var      Name = Value
//	resource Name Target = Value   (Target is the type reference string)
//	module   Name Target = Value   (Target is the path expression)
//	output   Name Type = Value
type DeclData struct {
	Name     string
	NameSpan source.Span
	Type     NodeID
	Target   NodeID
	Value    NodeID
}

type TypeRefData struct {
	Name string
}

type IdentData struct {
	Name string
}

// StringData holds an interpolated string: len(Segments) == len(Holes)+1.
type StringData struct {
	Segments []string
	Holes    []NodeID
}

// IsInterpolated reports whether the string has at least one ${...} hole.
func (s *StringData) IsInterpolated() bool {
	return len(s.Holes) > 0
}

type IntData struct {
	Value int64
}

type BoolData struct {
	Value bool
}

type ObjectData struct {
	Props []NodeID
}

type PropertyData struct {
	Key     string
	KeySpan source.Span
	Value   NodeID
}

type ArrayData struct {
	Items []NodeID
}

type MemberData struct {
	Target   NodeID
	Name     string
	NameSpan source.Span
}

type IndexData struct {
	Target NodeID
	Index  NodeID
}

// CallData holds a call; Callee is always an identifier node.
type CallData struct {
	Callee NodeID
	Args   []NodeID
}

type UnaryData struct {
	Op UnaryOp
	X  NodeID
}

type BinaryData struct {
	Op BinaryOp
	X  NodeID
	Y  NodeID
}

type TernaryData struct {
	Cond NodeID
	Then NodeID
	Else NodeID
}

type ParenData struct {
	X NodeID
}
