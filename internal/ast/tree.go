package ast

import (
	"strata/internal/source"
)

// Tree is the syntax tree of one file. Every node lives in Nodes and its
// kind-specific data in the matching payload arena. Trees are immutable once
// the parser returns them.
type Tree struct {
	File  source.FileID
	Span  source.Span
	Decls []NodeID

	Nodes      *Arena[Node]
	DeclsData  *Arena[DeclData]
	TypeRefs   *Arena[TypeRefData]
	Idents     *Arena[IdentData]
	Strings    *Arena[StringData]
	Ints       *Arena[IntData]
	Bools      *Arena[BoolData]
	Objects    *Arena[ObjectData]
	Properties *Arena[PropertyData]
	Arrays     *Arena[ArrayData]
	Members    *Arena[MemberData]
	Indices    *Arena[IndexData]
	Calls      *Arena[CallData]
	Unaries    *Arena[UnaryData]
	Binaries   *Arena[BinaryData]
	Ternaries  *Arena[TernaryData]
	Parens     *Arena[ParenData]
}

// NewTree allocates an empty tree. A zero capHint picks 1<<8.
func NewTree(file source.FileID, capHint uint) *Tree {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint/4 + 1
	return &Tree{
		File:       file,
		Decls:      make([]NodeID, 0, small),
		Nodes:      NewArena[Node](capHint),
		DeclsData:  NewArena[DeclData](small),
		TypeRefs:   NewArena[TypeRefData](small),
		Idents:     NewArena[IdentData](capHint),
		Strings:    NewArena[StringData](small),
		Ints:       NewArena[IntData](small),
		Bools:      NewArena[BoolData](small),
		Objects:    NewArena[ObjectData](small),
		Properties: NewArena[PropertyData](small),
		Arrays:     NewArena[ArrayData](small),
		Members:    NewArena[MemberData](small),
		Indices:    NewArena[IndexData](small),
		Calls:      NewArena[CallData](small),
		Unaries:    NewArena[UnaryData](small),
		Binaries:   NewArena[BinaryData](small),
		Ternaries:  NewArena[TernaryData](small),
		Parens:     NewArena[ParenData](small),
	}
}

// NodeCount returns the number of allocated nodes; valid IDs are 1..NodeCount.
func (t *Tree) NodeCount() uint32 {
	return t.Nodes.Len()
}

func (t *Tree) Node(id NodeID) *Node {
	return t.Nodes.Get(uint32(id))
}

func (t *Tree) Kind(id NodeID) NodeKind {
	if n := t.Node(id); n != nil {
		return n.Kind
	}
	return NodeBad
}

func (t *Tree) SpanOf(id NodeID) source.Span {
	if n := t.Node(id); n != nil {
		return n.Span
	}
	return source.Span{File: t.File}
}

func (t *Tree) newNode(kind NodeKind, span source.Span, payload uint32) NodeID {
	return NodeID(t.Nodes.Allocate(Node{Kind: kind, Span: span, Payload: PayloadID(payload)}))
}

func payloadOf[T any](t *Tree, id NodeID, arena *Arena[T], kinds ...NodeKind) (*T, bool) {
	n := t.Node(id)
	if n == nil {
		return nil, false
	}
	for _, k := range kinds {
		if n.Kind == k {
			return arena.Get(uint32(n.Payload)), true
		}
	}
	return nil, false
}

// PushDecl appends a declaration to the file's top-level list.
func (t *Tree) PushDecl(id NodeID) {
	t.Decls = append(t.Decls, id)
}

// NewBad records a placeholder for a node the parser could not build.
func (t *Tree) NewBad(span source.Span) NodeID {
	return t.newNode(NodeBad, span, 0)
}

func (t *Tree) NewDecl(kind NodeKind, span source.Span, data DeclData) NodeID {
	if !kind.IsDecl() {
		panic("ast: NewDecl with non-declaration kind " + kind.String())
	}
	return t.newNode(kind, span, t.DeclsData.Allocate(data))
}

func (t *Tree) NewTypeRef(span source.Span, name string) NodeID {
	return t.newNode(NodeTypeRef, span, t.TypeRefs.Allocate(TypeRefData{Name: name}))
}

func (t *Tree) NewIdent(span source.Span, name string) NodeID {
	return t.newNode(NodeIdent, span, t.Idents.Allocate(IdentData{Name: name}))
}

func (t *Tree) NewString(span source.Span, segments []string, holes []NodeID) NodeID {
	return t.newNode(NodeString, span, t.Strings.Allocate(StringData{Segments: segments, Holes: holes}))
}

func (t *Tree) NewInt(span source.Span, value int64) NodeID {
	return t.newNode(NodeInt, span, t.Ints.Allocate(IntData{Value: value}))
}

func (t *Tree) NewBool(span source.Span, value bool) NodeID {
	return t.newNode(NodeBool, span, t.Bools.Allocate(BoolData{Value: value}))
}

func (t *Tree) NewNull(span source.Span) NodeID {
	return t.newNode(NodeNull, span, 0)
}

func (t *Tree) NewObject(span source.Span, props []NodeID) NodeID {
	return t.newNode(NodeObject, span, t.Objects.Allocate(ObjectData{Props: props}))
}

func (t *Tree) NewProperty(span source.Span, key string, keySpan source.Span, value NodeID) NodeID {
	return t.newNode(NodeProperty, span, t.Properties.Allocate(PropertyData{Key: key, KeySpan: keySpan, Value: value}))
}

func (t *Tree) NewArray(span source.Span, items []NodeID) NodeID {
	return t.newNode(NodeArray, span, t.Arrays.Allocate(ArrayData{Items: items}))
}

func (t *Tree) NewMember(span source.Span, target NodeID, name string, nameSpan source.Span) NodeID {
	return t.newNode(NodeMember, span, t.Members.Allocate(MemberData{Target: target, Name: name, NameSpan: nameSpan}))
}

func (t *Tree) NewIndex(span source.Span, target, index NodeID) NodeID {
	return t.newNode(NodeIndex, span, t.Indices.Allocate(IndexData{Target: target, Index: index}))
}

func (t *Tree) NewCall(span source.Span, callee NodeID, args []NodeID) NodeID {
	return t.newNode(NodeCall, span, t.Calls.Allocate(CallData{Callee: callee, Args: args}))
}

func (t *Tree) NewUnary(span source.Span, op UnaryOp, x NodeID) NodeID {
	return t.newNode(NodeUnary, span, t.Unaries.Allocate(UnaryData{Op: op, X: x}))
}

func (t *Tree) NewBinary(span source.Span, op BinaryOp, x, y NodeID) NodeID {
	return t.newNode(NodeBinary, span, t.Binaries.Allocate(BinaryData{Op: op, X: x, Y: y}))
}

func (t *Tree) NewTernary(span source.Span, cond, then, els NodeID) NodeID {
	return t.newNode(NodeTernary, span, t.Ternaries.Allocate(TernaryData{Cond: cond, Then: then, Else: els}))
}

func (t *Tree) NewParen(span source.Span, x NodeID) NodeID {
	return t.newNode(NodeParen, span, t.Parens.Allocate(ParenData{X: x}))
}

// Decl returns the declaration data for any declaration kind.
func (t *Tree) Decl(id NodeID) (*DeclData, bool) {
	return payloadOf(t, id, t.DeclsData, NodeParam, NodeVar, NodeResource, NodeModule, NodeOutput)
}

func (t *Tree) TypeRef(id NodeID) (*TypeRefData, bool) {
	return payloadOf(t, id, t.TypeRefs, NodeTypeRef)
}

func (t *Tree) Ident(id NodeID) (*IdentData, bool) {
	return payloadOf(t, id, t.Idents, NodeIdent)
}

func (t *Tree) StringLit(id NodeID) (*StringData, bool) {
	return payloadOf(t, id, t.Strings, NodeString)
}

func (t *Tree) Int(id NodeID) (*IntData, bool) {
	return payloadOf(t, id, t.Ints, NodeInt)
}

func (t *Tree) Bool(id NodeID) (*BoolData, bool) {
	return payloadOf(t, id, t.Bools, NodeBool)
}

func (t *Tree) Object(id NodeID) (*ObjectData, bool) {
	return payloadOf(t, id, t.Objects, NodeObject)
}

func (t *Tree) Property(id NodeID) (*PropertyData, bool) {
	return payloadOf(t, id, t.Properties, NodeProperty)
}

func (t *Tree) Array(id NodeID) (*ArrayData, bool) {
	return payloadOf(t, id, t.Arrays, NodeArray)
}

func (t *Tree) Member(id NodeID) (*MemberData, bool) {
	return payloadOf(t, id, t.Members, NodeMember)
}

func (t *Tree) Index(id NodeID) (*IndexData, bool) {
	return payloadOf(t, id, t.Indices, NodeIndex)
}

func (t *Tree) Call(id NodeID) (*CallData, bool) {
	return payloadOf(t, id, t.Calls, NodeCall)
}

func (t *Tree) Unary(id NodeID) (*UnaryData, bool) {
	return payloadOf(t, id, t.Unaries, NodeUnary)
}

func (t *Tree) Binary(id NodeID) (*BinaryData, bool) {
	return payloadOf(t, id, t.Binaries, NodeBinary)
}

func (t *Tree) Ternary(id NodeID) (*TernaryData, bool) {
	return payloadOf(t, id, t.Ternaries, NodeTernary)
}

func (t *Tree) Paren(id NodeID) (*ParenData, bool) {
	return payloadOf(t, id, t.Parens, NodeParen)
}

// DeclsOf returns the top-level declarations of the given kind in source order.
func (t *Tree) DeclsOf(kind NodeKind) []NodeID {
	var out []NodeID
	for _, id := range t.Decls {
		if t.Kind(id) == kind {
			out = append(out, id)
		}
	}
	return out
}
