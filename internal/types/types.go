package types

import "fmt"

// TypeID uniquely identifies a type inside the interner.
type TypeID uint32

// NoTypeID marks the absence of a type.
const NoTypeID TypeID = 0

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindAny
	KindError
	KindNull
	KindBool
	KindInt
	KindString
	KindArray
	KindObject
	KindResource
	KindModule
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindAny:
		return "any"
	case KindError:
		return "error"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindResource:
		return "resource"
	case KindModule:
		return "module"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// IsObjectLike reports whether values of the kind have properties.
func (k Kind) IsObjectLike() bool {
	return k == KindObject || k == KindResource || k == KindModule
}

// Type is a compact descriptor for any supported type.
type Type struct {
	Kind Kind
	Elem TypeID // for arrays
	// Shape indexes the interner's shape table for object-like kinds; 0 is
	// the open object with no known properties.
	Shape uint32
}

// MakeArray describes an array of elem.
func MakeArray(elem TypeID) Type {
	return Type{Kind: KindArray, Elem: elem}
}

// PropertyFlags describe how a property may be used.
type PropertyFlags uint8

const (
	PropRequired PropertyFlags = 1 << iota
	PropReadOnly
)

func (f PropertyFlags) Has(flag PropertyFlags) bool {
	return f&flag != 0
}

// Property is one named member of an object-like type.
type Property struct {
	Name  string
	Type  TypeID
	Flags PropertyFlags
}

// ShapeInfo describes the members of an object-like type.
type ShapeInfo struct {
	Name  string
	Props []Property
	// Open shapes accept properties beyond Props.
	Open bool
}

// Lookup finds a property by name. Property names are case-sensitive.
func (s *ShapeInfo) Lookup(name string) (Property, bool) {
	if s == nil {
		return Property{}, false
	}
	for _, p := range s.Props {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}
