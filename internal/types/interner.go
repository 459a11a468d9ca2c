package types

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the primitive types.
type Builtins struct {
	Any    TypeID
	Error  TypeID
	Null   TypeID
	Bool   TypeID
	Int    TypeID
	String TypeID
	// Object is the open object with unknown properties.
	Object TypeID
	// Array is an array of any.
	Array TypeID
}

// Interner provides stable TypeIDs. Primitive and array descriptors are
// deduplicated; every shape registration yields a fresh type.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	shapes   []ShapeInfo
	builtins Builtins
}

// NewInterner constructs an interner seeded with built-in types.
func NewInterner() *Interner {
	in := &Interner{
		index: make(map[Type]TypeID, 32),
	}
	in.types = append(in.types, Type{Kind: KindInvalid}) // reserve 0
	in.shapes = append(in.shapes, ShapeInfo{Name: "object", Open: true})
	in.builtins.Any = in.Intern(Type{Kind: KindAny})
	in.builtins.Error = in.Intern(Type{Kind: KindError})
	in.builtins.Null = in.Intern(Type{Kind: KindNull})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Int = in.Intern(Type{Kind: KindInt})
	in.builtins.String = in.Intern(Type{Kind: KindString})
	in.builtins.Object = in.Intern(Type{Kind: KindObject})
	in.builtins.Array = in.Intern(MakeArray(in.builtins.Any))
	return in
}

// Builtins returns TypeIDs for primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if t.Kind == KindInvalid {
		return NoTypeID
	}
	if id, ok := in.index[t]; ok {
		return id
	}
	id := TypeID(toU32(len(in.types), "types"))
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// ArrayOf returns the array type with the given element type.
func (in *Interner) ArrayOf(elem TypeID) TypeID {
	return in.Intern(MakeArray(elem))
}

// RegisterShape creates a new object-like type described by info.
func (in *Interner) RegisterShape(kind Kind, info ShapeInfo) TypeID {
	if !kind.IsObjectLike() {
		panic(fmt.Errorf("types: RegisterShape with kind %v", kind))
	}
	shape := toU32(len(in.shapes), "shapes")
	in.shapes = append(in.shapes, info)
	return in.Intern(Type{Kind: kind, Shape: shape})
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// KindOf returns the kind of id, KindInvalid when unknown.
func (in *Interner) KindOf(id TypeID) Kind {
	tt, _ := in.Lookup(id)
	return tt.Kind
}

// Shape returns the member description of an object-like type.
func (in *Interner) Shape(id TypeID) (*ShapeInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || !tt.Kind.IsObjectLike() {
		return nil, false
	}
	return &in.shapes[tt.Shape], true
}

// IsError reports whether id is the error type or missing.
func (in *Interner) IsError(id TypeID) bool {
	return id == NoTypeID || id == in.builtins.Error
}

// FromName resolves a type name as written in declarations: the primitive
// names, "object", "array" and "T[]" for arrays of a primitive T.
func (in *Interner) FromName(name string) (TypeID, bool) {
	if elem, ok := strings.CutSuffix(name, "[]"); ok {
		e, ok := in.FromName(elem)
		if !ok {
			return NoTypeID, false
		}
		return in.ArrayOf(e), true
	}
	switch name {
	case "any":
		return in.builtins.Any, true
	case "string":
		return in.builtins.String, true
	case "int":
		return in.builtins.Int, true
	case "bool":
		return in.builtins.Bool, true
	case "object":
		return in.builtins.Object, true
	case "array":
		return in.builtins.Array, true
	default:
		return NoTypeID, false
	}
}

// Name renders a type for diagnostics.
func (in *Interner) Name(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "error"
	}
	switch tt.Kind {
	case KindArray:
		if tt.Elem == in.builtins.Any {
			return "array"
		}
		return in.Name(tt.Elem) + "[]"
	case KindObject, KindResource, KindModule:
		if tt.Shape == 0 {
			return "object"
		}
		return in.shapes[tt.Shape].Name
	default:
		return tt.Kind.String()
	}
}

func toU32(n int, what string) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		panic(fmt.Errorf("len(%s) overflow: %w", what, err))
	}
	return v
}
