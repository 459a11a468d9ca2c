package sema

import (
	"errors"

	"strata/internal/ast"
	"strata/internal/types"
)

var (
	errNoResourceType           = errors.New("resource declaration has no type string")
	errInterpolatedResourceType = errors.New("the resource type must be a string without interpolation")
)

// DeclaredType returns the type a declaration states in its syntax: the
// type of a param or output, the resource type of a resource. Vars and
// modules state none and get NoTypeID. The pass reads syntax and the
// resource provider only; it does not consult bindings or resolve modules.
func (tm *TypeManager) DeclaredType(node ast.NodeID) types.TypeID {
	if !node.IsValid() || int(node) >= len(tm.declared) {
		return types.NoTypeID
	}
	if !tm.declaredDone[node] {
		tm.declared[node] = tm.declaredType(node)
		tm.declaredDone[node] = true
	}
	return tm.declared[node]
}

func (tm *TypeManager) declaredType(node ast.NodeID) types.TypeID {
	d, ok := tm.tree.Decl(node)
	if !ok {
		return types.NoTypeID
	}
	switch tm.tree.Kind(node) {
	case ast.NodeParam, ast.NodeOutput:
		ref, ok := tm.tree.TypeRef(d.Type)
		if !ok {
			return tm.b.Error
		}
		if id, ok := tm.in.FromName(ref.Name); ok {
			return id
		}
		return tm.b.Error
	case ast.NodeResource:
		ref, err := tm.resourceRef(d)
		if err != nil {
			return tm.b.Error
		}
		if tm.opts.Resources != nil {
			if shape, ok := tm.opts.Resources.Shape(ref); ok {
				return tm.in.ResourceType(shape)
			}
		}
		return tm.in.LooseResourceType(ref)
	}
	return types.NoTypeID
}

// resourceRef parses the type string of a resource declaration.
func (tm *TypeManager) resourceRef(d *ast.DeclData) (types.ResourceTypeReference, error) {
	str, ok := tm.tree.StringLit(d.Target)
	if !ok {
		return types.ResourceTypeReference{}, errNoResourceType
	}
	if str.IsInterpolated() {
		return types.ResourceTypeReference{}, errInterpolatedResourceType
	}
	return types.ParseResourceTypeReference(str.Segments[0])
}
