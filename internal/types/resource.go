package types

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidResourceType = errors.New("invalid resource type reference")

// ResourceTypeReference is a parsed "Namespace/type[/child...]@version".
type ResourceTypeReference struct {
	Namespace string
	Types     []string
	Version   string
}

// ParseResourceTypeReference parses text; the error wraps ErrInvalidResourceType.
func ParseResourceTypeReference(text string) (ResourceTypeReference, error) {
	fqType, version, ok := strings.Cut(text, "@")
	if !ok || version == "" || strings.Contains(version, "@") {
		return ResourceTypeReference{}, fmt.Errorf("%w %q: expected '<Namespace/type>@<version>'", ErrInvalidResourceType, text)
	}
	parts := strings.Split(fqType, "/")
	if len(parts) < 2 {
		return ResourceTypeReference{}, fmt.Errorf("%w %q: expected at least a namespace and a type", ErrInvalidResourceType, text)
	}
	for _, p := range parts {
		if p == "" || strings.ContainsAny(p, " \t") {
			return ResourceTypeReference{}, fmt.Errorf("%w %q: empty or malformed segment", ErrInvalidResourceType, text)
		}
	}
	return ResourceTypeReference{
		Namespace: parts[0],
		Types:     parts[1:],
		Version:   version,
	}, nil
}

// FullyQualifiedType returns the reference without its version.
func (r ResourceTypeReference) FullyQualifiedType() string {
	return r.Namespace + "/" + strings.Join(r.Types, "/")
}

func (r ResourceTypeReference) String() string {
	return r.FullyQualifiedType() + "@" + r.Version
}

// Key is the case-insensitive lookup key of the reference.
func (r ResourceTypeReference) Key() string {
	return strings.ToLower(r.FullyQualifiedType()) + "@" + strings.ToLower(r.Version)
}

// PropertyShape is a property as described by a provider. Type uses the
// declaration syntax understood by Interner.FromName.
type PropertyShape struct {
	Name     string
	Type     string
	Required bool
	ReadOnly bool
}

// ResourceShape is the structural description of one resource type.
type ResourceShape struct {
	Ref        ResourceTypeReference
	Properties []PropertyShape
}

// ResourceTypeProvider answers which resource types exist and what they look like.
type ResourceTypeProvider interface {
	HasType(ref ResourceTypeReference) bool
	Shape(ref ResourceTypeReference) (ResourceShape, bool)
}

// Standard resource properties present on every resource body.
var standardResourceProps = []PropertyShape{
	{Name: "name", Type: "string", Required: true},
	{Name: "id", Type: "string", ReadOnly: true},
	{Name: "type", Type: "string", ReadOnly: true},
	{Name: "apiVersion", Type: "string", ReadOnly: true},
}

// ResourceType registers the object type for a resource shape. Standard
// properties are added unless the shape overrides them. Unknown property
// type names degrade to any.
func (in *Interner) ResourceType(shape ResourceShape) TypeID {
	info := ShapeInfo{Name: shape.Ref.String()}
	seen := make(map[string]struct{}, len(shape.Properties)+len(standardResourceProps))
	add := func(p PropertyShape) {
		if _, dup := seen[p.Name]; dup {
			return
		}
		seen[p.Name] = struct{}{}
		tid, ok := in.FromName(p.Type)
		if !ok {
			tid = in.builtins.Any
		}
		var flags PropertyFlags
		if p.Required {
			flags |= PropRequired
		}
		if p.ReadOnly {
			flags |= PropReadOnly
		}
		info.Props = append(info.Props, Property{Name: p.Name, Type: tid, Flags: flags})
	}
	for _, p := range shape.Properties {
		add(p)
	}
	for _, p := range standardResourceProps {
		add(p)
	}
	return in.RegisterShape(KindResource, info)
}

// LooseResourceType is used for resource types the provider does not know:
// the standard properties plus an open shape.
func (in *Interner) LooseResourceType(ref ResourceTypeReference) TypeID {
	id := in.ResourceType(ResourceShape{Ref: ref})
	tt := in.MustLookup(id)
	in.shapes[tt.Shape].Open = true
	return id
}
