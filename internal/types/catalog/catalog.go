// Package catalog provides resource type shapes loaded from TOML.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"strata/internal/types"
)

//go:embed default.toml
var defaultCatalog string

var (
	// ErrNoResources indicates a catalog file without any [[resource]] table.
	ErrNoResources = errors.New("missing [[resource]]")
	// ErrDuplicateType indicates the same resource type listed twice.
	ErrDuplicateType = errors.New("duplicate resource type")
)

type fileFormat struct {
	Resources []struct {
		Type       string `toml:"type"`
		Properties []struct {
			Name     string `toml:"name"`
			Type     string `toml:"type"`
			Required bool   `toml:"required"`
			ReadOnly bool   `toml:"read-only"`
		} `toml:"property"`
	} `toml:"resource"`
}

// Catalog is a ResourceTypeProvider backed by a fixed set of shapes.
type Catalog struct {
	shapes map[string]types.ResourceShape
	order  []string
}

var _ types.ResourceTypeProvider = (*Catalog)(nil)

// Default returns the catalog shipped with the tool.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Errorf("embedded resource catalog: %w", err))
	}
	return c
}

// Load reads a catalog file.
func Load(path string) (*Catalog, error) {
	var f fileFormat
	meta, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("resource") {
		return nil, fmt.Errorf("%s: %w", path, ErrNoResources)
	}
	c, err := build(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse decodes a catalog from TOML text.
func Parse(text string) (*Catalog, error) {
	var f fileFormat
	meta, err := toml.Decode(text, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if !meta.IsDefined("resource") {
		return nil, ErrNoResources
	}
	return build(f)
}

func build(f fileFormat) (*Catalog, error) {
	c := &Catalog{shapes: make(map[string]types.ResourceShape, len(f.Resources))}
	for i, r := range f.Resources {
		ref, err := types.ParseResourceTypeReference(r.Type)
		if err != nil {
			return nil, fmt.Errorf("resource #%d: %w", i+1, err)
		}
		key := ref.Key()
		if _, dup := c.shapes[key]; dup {
			return nil, fmt.Errorf("%w %q", ErrDuplicateType, r.Type)
		}
		shape := types.ResourceShape{Ref: ref}
		for _, p := range r.Properties {
			if p.Name == "" {
				return nil, fmt.Errorf("resource %q: property without name", r.Type)
			}
			typ := p.Type
			if typ == "" {
				typ = "any"
			}
			shape.Properties = append(shape.Properties, types.PropertyShape{
				Name:     p.Name,
				Type:     typ,
				Required: p.Required,
				ReadOnly: p.ReadOnly,
			})
		}
		c.shapes[key] = shape
		c.order = append(c.order, key)
	}
	return c, nil
}

// HasType reports whether ref is known; the match ignores case.
func (c *Catalog) HasType(ref types.ResourceTypeReference) bool {
	_, ok := c.shapes[ref.Key()]
	return ok
}

// Shape returns the shape of ref.
func (c *Catalog) Shape(ref types.ResourceTypeReference) (types.ResourceShape, bool) {
	s, ok := c.shapes[ref.Key()]
	return s, ok
}

// Types lists the known references in catalog order.
func (c *Catalog) Types() []types.ResourceTypeReference {
	out := make([]types.ResourceTypeReference, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.shapes[k].Ref)
	}
	return out
}

// Merge returns a catalog holding both sets of shapes; other wins on conflicts.
func (c *Catalog) Merge(other *Catalog) *Catalog {
	out := &Catalog{shapes: make(map[string]types.ResourceShape, len(c.shapes)+len(other.shapes))}
	for _, src := range []*Catalog{c, other} {
		for _, k := range src.order {
			if _, ok := out.shapes[k]; !ok {
				out.order = append(out.order, k)
			}
			out.shapes[k] = src.shapes[k]
		}
	}
	return out
}
