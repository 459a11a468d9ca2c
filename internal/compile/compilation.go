package compile

import (
	"slices"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/sema"
	"strata/internal/source"
	"strata/internal/symbols"
	"strata/internal/trace"
	"strata/internal/types"
)

// ID is the handle of a compilation inside its collection. IDs are dense
// and start at 1; they double as source.FileID of the file.
type ID uint32

// NoID marks a missing compilation.
const NoID ID = 0

// Compilation is one parsed file of a collection.
type Compilation struct {
	id    ID
	file  *source.File
	tree  *ast.Tree
	parse []diag.Diagnostic
	coll  *Collection
	model *SemanticModel
}

func (c *Compilation) ID() ID               { return c.id }
func (c *Compilation) Path() string         { return c.file.Path }
func (c *Compilation) File() *source.File   { return c.file }
func (c *Compilation) Tree() *ast.Tree      { return c.tree }
func (c *Compilation) LineStarts() []uint32 { return c.file.LineStarts }

// ParseDiagnostics returns the lexer and parser diagnostics of the file.
func (c *Compilation) ParseDiagnostics() []diag.Diagnostic {
	return slices.Clone(c.parse)
}

// SemanticModel binds names and attaches a type manager on first use.
// Later calls return the same model.
func (c *Compilation) SemanticModel() *SemanticModel {
	if c.model != nil {
		return c.model
	}
	tracer := c.coll.tracer()

	span := trace.Begin(tracer, trace.ScopePass, "bind", 0).WithExtra("file", c.Path())
	bindings := symbols.Bind(c.tree, symbols.BindOptions{Functions: sema.LookupFunction})
	ctx := symbols.NewContext[*sema.TypeManager](bindings)
	ctx.Unlock()
	span.End("")

	tm := sema.NewTypeManager(ctx, c.tree, sema.Options{
		Types:     types.NewInterner(),
		Resources: c.coll.opts.Types,
		Modules:   moduleResolver{coll: c.coll, from: c},
	})
	c.model = &SemanticModel{comp: c, ctx: ctx, tm: tm}
	return c.model
}

// Diagnostics returns every diagnostic of the file: parse, binding and
// type diagnostics, ordered by position.
func (c *Compilation) Diagnostics() []diag.Diagnostic {
	out := c.ParseDiagnostics()
	out = append(out, c.SemanticModel().Diagnostics()...)
	diag.SortDiagnostics(out)
	return out
}

// SemanticModel is the bound and typed view of a compilation.
type SemanticModel struct {
	comp  *Compilation
	ctx   *sema.Context
	tm    *sema.TypeManager
	typed bool
}

// Context returns the unlocked symbol context.
func (m *SemanticModel) Context() *sema.Context { return m.ctx }

func (m *SemanticModel) Bindings() *symbols.Bindings { return m.ctx.Bindings() }

func (m *SemanticModel) TypeManager() *sema.TypeManager { return m.ctx.TypeManager() }

func (m *SemanticModel) TypeOf(node ast.NodeID) types.TypeID { return m.tm.TypeOf(node) }

func (m *SemanticModel) TypeAssignment(node ast.NodeID) sema.TypeAssignment {
	return m.tm.TypeAssignment(node)
}

// Diagnostics returns binding diagnostics followed by type diagnostics.
// The type pass runs on the first call.
func (m *SemanticModel) Diagnostics() []diag.Diagnostic {
	out := m.ctx.Bindings().Diagnostics()
	if m.typed {
		return append(out, m.tm.Diagnostics()...)
	}
	span := trace.Begin(m.comp.coll.tracer(), trace.ScopePass, "typecheck", 0).WithExtra("file", m.comp.Path())
	out = append(out, m.tm.Diagnostics()...)
	span.End("")
	m.typed = true
	return out
}
