package sema

import (
	"fmt"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/types"
)

// ModuleParam is a parameter of a module target as written in its source.
type ModuleParam struct {
	Name     string
	TypeName string
	Required bool
}

// ModuleOutput is an output of a module target as written in its source.
type ModuleOutput struct {
	Name     string
	TypeName string
}

// ModuleInterface is what a module declaration can see of its target file.
type ModuleInterface struct {
	Params  []ModuleParam
	Outputs []ModuleOutput
}

// InterfaceOf extracts the parameters and outputs of tree. It reads syntax
// only, so it is safe to call on a file that is part of a module cycle.
func InterfaceOf(tree *ast.Tree) ModuleInterface {
	var mi ModuleInterface
	for _, id := range tree.Decls {
		d, ok := tree.Decl(id)
		if !ok || d.Name == "" {
			continue
		}
		typeName := ""
		if ref, ok := tree.TypeRef(d.Type); ok {
			typeName = ref.Name
		}
		switch tree.Kind(id) {
		case ast.NodeParam:
			mi.Params = append(mi.Params, ModuleParam{Name: d.Name, TypeName: typeName, Required: !d.Value.IsValid()})
		case ast.NodeOutput:
			mi.Outputs = append(mi.Outputs, ModuleOutput{Name: d.Name, TypeName: typeName})
		}
	}
	return mi
}

// ModuleResolution is the outcome of resolving one module declaration.
type ModuleResolution struct {
	Interface ModuleInterface
	// Failure is set when the target cannot be used; it becomes the only
	// diagnostic of the module declaration.
	Failure *diag.Diagnostic
}

// ModuleResolver looks up the target of a module declaration.
type ModuleResolver interface {
	ResolveModule(decl ast.NodeID) ModuleResolution
}

// ModuleResolverFunc adapts a function to ModuleResolver.
type ModuleResolverFunc func(decl ast.NodeID) ModuleResolution

func (f ModuleResolverFunc) ResolveModule(decl ast.NodeID) ModuleResolution {
	return f(decl)
}

func (tm *TypeManager) assignModule(node ast.NodeID, d *ast.DeclData, rep diag.Reporter) TypeAssignment {
	var res ModuleResolution
	if tm.opts.Modules == nil {
		failure := diag.NewError(diag.SemaModuleLoadFailed, tm.tree.SpanOf(node), "modules cannot be resolved in this context")
		res.Failure = &failure
	} else {
		res = tm.opts.Modules.ResolveModule(node)
	}
	if res.Failure != nil {
		failed := TypeAssignment{Type: tm.b.Error}
		return failed.ReplaceDiagnostics([]diag.Diagnostic{*res.Failure})
	}

	declared := tm.moduleType(d.Name, res.Interface)
	if !tm.declInCycle(node) {
		tm.checkModuleBody(rep, node, d, declared)
	}
	return TypeAssignment{Type: declared, Declared: tm.DeclaredType(node)}
}

// moduleType builds { name: string, params: {...}, outputs: {...} } for a target.
func (tm *TypeManager) moduleType(name string, mi ModuleInterface) types.TypeID {
	params := types.ShapeInfo{Name: "params of module " + quote(name)}
	for _, p := range mi.Params {
		var flags types.PropertyFlags
		if p.Required {
			flags |= types.PropRequired
		}
		params.Props = append(params.Props, types.Property{Name: p.Name, Type: tm.typeFromName(p.TypeName), Flags: flags})
	}
	outputs := types.ShapeInfo{Name: "outputs of module " + quote(name)}
	for _, o := range mi.Outputs {
		outputs.Props = append(outputs.Props, types.Property{Name: o.Name, Type: tm.typeFromName(o.TypeName), Flags: types.PropReadOnly})
	}

	paramsFlags := types.PropertyFlags(0)
	for _, p := range mi.Params {
		if p.Required {
			paramsFlags = types.PropRequired
			break
		}
	}
	return tm.in.RegisterShape(types.KindModule, types.ShapeInfo{
		Name: "module " + quote(name),
		Props: []types.Property{
			{Name: "name", Type: tm.b.String, Flags: types.PropRequired},
			{Name: "params", Type: tm.in.RegisterShape(types.KindObject, params), Flags: paramsFlags},
			{Name: "outputs", Type: tm.in.RegisterShape(types.KindObject, outputs), Flags: types.PropReadOnly},
		},
	})
}

// typeFromName maps a target's declared type name into this manager's
// interner. Names the target could not resolve are already reported there.
func (tm *TypeManager) typeFromName(name string) types.TypeID {
	if id, ok := tm.in.FromName(name); ok {
		return id
	}
	return tm.b.Error
}

func (tm *TypeManager) checkModuleBody(rep diag.Reporter, node ast.NodeID, d *ast.DeclData, declared types.TypeID) {
	tm.checkBody(rep, node, d.Value, declared, "module")

	obj, ok := tm.tree.Object(tm.tree.Unparen(d.Value))
	if !ok {
		return
	}
	shape, _ := tm.in.Shape(declared)
	paramsProp, _ := shape.Lookup("params")
	paramsShape, _ := tm.in.Shape(paramsProp.Type)
	for _, pid := range obj.Props {
		p, _ := tm.tree.Property(pid)
		if p.Key != "params" {
			continue
		}
		inner, ok := tm.tree.Object(tm.tree.Unparen(p.Value))
		if !ok {
			return
		}
		tm.checkObjectAgainstShape(rep, inner, paramsShape, p.KeySpan, shapeCodes{
			unknown: diag.SemaModuleParamUnknown,
			missing: diag.SemaModuleParamMissing,
			subject: fmt.Sprintf("the parameters of module %q", d.Name),
		})
		return
	}
}
