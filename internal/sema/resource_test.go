package sema_test

import (
	"testing"

	"strata/internal/ast"
	"strata/internal/diag"
	"strata/internal/sema"
	"strata/internal/source"
	"strata/internal/types"
)

func TestResourceBodyValidation(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []diag.Code
	}{
		{
			name: "valid",
			src: `resource sa 'Storage/accounts@2023-01-01' = {
  name: 'acct'
  location: 'westus'
  sku: { name: 'Standard_LRS' }
}
`,
		},
		{
			name: "missing required",
			src:  "resource sa 'Storage/accounts@2023-01-01' = {\n  name: 'acct'\n  sku: {}\n}\n",
			want: []diag.Code{diag.SemaMissingProperty},
		},
		{
			name: "unknown property",
			src:  "resource kv 'KeyVault/vaults@2023-02-01' = {\n  name: 'kv'\n  location: 'x'\n  tenantId: 't'\n  color: 'red'\n}\n",
			want: []diag.Code{diag.SemaUnknownProperty},
		},
		{
			name: "read-only property",
			src:  "resource kv 'KeyVault/vaults@2023-02-01' = {\n  name: 'kv'\n  location: 'x'\n  tenantId: 't'\n  vaultUri: 'u'\n}\n",
			want: []diag.Code{diag.SemaReadOnlyProperty},
		},
		{
			name: "mismatch",
			src:  "resource site 'Web/sites@2022-09-01' = {\n  name: 's'\n  location: 'x'\n  httpsOnly: 'yes'\n}\n",
			want: []diag.Code{diag.SemaTypeMismatch},
		},
		{
			name: "unknown type is a warning",
			src:  "resource x 'Custom/things@2020-01-01' = {\n  name: 'x'\n  anything: 1\n}\n",
			want: []diag.Code{diag.SemaUnknownResourceType},
		},
		{
			name: "malformed type",
			src:  "resource x 'nonsense' = {\n  name: 'x'\n}\n",
			want: []diag.Code{diag.SemaInvalidResourceType},
		},
		{
			name: "interpolated type",
			src:  "var v = '1'\nresource x 'A/b@${v}' = {\n  name: 'x'\n}\n",
			want: []diag.Code{diag.SemaInvalidResourceType},
		},
		{
			name: "body not an object",
			src:  "resource site 'Web/sites@2022-09-01' = 'oops'\n",
			want: []diag.Code{diag.SemaExpectObjectBody},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := check(t, tt.src, nil)
			expectCodes(t, f.tm.Diagnostics(), tt.want...)
		})
	}
}

func TestResourceReadOnlyPropertiesAreReadable(t *testing.T) {
	f := check(t, `resource site 'Web/sites@2022-09-01' = {
  name: 's'
  location: 'x'
}
var host = site.defaultHostName
var id = site.id
`, nil)
	expectCodes(t, f.tm.Diagnostics())
	in := f.tm.Interner()
	if in.Name(f.tm.TypeOf(f.decl(t, "host"))) != "string" || in.Name(f.tm.TypeOf(f.decl(t, "id"))) != "string" {
		t.Fatalf("read-only properties must be readable as strings")
	}
	site := f.decl(t, "site")
	if f.tm.TypeOf(site) != f.tm.DeclaredType(site) || in.KindOf(f.tm.TypeOf(site)) != types.KindResource {
		t.Fatalf("resource must be typed by its declared resource type")
	}
}

func TestUnknownResourceTypeIsLoose(t *testing.T) {
	f := check(t, "resource x 'Custom/things@2020-01-01' = {\n  name: 'x'\n}\nvar y = x.whatever\n", nil)
	expectCodes(t, f.tm.Diagnostics(), diag.SemaUnknownResourceType)
	if f.tm.Interner().KindOf(f.tm.TypeOf(f.decl(t, "y"))) != types.KindAny {
		t.Fatalf("properties of a loose resource must be any")
	}
}

func TestModuleBodyValidation(t *testing.T) {
	target := sema.ModuleInterface{
		Params: []sema.ModuleParam{
			{Name: "location", TypeName: "string", Required: true},
			{Name: "count", TypeName: "int"},
		},
		Outputs: []sema.ModuleOutput{{Name: "endpoint", TypeName: "string"}},
	}
	tests := []struct {
		name string
		src  string
		want []diag.Code
	}{
		{
			name: "valid",
			src:  "module m './m.src' = {\n  name: 'm'\n  params: {\n    location: 'x'\n    count: 2\n  }\n}\nvar e = m.outputs.endpoint\n",
		},
		{
			name: "unknown param",
			src:  "module m './m.src' = {\n  name: 'm'\n  params: {\n    location: 'x'\n    size: 2\n  }\n}\n",
			want: []diag.Code{diag.SemaModuleParamUnknown},
		},
		{
			name: "missing param",
			src:  "module m './m.src' = {\n  name: 'm'\n  params: {\n    count: 2\n  }\n}\n",
			want: []diag.Code{diag.SemaModuleParamMissing},
		},
		{
			name: "param mismatch",
			src:  "module m './m.src' = {\n  name: 'm'\n  params: {\n    location: 1\n  }\n}\n",
			want: []diag.Code{diag.SemaTypeMismatch},
		},
		{
			name: "missing name and params",
			src:  "module m './m.src' = {}\n",
			want: []diag.Code{diag.SemaMissingProperty, diag.SemaMissingProperty},
		},
		{
			name: "unknown output",
			src:  "module m './m.src' = {\n  name: 'm'\n  params: { location: 'x' }\n}\nvar e = m.outputs.nope\n",
			want: []diag.Code{diag.SemaUnknownProperty},
		},
		{
			name: "outputs are read-only",
			src:  "module m './m.src' = {\n  name: 'm'\n  params: { location: 'x' }\n  outputs: {}\n}\n",
			want: []diag.Code{diag.SemaReadOnlyProperty},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := check(t, tt.src, staticModules(target))
			expectCodes(t, f.tm.Diagnostics(), tt.want...)
		})
	}
}

func TestModuleFailureReplacesDiagnostics(t *testing.T) {
	failing := sema.ModuleResolverFunc(func(decl ast.NodeID) sema.ModuleResolution {
		d := diag.NewError(diag.SemaModuleLoadFailed, source.Span{}, "cannot load")
		return sema.ModuleResolution{Failure: &d}
	})
	f := check(t, "module m './m.src' = {\n  bogus: 1\n}\nvar e = m.outputs.x\n", failing)
	m := f.decl(t, "m")
	a := f.tm.TypeAssignment(m)
	expectCodes(t, a.Diagnostics, diag.SemaModuleLoadFailed)
	if !f.tm.Interner().IsError(a.Type) {
		t.Fatalf("failed module must have the error type")
	}
	expectCodes(t, f.tm.Diagnostics(), diag.SemaModuleLoadFailed)
}

func TestModuleWithoutResolverFails(t *testing.T) {
	f := check(t, "module m './m.src' = {\n  name: 'm'\n}\n", nil)
	expectCodes(t, f.tm.Diagnostics(), diag.SemaModuleLoadFailed)
}
