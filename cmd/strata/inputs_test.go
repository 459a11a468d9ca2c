package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"strata/internal/driver"
	"strata/internal/fileio"
	"strata/internal/project"
	"strata/internal/types"
)

func testCommand() *cobra.Command {
	root := &cobra.Command{Use: "strata"}
	root.PersistentFlags().Int("max-diagnostics", 100, "")
	sub := &cobra.Command{Use: "check"}
	sub.Flags().Bool("warnings-as-errors", false, "")
	sub.Flags().Int("jobs", 0, "")
	sub.Flags().String("catalog", "", "")
	root.AddCommand(sub)
	return sub
}

func writeManifest(t *testing.T, dir, content string) *project.Manifest {
	t.Helper()
	path := filepath.Join(dir, project.ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	m, err := project.LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	return m
}

func TestInputsFromManifest(t *testing.T) {
	dir := t.TempDir()
	m := writeManifest(t, dir, "[project]\nentry = \"main.src\"\n[check]\nmax-diagnostics = 7\nwarnings-as-errors = true\n")
	in, err := resolveInputs(testCommand(), nil, m, "/elsewhere")
	if err != nil {
		t.Fatalf("resolveInputs: %v", err)
	}
	if len(in.Entries) != 1 || in.Entries[0] != filepath.Join(m.Root, "main.src") {
		t.Fatalf("entries = %v", in.Entries)
	}
	if in.Options.MaxDiagnostics != 7 || !in.Options.WarningsAsErrors {
		t.Fatalf("manifest settings not applied: %+v", in.Options)
	}
	if in.BaseDir != m.Root {
		t.Fatalf("base dir = %q, want the project root", in.BaseDir)
	}
}

func TestFlagsOverrideManifest(t *testing.T) {
	dir := t.TempDir()
	m := writeManifest(t, dir, "[project]\nentry = \"main.src\"\n[check]\nmax-diagnostics = 7\nwarnings-as-errors = true\n")
	cmd := testCommand()
	if err := cmd.Root().PersistentFlags().Set("max-diagnostics", "3"); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("warnings-as-errors", "false"); err != nil {
		t.Fatal(err)
	}
	in, err := resolveInputs(cmd, []string{"other.src"}, m, dir)
	if err != nil {
		t.Fatalf("resolveInputs: %v", err)
	}
	if len(in.Entries) != 1 || in.Entries[0] != "other.src" {
		t.Fatalf("arguments must replace manifest entries: %v", in.Entries)
	}
	if in.Options.MaxDiagnostics != 3 || in.Options.WarningsAsErrors {
		t.Fatalf("flags must win: %+v", in.Options)
	}
}

func TestInputsWithoutEntries(t *testing.T) {
	if _, err := resolveInputs(testCommand(), nil, nil, t.TempDir()); !errors.Is(err, errNoEntries) {
		t.Fatalf("expected errNoEntries, got %v", err)
	}
}

func TestCatalogFlagExtendsTypes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "extra.toml")
	content := "[[resource]]\ntype = \"Custom/things@2020-01-01\"\n\n  [[resource.property]]\n  name = \"size\"\n  type = \"int\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	cmd := testCommand()
	if err := cmd.Flags().Set("catalog", path); err != nil {
		t.Fatal(err)
	}
	in, err := resolveInputs(cmd, []string{"main.src"}, nil, dir)
	if err != nil {
		t.Fatalf("resolveInputs: %v", err)
	}
	for _, ref := range []string{"Custom/things@2020-01-01", "Web/sites@2022-09-01"} {
		r, err := types.ParseResourceTypeReference(ref)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := in.Options.Types.Shape(r); !ok {
			t.Fatalf("%s missing from merged catalog", ref)
		}
	}
}

func TestWriteGraphShowsCycles(t *testing.T) {
	res := fileio.NewMemoryResolver(map[string]string{
		"a.src": "module b './b.src' = {\n  name: 'b'\n}\n",
		"b.src": "module a './a.src' = {\n  name: 'a'\n}\n",
	})
	results, err := driver.Check(context.Background(), []string{"a.src"}, driver.Options{Resolver: res})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	var sb strings.Builder
	writeGraph(&sb, "a.src", driver.Graph(results[0].Collection), "", false)
	out := sb.String()
	for _, want := range []string{"  /a.src (cycle)", "    -> /b.src", "cycle: /a.src -> /b.src -> /a.src"} {
		if !strings.Contains(out, want) {
			t.Fatalf("graph output lacks %q:\n%s", want, out)
		}
	}
}

func TestSummaryLine(t *testing.T) {
	r := &driver.Result{Entry: "main.src", Errors: 2, Warnings: 1, Failed: true}
	got := summaryLine(r, false)
	if got != "main.src: failed (2 errors, 1 warning in 0 files)" {
		t.Fatalf("summaryLine = %q", got)
	}
}
