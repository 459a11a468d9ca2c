package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"strata/internal/driver"
	"strata/internal/project"
	"strata/internal/types/catalog"
)

var errNoEntries = errors.New("no entry files given and no " + project.ManifestName + " found")

// inputs is what a command checks and how.
type inputs struct {
	Entries  []string
	Options  driver.Options
	BaseDir  string
	Manifest *project.Manifest // nil without a manifest
}

// loadInputs combines arguments, the nearest manifest and flags. Entries
// given as arguments replace the manifest's; flags set on the command line
// override manifest settings.
func loadInputs(cmd *cobra.Command, args []string) (*inputs, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	start := cwd
	if len(args) > 0 {
		start = filepath.Dir(args[0])
		if info, err := os.Stat(args[0]); err == nil && info.IsDir() {
			start = args[0]
		}
	}
	manifest, _, err := project.FindAndLoad(start)
	if err != nil {
		return nil, err
	}
	return resolveInputs(cmd, args, manifest, cwd)
}

func resolveInputs(cmd *cobra.Command, args []string, manifest *project.Manifest, cwd string) (*inputs, error) {
	in := &inputs{BaseDir: cwd, Manifest: manifest}
	types := catalog.Default()
	if manifest != nil {
		in.BaseDir = manifest.Root
		in.Options.MaxDiagnostics = manifest.MaxDiagnostics
		in.Options.WarningsAsErrors = manifest.WarningsAsErrors
		if manifest.Catalog != "" {
			extra, err := catalog.Load(manifest.Catalog)
			if err != nil {
				return nil, err
			}
			types = types.Merge(extra)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			if manifest == nil {
				return nil, fmt.Errorf("%s is a directory without %s", arg, project.ManifestName)
			}
			in.Entries = append(in.Entries, manifest.Entries...)
			continue
		}
		in.Entries = append(in.Entries, arg)
	}
	if len(args) == 0 && manifest != nil {
		in.Entries = manifest.Entries
	}
	if len(in.Entries) == 0 {
		return nil, errNoEntries
	}

	flags := cmd.Root().PersistentFlags()
	if flags.Changed("max-diagnostics") || manifest == nil {
		n, err := flags.GetInt("max-diagnostics")
		if err != nil {
			return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
		if n < 0 {
			return nil, fmt.Errorf("max-diagnostics must not be negative")
		}
		in.Options.MaxDiagnostics = n
	}
	if f := cmd.Flags().Lookup("warnings-as-errors"); f != nil && f.Changed {
		v, err := cmd.Flags().GetBool("warnings-as-errors")
		if err != nil {
			return nil, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
		}
		in.Options.WarningsAsErrors = v
	}
	if f := cmd.Flags().Lookup("jobs"); f != nil {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return nil, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		in.Options.Jobs = jobs
	}
	if f := cmd.Flags().Lookup("catalog"); f != nil && f.Value.String() != "" {
		extra, err := catalog.Load(f.Value.String())
		if err != nil {
			return nil, err
		}
		types = types.Merge(extra)
	}
	in.Options.Types = types
	return in, nil
}
