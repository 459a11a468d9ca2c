package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"strata/internal/compile"
	"strata/internal/driver"
	"strata/internal/source"
)

var graphCmd = &cobra.Command{
	Use:   "graph [flags] [entry.src...|dir]",
	Short: "Show the module graph of entry files",
	RunE:  runGraph,
}

func runGraph(cmd *cobra.Command, args []string) error {
	colored, err := useColor(cmd)
	if err != nil {
		return err
	}
	in, err := loadInputs(cmd, args)
	if err != nil {
		return err
	}
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	results, err := driver.Check(cmd.Context(), in.Entries, in.Options)
	cleanup(err != nil)
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.Collection == nil {
			fmt.Fprintln(cmd.OutOrStdout(), summaryLine(r, colored))
			continue
		}
		writeGraph(cmd.OutOrStdout(), r.Entry, driver.Graph(r.Collection), in.BaseDir, colored)
	}
	return nil
}

func writeGraph(w io.Writer, entry string, report driver.GraphReport, baseDir string, colored bool) {
	name := func(path string) string {
		if baseDir == "" {
			return path
		}
		if rel, err := source.RelativePath(path, baseDir); err == nil {
			return filepath.ToSlash(rel)
		}
		return path
	}
	paths := make(map[compile.ID]string, len(report.Files))
	for _, f := range report.Files {
		paths[f.ID] = name(f.Path)
	}

	fmt.Fprintln(w, render(pathStyle, colored, entry))
	for _, f := range report.Files {
		line := "  " + paths[f.ID]
		switch {
		case f.Failure != "":
			line += " " + render(failStyle, colored, "(failed: "+f.Failure+")")
		case f.InCycle:
			line += " " + render(cycleStyle, colored, "(cycle)")
		}
		fmt.Fprintln(w, line)
		for _, dep := range f.Deps {
			fmt.Fprintln(w, render(mutedStyle, colored, "    -> "+paths[dep]))
		}
	}
	for i, batch := range report.Batches {
		names := make([]string, len(batch))
		for j, id := range batch {
			names[j] = paths[id]
		}
		fmt.Fprintf(w, "  %s %s\n", render(mutedStyle, colored, fmt.Sprintf("batch %d:", i+1)), strings.Join(names, ", "))
	}
	for _, cycle := range report.Cycles {
		names := make([]string, 0, len(cycle)+1)
		for _, id := range cycle {
			names = append(names, paths[id])
		}
		names = append(names, paths[cycle[0]])
		fmt.Fprintf(w, "  %s %s\n", render(cycleStyle, colored, "cycle:"), strings.Join(names, " -> "))
	}
}
