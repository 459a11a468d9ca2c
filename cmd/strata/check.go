package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"strata/internal/diagfmt"
	"strata/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [entry.src...|dir]",
	Short: "Check entry files and every module they reference",
	Long: `Check entry files and every module they reference. Without arguments the
entries of the nearest strata.toml are checked. json and msgpack write one
document per entry.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|json|msgpack)")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Int("jobs", 0, "max entries checked in parallel (0=auto)")
	checkCmd.Flags().String("catalog", "", "additional resource type catalog (TOML)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().String("ui", "auto", "live progress view (auto|on|off)")
}

type reportOptions struct {
	format    string
	color     bool
	withNotes bool
	pathMode  diagfmt.PathMode
	baseDir   string
	quiet     bool
	timings   bool
	multi     bool
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	format = strings.ToLower(format)
	switch format {
	case "pretty", "short", "json", "msgpack":
	default:
		return fmt.Errorf("unsupported format %q (must be pretty, short, json or msgpack)", format)
	}

	ro, err := readReportOptions(cmd, format)
	if err != nil {
		return err
	}
	in, err := loadInputs(cmd, args)
	if err != nil {
		return err
	}
	ro.baseDir = in.BaseDir
	ro.multi = len(in.Entries) > 1

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	withUI := !ro.quiet && (format == "pretty" || format == "short") && shouldUseTUI(mode, len(in.Entries))

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	var results []*driver.Result
	if withUI {
		results, err = runCheckWithUI(cmd.Context(), fmt.Sprintf("checking %d entries", len(in.Entries)), in.Entries, in.Options)
	} else {
		results, err = driver.Check(cmd.Context(), in.Entries, in.Options)
	}
	failed := err != nil || driver.Failed(results)
	cleanup(failed)
	if err != nil {
		return err
	}

	if err := writeResults(cmd.OutOrStdout(), results, ro); err != nil {
		return err
	}
	if failed {
		return errChecksFailed
	}
	return nil
}

func readReportOptions(cmd *cobra.Command, format string) (reportOptions, error) {
	ro := reportOptions{format: format, pathMode: diagfmt.PathModeAuto}
	var err error
	if ro.color, err = useColor(cmd); err != nil {
		return ro, err
	}
	if ro.quiet, err = cmd.Root().PersistentFlags().GetBool("quiet"); err != nil {
		return ro, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if ro.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return ro, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if ro.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return ro, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return ro, fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	if fullPath {
		ro.pathMode = diagfmt.PathModeAbsolute
	}
	return ro, nil
}

func writeResults(w io.Writer, results []*driver.Result, ro reportOptions) error {
	for _, r := range results {
		if err := writeResult(w, r, ro); err != nil {
			return err
		}
	}
	return nil
}

func writeResult(w io.Writer, r *driver.Result, ro reportOptions) error {
	jsonOpts := diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         ro.pathMode,
		BaseDir:          ro.baseDir,
		IncludeNotes:     ro.withNotes,
	}
	if ro.multi {
		jsonOpts.Entry = r.Entry
	}
	switch ro.format {
	case "json":
		return diagfmt.JSON(w, r.Diagnostics, r, jsonOpts)
	case "msgpack":
		return diagfmt.Msgpack(w, r.Diagnostics, r, jsonOpts)
	case "short":
		if err := diagfmt.Short(w, r.Diagnostics, r, ro.pathMode, ro.baseDir); err != nil {
			return err
		}
	default:
		err := diagfmt.Pretty(w, r.Diagnostics, r, diagfmt.PrettyOpts{
			Color:     ro.color,
			PathMode:  ro.pathMode,
			BaseDir:   ro.baseDir,
			ShowNotes: ro.withNotes,
		})
		if err != nil {
			return err
		}
	}
	if r.Dropped > 0 {
		fmt.Fprintf(w, "%s: %d more diagnostics not shown\n", r.Entry, r.Dropped)
	}
	if !ro.quiet {
		fmt.Fprintln(w, summaryLine(r, ro.color))
	}
	if ro.timings {
		fmt.Fprint(w, r.Timer.Summary())
	}
	return nil
}
