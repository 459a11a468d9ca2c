package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"strata/internal/driver"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] [entry.src...|dir]",
	Short: "Check entry files again whenever a module changes",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	watchCmd.Flags().Int("jobs", 0, "max entries checked in parallel (0=auto)")
	watchCmd.Flags().String("catalog", "", "additional resource type catalog (TOML)")
	watchCmd.Flags().Duration("debounce", 250*time.Millisecond, "quiet period before checking again")
}

func runWatch(cmd *cobra.Command, args []string) error {
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	ro := reportOptions{format: "pretty"}
	if ro.color, err = useColor(cmd); err != nil {
		return err
	}
	if ro.timings, err = cmd.Root().PersistentFlags().GetBool("timings"); err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	in, err := loadInputs(cmd, args)
	if err != nil {
		return err
	}
	ro.baseDir = in.BaseDir

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup(false)

	out := cmd.OutOrStdout()
	return driver.Watch(cmd.Context(), in.Entries, driver.WatchOptions{
		Check:    in.Options,
		Debounce: debounce,
		OnResults: func(results []*driver.Result, changed []string) {
			if len(changed) > 0 {
				fmt.Fprintln(out, render(mutedStyle, ro.color, fmt.Sprintf("-- %s changed --", plural(len(changed), "file"))))
			}
			if err := writeResults(out, results, ro); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
			}
		},
	})
}
