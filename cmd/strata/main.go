package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"strata/internal/prof"
	"strata/internal/version"
)

var rootCmd = &cobra.Command{
	Use:           "strata",
	Short:         "Strata infrastructure language checker",
	Long:          `Strata checks infrastructure programs split across module files`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// errChecksFailed makes the process exit with status 1 after diagnostics
// were already printed.
var errChecksFailed = errors.New("check failed")

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show per entry (0 = all)")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to a file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "text", "trace format (text|ndjson)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept in ring mode")
	rootCmd.PersistentFlags().String("cpuprofile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("memprofile", "", "write a heap profile to file on exit")
	rootCmd.PersistentPreRunE = startProfile

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := rootCmd.ExecuteContext(ctx)
	if profile != nil {
		if stopErr := profile.Stop(); stopErr != nil {
			fmt.Fprintf(os.Stderr, "profile: %v\n", stopErr)
		}
	}
	if err != nil {
		if !errors.Is(err, errChecksFailed) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		stop()
		os.Exit(1)
	}
}

var profile *prof.Profile

func startProfile(cmd *cobra.Command, _ []string) error {
	cpuPath, err := cmd.Root().PersistentFlags().GetString("cpuprofile")
	if err != nil {
		return fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	memPath, err := cmd.Root().PersistentFlags().GetString("memprofile")
	if err != nil {
		return fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	profile, err = prof.Start(cpuPath, memPath)
	return err
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag against the terminal state of stdout.
func useColor(cmd *cobra.Command) (bool, error) {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(os.Stdout) && os.Getenv("NO_COLOR") == "", nil
	default:
		return false, fmt.Errorf("unsupported color mode %q (must be auto, on or off)", mode)
	}
}
