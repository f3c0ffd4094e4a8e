package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"vesszo/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "vesszo",
	Short: "Missing comma checker for Hungarian text",
	Long: `vesszo marks the places in Hungarian text where punctuation rules
usually require a comma that is missing.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupRun,
}

// exitError carries a non-default process status, e.g. 2 for --fail-on.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// main registers commands and persistent flags and runs the root command.
// Errors exit with status 1 unless they carry their own status.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	flags := rootCmd.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.Bool("timings", false, "show timing information")
	flags.Int("max-diagnostics", 0, "maximum number of diagnostics per document (0 = use config)")
	flags.String("config", "", "path to vesszo.toml (default: search upwards from the working directory)")
	flags.String("cpu-profile", "", "write a CPU profile to file")
	flags.String("mem-profile", "", "write a heap profile to file")
	flags.String("runtime-trace", "", "write a Go runtime trace to file")
	flags.String("trace", "", "write checker trace events to file (- for stderr)")
	flags.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	flags.String("trace-mode", "stream", "trace storage (stream|ring|both)")
	flags.Int("trace-ring-size", 4096, "events kept in ring mode")
	flags.Duration("trace-heartbeat", 0, "emit heartbeat trace events at this interval (0 = off)")

	err := rootCmd.Execute()
	runCleanups(err)
	if err == nil {
		return
	}
	var exit *exitError
	if errors.As(err, &exit) {
		if exit.msg != "" {
			fmt.Fprintln(os.Stderr, exit.msg)
		}
		os.Exit(exit.code)
	}
	fmt.Fprintf(os.Stderr, "vesszo: %v\n", err)
	os.Exit(1)
}

var cleanups []func(failed bool)

// setupRun starts tracing and profiling for every command.
func setupRun(cmd *cobra.Command, _ []string) error {
	traceCleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, traceCleanup)
	profCleanup, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	cleanups = append(cleanups, profCleanup)
	return nil
}

// runCleanups stops profilers before the tracer, in reverse setup order.
func runCleanups(err error) {
	var exit *exitError
	failed := err != nil && !errors.As(err, &exit)
	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i](failed)
	}
	cleanups = nil
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color against the stream the output goes to.
func useColor(cmd *cobra.Command, f *os.File) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		return isTerminal(f), nil
	}
	return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
}
