package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cairolint/internal/version"
)

// errFailed makes main exit with status 1 without printing anything: the
// reason (error diagnostics, failed files) is already reported.
var errFailed = errors.New("cairolint failed")

var rootCmd = &cobra.Command{
	Use:           "cairolint",
	Short:         "Lint and auto-fix Cairo sources",
	Long:          `cairolint checks Cairo files against a set of lint rules and can rewrite them with the suggested fixes`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		useColor, err := readColor(cmd)
		if err != nil {
			return err
		}
		color.NoColor = !useColor
		stopTrace, err := setupTracing(cmd)
		if err != nil {
			return err
		}
		stopProf, err := setupProfiling(cmd)
		if err != nil {
			stopTrace()
			return err
		}
		// профили закрываем раньше трейсера
		finish = func() {
			stopProf()
			stopTrace()
			finish = func() {}
		}
		return nil
	},
}

// finish stops profilers and flushes the tracer; main calls it even when
// the command fails.
var finish = func() {}

func init() {
	rootCmd.Version = version.Number

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(treeCmd)
	rootCmd.AddCommand(tokensCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 0, "maximum number of diagnostics per file (0 = unlimited)")
	rootCmd.PersistentFlags().String("ui", "auto", "progress view (auto|on|off)")
	rootCmd.PersistentFlags().String("config", "", "path to cairolint.toml or .cairolint.yaml (default: discovered upward from the target)")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write Go runtime execution trace to file")
}

// main runs the root command. Reported failures exit with status 1, any
// other error is printed and exits with status 2.
func main() {
	err := rootCmd.Execute()
	finish()
	switch {
	case err == nil:
	case errors.Is(err, errFailed):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "cairolint: %v\n", err)
		os.Exit(2)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
