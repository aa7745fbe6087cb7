package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"cairolint/internal/driver"
	"cairolint/internal/fix"
)

var fixCmd = &cobra.Command{
	Use:   "fix [flags] [path...]",
	Short: "Apply lint fixes to Cairo files",
	Long: `Lint the given paths and rewrite every file whose fixes do not overlap.
Files with syntax errors are left untouched.`,
	RunE: runFix,
}

func init() {
	fixCmd.Flags().Bool("dry-run", false, "compute fixes without writing files")
	fixCmd.Flags().Bool("print", false, "with --dry-run, print the fixed text of every changed file")
	fixCmd.Flags().Int("jobs", 0, "parallel workers (0 = config or GOMAXPROCS)")
}

func runFix(cmd *cobra.Command, args []string) error {
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return fmt.Errorf("failed to get dry-run flag: %w", err)
	}
	printFixed, err := cmd.Flags().GetBool("print")
	if err != nil {
		return fmt.Errorf("failed to get print flag: %w", err)
	}
	if printFixed && !dryRun {
		return fmt.Errorf("--print requires --dry-run")
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	opts := s.options(jobs)
	fopts := driver.FixOptions{DryRun: dryRun}

	useTUI, err := shouldUseTUI(cmd, "pretty")
	if err != nil {
		return err
	}
	var report *driver.FixReport
	if useTUI && len(s.files) > 0 {
		report, err = runFixWithUI(cmd.Context(), cmd.ErrOrStderr(), "cairolint fix", s.files, opts, fopts)
	} else {
		report, err = driver.Fix(cmd.Context(), s.files, opts, fopts)
	}
	if err != nil {
		return err
	}

	failed := printFixReport(cmd.OutOrStdout(), cmd.ErrOrStderr(), report, dryRun, printFixed, s.quiet)
	s.printTimings(cmd.ErrOrStderr())
	if failed {
		return errFailed
	}
	return nil
}

// printFixReport writes one line per touched file and reports whether any
// file failed.
func printFixReport(out, errOut io.Writer, report *driver.FixReport, dryRun, printFixed, quiet bool) bool {
	verb := "fixed"
	if dryRun {
		verb = "would fix"
	}
	failed := false
	for _, f := range report.Files {
		switch {
		case errors.Is(f.Err, driver.ErrSyntax):
			fmt.Fprintf(errOut, "skipped %s: syntax errors\n", f.Path)
			failed = true
		case errors.Is(f.Err, fix.ErrStale):
			fmt.Fprintf(errOut, "skipped %s: file changed while fixing\n", f.Path)
			failed = true
		case f.Err != nil:
			fmt.Fprintf(errOut, "error: %v\n", f.Err)
			failed = true
		case f.Outcome == fix.OutcomeRejected:
			fmt.Fprintf(errOut, "skipped %s: %d overlapping edits\n", f.Path, len(f.Edits))
		case f.Outcome == fix.OutcomeApplied:
			if !quiet {
				fmt.Fprintf(out, "%s %s (%d edit(s))\n", verb, f.Path, len(f.Edits))
			}
			if printFixed {
				fmt.Fprintf(out, "--- %s\n%s", f.Path, f.Fixed)
			}
		}
	}
	if !quiet {
		fmt.Fprintf(out, "%s %d of %d file(s)\n", verb, report.Applied(), len(report.Files))
	}
	return failed
}
