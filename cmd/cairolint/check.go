package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cairolint/internal/config"
	"cairolint/internal/diag"
	"cairolint/internal/diagfmt"
	"cairolint/internal/driver"
	"cairolint/internal/lint"
	"cairolint/internal/version"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path...]",
	Short: "Lint Cairo files and print diagnostics",
	Long: `Lint every *.cairo file under the given paths (default: current directory),
print diagnostics in the chosen format and exit with status 1 when any of
them is an error.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|short|cairo|json|sarif)")
	checkCmd.Flags().Bool("suggest", false, "attach suggested fixes to diagnostics")
	checkCmd.Flags().Bool("preview", false, "show before/after preview of suggested fixes")
	checkCmd.Flags().Bool("with-notes", true, "include diagnostic notes")
	checkCmd.Flags().Bool("no-warnings", false, "drop warning diagnostics")
	checkCmd.Flags().Bool("warnings-as-errors", false, "treat warnings as errors")
	checkCmd.Flags().Int("jobs", 0, "parallel workers (0 = config or GOMAXPROCS)")
	checkCmd.Flags().Bool("changed", false, "only lint files modified in the git worktree")
	checkCmd.Flags().Bool("cache", false, "reuse diagnostics of unchanged files from the on-disk cache")
	checkCmd.Flags().String("path-mode", "auto", "how to print paths (auto|absolute|relative|basename)")
	checkCmd.Flags().Int8("context", 0, "source lines of context around each diagnostic (pretty)")
}

type checkFlags struct {
	format           string
	suggest          bool
	preview          bool
	withNotes        bool
	noWarnings       bool
	warningsAsErrors bool
	jobs             int
	changed          bool
	cache            bool
	pathMode         diagfmt.PathMode
	context          int8
}

func readCheckFlags(cmd *cobra.Command) (checkFlags, error) {
	var f checkFlags
	var err error
	if f.format, err = cmd.Flags().GetString("format"); err != nil {
		return f, fmt.Errorf("failed to get format flag: %w", err)
	}
	f.format = strings.ToLower(f.format)
	switch f.format {
	case "pretty", "short", "cairo", "json", "sarif":
	default:
		return f, fmt.Errorf("unsupported format %q (must be pretty, short, cairo, json or sarif)", f.format)
	}
	if f.suggest, err = cmd.Flags().GetBool("suggest"); err != nil {
		return f, fmt.Errorf("failed to get suggest flag: %w", err)
	}
	if f.preview, err = cmd.Flags().GetBool("preview"); err != nil {
		return f, fmt.Errorf("failed to get preview flag: %w", err)
	}
	if f.withNotes, err = cmd.Flags().GetBool("with-notes"); err != nil {
		return f, fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	if f.noWarnings, err = cmd.Flags().GetBool("no-warnings"); err != nil {
		return f, fmt.Errorf("failed to get no-warnings flag: %w", err)
	}
	if f.warningsAsErrors, err = cmd.Flags().GetBool("warnings-as-errors"); err != nil {
		return f, fmt.Errorf("failed to get warnings-as-errors flag: %w", err)
	}
	if f.noWarnings && f.warningsAsErrors {
		return f, fmt.Errorf("--no-warnings and --warnings-as-errors are mutually exclusive")
	}
	if f.jobs, err = cmd.Flags().GetInt("jobs"); err != nil {
		return f, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if f.changed, err = cmd.Flags().GetBool("changed"); err != nil {
		return f, fmt.Errorf("failed to get changed flag: %w", err)
	}
	if f.cache, err = cmd.Flags().GetBool("cache"); err != nil {
		return f, fmt.Errorf("failed to get cache flag: %w", err)
	}
	mode, err := cmd.Flags().GetString("path-mode")
	if err != nil {
		return f, fmt.Errorf("failed to get path-mode flag: %w", err)
	}
	var ok bool
	if f.pathMode, ok = diagfmt.ParsePathMode(mode); !ok {
		return f, fmt.Errorf("invalid --path-mode value %q", mode)
	}
	if f.context, err = cmd.Flags().GetInt8("context"); err != nil {
		return f, fmt.Errorf("failed to get context flag: %w", err)
	}
	// превью без фиксов бессмысленно
	if f.preview {
		f.suggest = true
	}
	return f, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	flags, err := readCheckFlags(cmd)
	if err != nil {
		return err
	}
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	files := s.files
	if flags.changed {
		changed, err := driver.ChangedFiles(absOrSelf(targets(args)[0]))
		if err != nil {
			return fmt.Errorf("--changed: %w", err)
		}
		files = driver.FilterChanged(files, changed)
	}

	opts := s.options(flags.jobs)
	opts.Suggest = flags.suggest
	if flags.cache {
		dir, err := driver.DefaultCacheDir("cairolint")
		if err != nil {
			return err
		}
		if opts.Cache, err = driver.OpenDiskCache(s.fs, dir); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	useTUI, err := shouldUseTUI(cmd, flags.format)
	if err != nil {
		return err
	}
	var res *driver.Result
	if useTUI && len(files) > 0 {
		res, err = runLintWithUI(cmd.Context(), cmd.ErrOrStderr(), "cairolint check", files, opts)
	} else {
		res, err = driver.Lint(cmd.Context(), files, opts)
	}
	if err != nil {
		return err
	}

	diags := adjustSeverity(res.Diagnostics(), flags.noWarnings, flags.warningsAsErrors)
	if err := printDiagnostics(out, diags, res, s, flags, os.Args[1:]); err != nil {
		return err
	}
	reportFileErrors(cmd.ErrOrStderr(), res)
	if !s.quiet && flags.format == "pretty" {
		fmt.Fprintf(cmd.ErrOrStderr(), "checked %d file(s), %d diagnostic(s)\n", len(files), len(diags))
	}
	s.printTimings(cmd.ErrOrStderr())

	if hasErrors(diags) || res.Errs() != nil {
		return errFailed
	}
	return nil
}

func printDiagnostics(w io.Writer, diags []diag.Diagnostic, res *driver.Result, s *session, flags checkFlags, invocation []string) error {
	switch flags.format {
	case "pretty":
		diagfmt.Pretty(w, diags, res.FileSet, diagfmt.PrettyOpts{
			Color:       !color.NoColor,
			Context:     flags.context,
			PathMode:    flags.pathMode,
			ShowNotes:   flags.withNotes,
			ShowFixes:   flags.suggest,
			ShowPreview: flags.preview,
		})
	case "short":
		diagfmt.Short(w, diags, res.FileSet, flags.pathMode)
	case "cairo":
		for _, d := range diags {
			fmt.Fprint(w, diagfmt.Format(res.FileSet, d))
		}
	case "json":
		return diagfmt.JSON(w, diags, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         flags.pathMode,
			IncludeNotes:     flags.withNotes,
			IncludeFixes:     flags.suggest,
			IncludePreviews:  flags.preview,
		})
	case "sarif":
		return diagfmt.Sarif(w, diags, res.FileSet, sarifMeta(s.reg, s.cfg, invocation))
	}
	return nil
}

// sarifMeta describes every registered rule with its effective enablement.
func sarifMeta(reg *lint.Registry, cfg *config.Config, invocation []string) diagfmt.SarifRunMeta {
	meta := diagfmt.SarifRunMeta{
		ToolName:       "cairolint",
		ToolVersion:    version.Number,
		InvocationArgs: invocation,
	}
	for _, r := range reg.Rules() {
		meta.Rules = append(meta.Rules, diagfmt.SarifRule{
			ID:        r.Code.ID(),
			Name:      r.Name,
			Message:   r.Message,
			Level:     diagfmt.SarifLevel(r.Severity),
			IsEnabled: cfg.Enabled(r.Name, r.EnabledByDefault),
		})
	}
	return meta
}
