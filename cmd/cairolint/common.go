package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"cairolint/internal/config"
	"cairolint/internal/diag"
	"cairolint/internal/driver"
	"cairolint/internal/lint"
	"cairolint/internal/observ"
	"cairolint/internal/rules"
)

// session is what every linting command needs before it can start.
type session struct {
	fs       afero.Fs
	cfg      *config.Config
	reg      *lint.Registry
	files    []string
	timer    *observ.Timer
	quiet    bool
	timings  bool
	maxDiags int
}

// targets defaults to the current directory.
func targets(args []string) []string {
	if len(args) == 0 {
		return []string{"."}
	}
	return args
}

// loadConfig uses --config when given, otherwise searches upward from
// the first target. The result is validated against the rule registry.
func loadConfig(cmd *cobra.Command, target string, reg *lint.Registry) (*config.Config, error) {
	explicit, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	var cfg *config.Config
	if explicit != "" {
		cfg, err = config.Load(explicit)
	} else {
		cfg, err = config.Discover(target)
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(reg); err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Path, err)
	}
	return cfg, nil
}

func newSession(cmd *cobra.Command, args []string) (*session, error) {
	root := cmd.Root().PersistentFlags()
	quiet, err := root.GetBool("quiet")
	if err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := root.GetBool("timings")
	if err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiags, err := root.GetInt("max-diagnostics")
	if err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	s := &session{
		fs:       afero.NewOsFs(),
		reg:      rules.Registry(),
		quiet:    quiet,
		timings:  timings,
		maxDiags: maxDiags,
	}
	if timings {
		s.timer = observ.NewTimer()
	}
	roots := targets(args)
	s.cfg, err = loadConfig(cmd, roots[0], s.reg)
	if err != nil {
		return nil, err
	}
	done := s.timer.Track("collect")
	s.files, err = driver.Collect(s.fs, roots, s.cfg)
	done(fmt.Sprintf("files=%d", len(s.files)))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// options builds driver options; jobs <= 0 falls back to the config.
func (s *session) options(jobs int) driver.Options {
	if jobs <= 0 && s.cfg != nil {
		jobs = s.cfg.Jobs
	}
	base, err := os.Getwd()
	if err != nil {
		base = ""
	}
	return driver.Options{
		Fs:             s.fs,
		Config:         s.cfg,
		Registry:       s.reg,
		Jobs:           jobs,
		MaxDiagnostics: s.maxDiags,
		Timer:          s.timer,
		BaseDir:        base,
	}
}

func (s *session) printTimings(w io.Writer) {
	if s.timings && s.timer != nil {
		fmt.Fprint(w, s.timer.Summary())
	}
}

// reportFileErrors prints load failures; they never become diagnostics.
func reportFileErrors(w io.Writer, res *driver.Result) {
	for i := range res.Files {
		if err := res.Files[i].Err; err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
		}
	}
}

// adjustSeverity applies --no-warnings and --warnings-as-errors.
func adjustSeverity(diags []diag.Diagnostic, noWarnings, warningsAsErrors bool) []diag.Diagnostic {
	out := diags[:0:0]
	for _, d := range diags {
		if d.Severity < diag.SevError {
			if noWarnings {
				continue
			}
			if warningsAsErrors {
				d.Severity = diag.SevError
			}
		}
		out = append(out, d)
	}
	return out
}

func hasErrors(diags []diag.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity >= diag.SevError {
			return true
		}
	}
	return false
}

func absOrSelf(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}
