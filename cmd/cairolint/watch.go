package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cairolint/internal/diagfmt"
	"cairolint/internal/driver"
)

var watchCmd = &cobra.Command{
	Use:   "watch [flags] [path...]",
	Short: "Re-lint Cairo files whenever they change",
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().Duration("debounce", driver.DefaultDebounce, "quiet period before re-linting")
	watchCmd.Flags().Bool("clear", false, "clear the screen before every run")
}

func runWatch(cmd *cobra.Command, args []string) error {
	debounce, err := cmd.Flags().GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	clearScreen, err := cmd.Flags().GetBool("clear")
	if err != nil {
		return fmt.Errorf("failed to get clear flag: %w", err)
	}
	s, err := newSession(cmd, args)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	out := cmd.OutOrStdout()
	opts := s.options(0)
	run := func(changed []string) {
		files := s.files
		if changed != nil {
			files = existing(changed)
			if len(files) == 0 {
				return
			}
			// новые файлы подхватываем, исключённые конфигом пропускаем
			var err error
			if files, err = driver.Collect(s.fs, files, s.cfg); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
				return
			}
		}
		if clearScreen {
			fmt.Fprint(out, "\033[H\033[2J")
		}
		start := time.Now()
		res, err := driver.Lint(ctx, files, opts)
		if err != nil {
			return
		}
		diags := res.Diagnostics()
		diagfmt.Pretty(out, diags, res.FileSet, diagfmt.PrettyOpts{Color: !color.NoColor, ShowNotes: true})
		reportFileErrors(cmd.ErrOrStderr(), res)
		if !s.quiet {
			fmt.Fprintf(out, "[%s] %d file(s), %d diagnostic(s) in %s\n",
				time.Now().Format(time.TimeOnly), len(files), len(diags), time.Since(start).Round(time.Millisecond))
		}
	}

	err = driver.Watch(ctx, targets(args), debounce, run)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// existing drops paths removed since the event fired.
func existing(paths []string) []string {
	out := paths[:0:0]
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	return out
}
