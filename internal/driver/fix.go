package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"cairolint/internal/fix"
	"cairolint/internal/trace"
)

// ErrSyntax marks files the fixer refused to touch because they did not parse cleanly.
var ErrSyntax = errors.New("file has syntax errors")

// FixOptions tune Fix.
type FixOptions struct {
	DryRun bool
}

// FixReport pairs the lint run with what happened to every file.
type FixReport struct {
	Lint  *Result
	Files []fix.FileResult
}

// Applied counts files that were (or, in dry run, would be) rewritten.
func (r *FixReport) Applied() int {
	n := 0
	for _, f := range r.Files {
		if f.Outcome == fix.OutcomeApplied && f.Err == nil {
			n++
		}
	}
	return n
}

// Fix lints paths and applies every compatible fix, one file at a time.
// The result cache is bypassed: edits need fresh trees.
func Fix(ctx context.Context, paths []string, opts Options, fopts FixOptions) (*FixReport, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	opts.Cache = nil
	opts.Suggest = false
	res, err := Lint(ctx, paths, opts)
	if err != nil {
		return nil, err
	}
	ctx, span := trace.Start(ctx, trace.ScopePass, "fix")
	defer span.End("")
	done := opts.Timer.Track("fix")
	defer func() { done("") }()

	store := fix.NewStore(opts.Fs)
	report := &FixReport{Lint: res, Files: make([]fix.FileResult, 0, len(res.Files))}
	for i := range res.Files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		fr := &res.Files[i]
		switch {
		case fr.Err != nil:
			report.Files = append(report.Files, fix.FileResult{Path: fr.Path, Err: fr.Err})
			continue
		case fr.HasSyntaxErrors():
			report.Files = append(report.Files, fix.FileResult{Path: fr.Path, Err: fmt.Errorf("%s: %w", fr.Path, ErrSyntax)})
			continue
		}
		emit(opts.Progress, Event{File: fr.Path, Stage: StageFix, Status: StatusWorking})
		out := fix.FixFile(store, fr.Tree, opts.Registry, fr.Diagnostics, fix.Options{DryRun: fopts.DryRun})
		status := StatusDone
		if out.Err != nil {
			status = StatusError
		}
		emit(opts.Progress, Event{File: fr.Path, Stage: StageFix, Status: status, Err: out.Err})
		trace.Point(trace.WithFile(ctx, fr.Path), trace.ScopeFile, "fix", out.Outcome.String())
		report.Files = append(report.Files, out)
	}
	return report, nil
}
