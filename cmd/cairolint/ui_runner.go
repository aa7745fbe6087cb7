package main

import (
	"context"
	"io"

	"cairolint/internal/driver"
	"cairolint/internal/ui"
)

type lintOutcome struct {
	result *driver.Result
	err    error
}

type fixOutcome struct {
	report *driver.FixReport
	err    error
}

// runLintWithUI lints in the background while the progress view reads
// driver events from the same channel.
func runLintWithUI(ctx context.Context, w io.Writer, title string, files []string, opts driver.Options) (*driver.Result, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan lintOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		res, err := driver.Lint(ctx, files, opts)
		outcomeCh <- lintOutcome{result: res, err: err}
		close(events)
	}()

	uiErr := ui.RunProgress(w, title, files, events)
	if uiErr != nil {
		drain(events)
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.result, uiErr
	}
	return outcome.result, outcome.err
}

func runFixWithUI(ctx context.Context, w io.Writer, title string, files []string, opts driver.Options, fopts driver.FixOptions) (*driver.FixReport, error) {
	events := make(chan driver.Event, 256)
	outcomeCh := make(chan fixOutcome, 1)

	go func() {
		opts.Progress = driver.ChannelSink{Ch: events}
		rep, err := driver.Fix(ctx, files, opts, fopts)
		outcomeCh <- fixOutcome{report: rep, err: err}
		close(events)
	}()

	uiErr := ui.RunProgress(w, title, files, events)
	if uiErr != nil {
		drain(events)
	}
	outcome := <-outcomeCh
	if uiErr != nil {
		return outcome.report, uiErr
	}
	return outcome.report, outcome.err
}

// drain не даёт воркерам зависнуть на отправке, если UI упал
func drain(events <-chan driver.Event) {
	go func() {
		for range events {
		}
	}()
}
