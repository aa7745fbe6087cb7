package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"cairolint/internal/ast"
	"cairolint/internal/config"
	"cairolint/internal/diag"
	"cairolint/internal/fix"
	"cairolint/internal/lint"
	"cairolint/internal/observ"
	"cairolint/internal/parser"
	"cairolint/internal/sema"
	"cairolint/internal/source"
	"cairolint/internal/trace"
)

// Options configure a lint run over many files.
type Options struct {
	Fs             afero.Fs // nil — OS filesystem
	Config         *config.Config
	Registry       *lint.Registry
	Jobs           int // <= 0 — GOMAXPROCS
	MaxDiagnostics int // per file, 0 — unlimited
	Suggest        bool
	Cache          *DiskCache // only consulted when the tree is not needed
	Progress       ProgressSink
	Timer          *observ.Timer
	BaseDir        string
}

// FileResult is the outcome of linting one file.
type FileResult struct {
	Path        string
	FileID      source.FileID
	Tree        *ast.Tree // nil when served from cache or on load failure
	Diagnostics []diag.Diagnostic
	Cached      bool
	Err         error
}

// HasSyntaxErrors reports whether the parser complained about the file.
func (r *FileResult) HasSyntaxErrors() bool {
	for _, d := range r.Diagnostics {
		if d.Severity == diag.SevError && !d.Code.IsLint() {
			return true
		}
	}
	return false
}

// Result collects per-file results in path order.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
}

// Diagnostics returns every diagnostic of the run, file by file.
func (r *Result) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for i := range r.Files {
		out = append(out, r.Files[i].Diagnostics...)
	}
	return out
}

// Errs returns the per-file failures joined into one error, or nil.
func (r *Result) Errs() error {
	var errs []error
	for i := range r.Files {
		if r.Files[i].Err != nil {
			errs = append(errs, r.Files[i].Err)
		}
	}
	return errors.Join(errs...)
}

// Analyze lints one already-loaded file: parse, semantic facts, checkers,
// suppression. Diagnostics come back sorted by position.
func Analyze(file *source.File, reg *lint.Registry, cfg lint.Settings, maxDiagnostics int) (*ast.Tree, []diag.Diagnostic) {
	bag := diag.NewBag(maxDiagnostics)
	// восстановление после ошибки может повторить тот же репорт
	res := parser.Parse(file, diag.NewDedupReporter(diag.BagReporter{Bag: bag}))
	facts := sema.Check(res.Tree, sema.Options{})
	for _, d := range lint.Run(res.Tree, &facts, reg, cfg) {
		bag.Add(d)
	}
	bag.Sort()
	return res.Tree, bag.Items()
}

// Lint loads paths into one FileSet and lints them in parallel. Per-file
// failures land in FileResult.Err; the returned error is reserved for
// cancellation.
func Lint(ctx context.Context, paths []string, opts Options) (*Result, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	ctx, span := trace.Start(ctx, trace.ScopePass, "lint")
	defer span.End("")

	fileSet := source.NewFileSetWithBase(opts.BaseDir)
	result := &Result{FileSet: fileSet, Files: make([]FileResult, len(paths))}
	if len(paths) == 0 {
		return result, nil
	}

	// загрузка последовательно: FileID должны идти в порядке путей
	done := opts.Timer.Track("load")
	for i, path := range paths {
		result.Files[i].Path = path
		emit(opts.Progress, Event{File: path, Stage: StageParse, Status: StatusQueued})
		id, err := fileSet.LoadFrom(opts.Fs, path)
		if err != nil {
			result.Files[i].Err = fmt.Errorf("read %s: %w", path, err)
			continue
		}
		result.Files[i].FileID = id
	}
	done(fmt.Sprintf("files=%d", len(paths)))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	// Результаты пишутся по индексу: мьютекс не нужен
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	done = opts.Timer.Track("lint")
	for i := range paths {
		fr := &result.Files[i]
		if fr.Err != nil {
			emit(opts.Progress, Event{File: fr.Path, Stage: StageParse, Status: StatusError, Err: fr.Err})
			continue
		}
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			lintOne(gctx, fileSet.Get(fr.FileID), fr, &opts)
			return nil
		})
	}
	err := g.Wait()
	done("")
	return result, err
}

func lintOne(ctx context.Context, file *source.File, fr *FileResult, opts *Options) {
	ctx = trace.WithFile(ctx, fr.Path)
	_, span := trace.Start(ctx, trace.ScopeFile, "file")
	start := time.Now()
	emit(opts.Progress, Event{File: fr.Path, Stage: StageLint, Status: StatusWorking})

	useCache := opts.Cache != nil && !opts.Suggest
	var key Digest
	if useCache {
		key = CacheKey(file.Content, opts.Config.Fingerprint())
		var payload DiskPayload
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
			fr.Diagnostics = fromPayload(file.ID, &payload)
			fr.Cached = true
			span.WithExtra("cache", "hit").End("")
			emit(opts.Progress, Event{File: fr.Path, Stage: StageLint, Status: StatusDone, Elapsed: time.Since(start)})
			return
		}
	}

	fr.Tree, fr.Diagnostics = Analyze(file, opts.Registry, opts.Config, opts.MaxDiagnostics)
	if opts.Suggest {
		fr.Diagnostics = fix.Suggest(fr.Tree, opts.Registry, fr.Diagnostics)
	}
	if useCache {
		if err := opts.Cache.Put(key, toPayload(fr.Path, fr.Diagnostics)); err != nil {
			trace.Point(ctx, trace.ScopeFile, "cache-write-failed", err.Error())
		}
	}
	span.WithExtra("diags", fmt.Sprint(len(fr.Diagnostics))).End("")
	emit(opts.Progress, Event{File: fr.Path, Stage: StageLint, Status: StatusDone, Elapsed: time.Since(start)})
}
