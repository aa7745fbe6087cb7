package fix

import (
	"bytes"
	"errors"
	"fmt"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/lint"
	"cairolint/internal/source"
)

// ErrStale means the file on disk no longer matches the analysed text.
var ErrStale = errors.New("file changed since analysis")

// Outcome is the terminal state of fixing one file.
type Outcome uint8

const (
	OutcomeNoEdits  Outcome = iota // ни у одной диагностики нет правки
	OutcomeApplied                 // все правки совместимы и записаны
	OutcomeRejected                // правки пересекаются, файл не тронут
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeRejected:
		return "rejected"
	default:
		return "no-edits"
	}
}

// FileResult describes what happened to one file.
type FileResult struct {
	Path    string
	Outcome Outcome
	Edits   []Edit
	Fixed   []byte // normalized text after the edits; nil unless applied
	Err     error
}

// Options tune FixFile.
type Options struct {
	DryRun bool // compute the result without writing
}

// FixFile plans the edits for diags, checks that they compose and writes the
// patched text through store. A read failure or a stale file is reported in
// FileResult.Err; overlapping edits leave the file untouched.
func FixFile(store Store, tree *ast.Tree, reg *lint.Registry, diags []diag.Diagnostic, opts Options) FileResult {
	res := FileResult{Path: tree.File.Path}
	edits := Plan(tree, reg, diags)
	if len(edits) == 0 {
		return res
	}
	sorted, ok := Resolve(edits)
	if !ok {
		res.Outcome = OutcomeRejected
		res.Edits = edits
		return res
	}
	res.Edits = sorted

	raw, err := store.Read(res.Path)
	if err != nil {
		res.Err = fmt.Errorf("read %s: %w", res.Path, err)
		return res
	}
	current, flags := source.Normalize(raw)
	if !bytes.Equal(current, tree.File.Content) {
		res.Err = fmt.Errorf("%s: %w", res.Path, ErrStale)
		return res
	}

	res.Fixed = []byte(ApplyEdits(string(current), sorted))
	res.Outcome = OutcomeApplied
	if opts.DryRun {
		return res
	}
	if err := store.Write(res.Path, source.Denormalize(res.Fixed, flags)); err != nil {
		res.Outcome = OutcomeRejected
		res.Err = fmt.Errorf("write %s: %w", res.Path, err)
	}
	return res
}
