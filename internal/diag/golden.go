package diag

import (
	"cmp"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"cairolint/internal/source"
)

// GoldenOpts choose what FormatGolden prints under each diagnostic.
type GoldenOpts struct {
	Notes bool
	Fixes bool
}

type goldenEntry struct {
	path      string
	line, col uint32
	code      Code
	text      string
}

// FormatGolden renders diagnostics as stable text for golden comparisons:
//
//	src/lib.cairo:3:14 warning LNT4035 redundant_op: message
//	  note src/lib.cairo:2:1 text
//	  fix src/lib.cairo:3:14 "x"
//
// Entries are ordered by path, position and code. Paths are relative to the
// FileSet base dir; diagnostics in unknown files are dropped.
func FormatGolden(diags []Diagnostic, fs *source.FileSet, opts GoldenOpts) string {
	if fs == nil {
		return ""
	}
	entries := make([]goldenEntry, 0, len(diags))
	for i := range diags {
		if e, ok := goldenOf(&diags[i], fs, opts); ok {
			entries = append(entries, e)
		}
	}
	slices.SortStableFunc(entries, func(a, b goldenEntry) int {
		return cmp.Or(
			cmp.Compare(a.path, b.path),
			cmp.Compare(a.line, b.line),
			cmp.Compare(a.col, b.col),
			cmp.Compare(a.code, b.code),
		)
	})
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.text)
	}
	return b.String()
}

func goldenOf(d *Diagnostic, fs *source.FileSet, opts GoldenOpts) (goldenEntry, bool) {
	path, pos, ok := goldenPos(fs, d.Primary)
	if !ok {
		return goldenEntry{}, false
	}
	label := d.Code.ID()
	if name := d.Code.RuleName(); name != "" {
		label += " " + name
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s:%d:%d %s %s: %s\n", path, pos.Line, pos.Col, d.Severity.Label(), label, oneLine(d.Message))
	if opts.Notes {
		for _, n := range d.Notes {
			if np, npos, ok := goldenPos(fs, n.Span); ok {
				fmt.Fprintf(&b, "  note %s:%d:%d %s\n", np, npos.Line, npos.Col, oneLine(n.Msg))
			}
		}
	}
	if opts.Fixes {
		for _, fx := range d.Fixes {
			for _, e := range fx.Edits {
				if ep, epos, ok := goldenPos(fs, e.Span); ok {
					fmt.Fprintf(&b, "  fix %s:%d:%d %s\n", ep, epos.Line, epos.Col, strconv.Quote(e.NewText))
				}
			}
		}
	}
	return goldenEntry{path: path, line: pos.Line, col: pos.Col, code: d.Code, text: b.String()}, true
}

func goldenPos(fs *source.FileSet, sp source.Span) (string, source.LineCol, bool) {
	f := fs.Get(sp.File)
	if f == nil {
		return "", source.LineCol{}, false
	}
	start, _ := fs.Resolve(sp)
	path := filepath.ToSlash(f.FormatPath("relative", fs.BaseDir()))
	return strings.TrimPrefix(path, "./"), start, true
}

// oneLine folds a multi-line message; CRLF counts as one break.
func oneLine(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	return strings.TrimSpace(strings.ReplaceAll(msg, "\n", " "))
}
