package diagfmt

import (
	"errors"
	"slices"
	"strings"

	"cairolint/internal/diag"
	"cairolint/internal/source"
)

var errPreviewSpan = errors.New("fix edits span several files or overlap")

// PreviewLine is one line of a fix preview: Op is '-' for a line of the
// current text and '+' for its replacement. Line numbers refer to the
// current text for '-' and to the fixed text for '+'.
type PreviewLine struct {
	Op   string `json:"op"`
	Line uint32 `json:"line"`
	Text string `json:"text"`
}

// fixPreview applies all edits of fx to the lines they touch and returns
// the changed lines only. Unchanged lines at the edges of the block are
// dropped, so deleting a whole `use` line yields a single '-' line.
func fixPreview(fs *source.FileSet, fx diag.Fix) ([]PreviewLine, error) {
	if fs == nil || len(fx.Edits) == 0 {
		return nil, errPreviewSpan
	}
	file := fs.Get(fx.Edits[0].Span.File)
	if file == nil {
		return nil, errPreviewSpan
	}
	edits := slices.Clone(fx.Edits)
	slices.SortFunc(edits, func(a, b diag.FixEdit) int { return int(a.Span.Start) - int(b.Span.Start) })
	for i, e := range edits {
		if e.Span.File != file.ID || e.Span.End > file.Len() || e.Span.Start > e.Span.End {
			return nil, errPreviewSpan
		}
		if i > 0 && edits[i-1].Span.End > e.Span.Start {
			return nil, errPreviewSpan
		}
	}

	first, _ := fs.Resolve(edits[0].Span)
	_, last := fs.Resolve(edits[len(edits)-1].Span)
	blockStart := lineStart(file, first.Line)
	blockEnd := max(lineEnd(file, last.Line), blockStart)

	var after strings.Builder
	at := blockStart
	for _, e := range edits {
		after.Write(file.Content[at:e.Span.Start])
		after.WriteString(e.NewText)
		at = e.Span.End
	}
	after.Write(file.Content[at:blockEnd])

	before := previewLines(string(file.Content[blockStart:blockEnd]))
	fixed := previewLines(after.String())

	// общие строки по краям не показываем
	head := 0
	for head < len(before) && head < len(fixed) && before[head] == fixed[head] {
		head++
	}
	tail := 0
	for tail < len(before)-head && tail < len(fixed)-head && before[len(before)-1-tail] == fixed[len(fixed)-1-tail] {
		tail++
	}

	out := make([]PreviewLine, 0, len(before)+len(fixed)-2*(head+tail))
	for i, l := range before[head : len(before)-tail] {
		out = append(out, PreviewLine{Op: "-", Line: first.Line + uint32(head+i), Text: l})
	}
	for i, l := range fixed[head : len(fixed)-tail] {
		out = append(out, PreviewLine{Op: "+", Line: first.Line + uint32(head+i), Text: l})
	}
	return out, nil
}

func previewLines(s string) []string {
	if s == "" {
		return nil
	}
	// завершающий \n не даёт лишней пустой строки
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// lineStart returns the offset of 1-based line.
func lineStart(f *source.File, line uint32) uint32 {
	if line <= 1 {
		return 0
	}
	if idx := int(line - 2); idx < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return f.Len()
}

// lineEnd returns the offset just past the newline ending 1-based line.
func lineEnd(f *source.File, line uint32) uint32 {
	if line == 0 {
		return 0
	}
	if idx := int(line - 1); idx < len(f.LineIdx) {
		return f.LineIdx[idx] + 1
	}
	return f.Len()
}
