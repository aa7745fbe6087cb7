package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"cairolint/internal/diag"
	"cairolint/internal/source"
)

type palette struct {
	err, warn, info, note, code, gutter, caret, added, removed *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:     mk(color.FgRed, color.Bold),
		warn:    mk(color.FgYellow, color.Bold),
		info:    mk(color.FgCyan, color.Bold),
		note:    mk(color.FgBlue),
		code:    mk(color.Faint),
		gutter:  mk(color.FgBlue, color.Bold),
		caret:   mk(color.FgRed, color.Bold),
		added:   mk(color.FgGreen),
		removed: mk(color.FgRed),
	}
}

func (p palette) severity(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	}
	return p.info
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой диагностики печатает
// <path>:<line>:<col>: <SEV> <CODE>: <Message>,
// затем контекст строки с подчёркиванием ^~~~ по Span, затем Notes и Fixes.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	p := newPalette(opts.Color)
	for i, d := range diags {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, d, fs, opts, p)
	}
}

func prettyOne(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, p palette) {
	f := fs.Get(d.Primary.File)
	if f == nil {
		fmt.Fprintf(w, "%s %s: %s\n", p.severity(d.Severity).Sprint(d.Severity.String()), p.code.Sprint(d.Code.ID()), d.Message)
		return
	}
	start, end := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(f, fs, opts.PathMode), start.Line, start.Col,
		p.severity(d.Severity).Sprint(d.Severity.String()),
		p.code.Sprint(d.Code.ID()),
		truncate(d.Message, opts.Width))

	ctx := uint32(max(opts.Context, 0))
	first := start.Line - min(ctx, start.Line-1)
	last := end.Line + ctx
	width := len(strconv.FormatUint(uint64(last), 10))
	for line := first; line <= last; line++ {
		lineStart, _, ok := f.LineBounds(line)
		if !ok || (line > end.Line && lineStart >= f.Len()) {
			break
		}
		text := truncate(expandTabs(f.GetLine(line)), opts.Width)
		fmt.Fprintf(w, "%s %s\n", p.gutter.Sprintf("%*d |", width, line), text)
		if line == start.Line {
			pad, n := caret(f, d.Primary, line)
			marks := "^" + strings.Repeat("~", n-1)
			fmt.Fprintf(w, "%s %s%s\n", p.gutter.Sprintf("%*s |", width, ""), strings.Repeat(" ", pad), p.caret.Sprint(marks))
		}
	}

	if opts.ShowNotes {
		for _, note := range d.Notes {
			fmt.Fprintf(w, "  %s %s\n", p.note.Sprintf("note: %s:", location(fs, note.Span, opts.PathMode)), note.Msg)
		}
	}
	if opts.ShowFixes {
		for i, fx := range d.Fixes {
			fmt.Fprintf(w, "  %s\n", p.note.Sprintf("fix #%d: %s", i+1, fx.Title))
			for _, e := range fx.Edits {
				fmt.Fprintf(w, "    %s apply=%q\n", location(fs, e.Span, opts.PathMode), e.NewText)
			}
			if !opts.ShowPreview {
				continue
			}
			lines, err := fixPreview(fs, fx)
			if err != nil || len(lines) == 0 {
				continue
			}
			numWidth := len(strconv.Itoa(int(lines[len(lines)-1].Line)))
			fmt.Fprintln(w, "    preview:")
			for _, l := range lines {
				c := p.added
				if l.Op == "-" {
					c = p.removed
				}
				fmt.Fprintf(w, "      %s\n", c.Sprintf("%s %*d | %s", l.Op, numWidth, l.Line, l.Text))
			}
		}
	}
}

func location(fs *source.FileSet, sp source.Span, mode PathMode) string {
	f := fs.Get(sp.File)
	if f == nil {
		return "?"
	}
	start, _ := fs.Resolve(sp)
	return fmt.Sprintf("%s:%d:%d", formatPath(f, fs, mode), start.Line, start.Col)
}

// truncate режет строку по ширине экрана; 0 — без ограничения.
func truncate(s string, width uint8) string {
	if width == 0 {
		return s
	}
	return runewidth.Truncate(s, int(width), "…")
}

// Short prints one line per diagnostic: `path:line:col: severity[CODE]: message`.
func Short(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, mode PathMode) {
	for _, d := range diags {
		fmt.Fprintf(w, "%s: %s[%s]: %s\n", location(fs, d.Primary, mode), d.Severity.Label(), d.Code.ID(), d.Message)
	}
}
