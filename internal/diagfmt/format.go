package diagfmt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"cairolint/internal/diag"
	"cairolint/internal/source"
)

// Format renders d the way a compiler does:
//
//	warning: <message>
//	 --> <path>:<line>:<col>
//	  |
//	3 |     let _y = x + 0;
//	  |              ^^^^^
//	  |
//
// The result depends only on d and the file contents.
func Format(fs *source.FileSet, d diag.Diagnostic) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", d.Severity.Label(), d.Message)
	f := fs.Get(d.Primary.File)
	if f == nil {
		return b.String()
	}
	start, _ := fs.Resolve(d.Primary)
	lineNo := strconv.FormatUint(uint64(start.Line), 10)
	gutter := strings.Repeat(" ", len(lineNo))

	fmt.Fprintf(&b, "%s--> %s:%d:%d\n", gutter, f.Path, start.Line, start.Col)
	fmt.Fprintf(&b, "%s |\n", gutter)
	line := expandTabs(f.GetLine(start.Line))
	fmt.Fprintf(&b, "%s | %s\n", lineNo, line)
	pad, width := caret(f, d.Primary, start.Line)
	fmt.Fprintf(&b, "%s | %s%s\n", gutter, strings.Repeat(" ", pad), strings.Repeat("^", width))
	fmt.Fprintf(&b, "%s |\n", gutter)
	return b.String()
}

// caret returns the display column and width of the underline for span on
// line. A span running past the line is cut at its end; an empty span gets
// a single caret.
func caret(f *source.File, span source.Span, line uint32) (pad, width int) {
	lineStart, lineEnd, ok := f.LineBounds(line)
	if !ok {
		return 0, 1
	}
	start := min(max(span.Start, lineStart), lineEnd)
	end := min(max(span.End, start), lineEnd)
	pad = runewidth.StringWidth(expandTabs(string(f.Content[lineStart:start])))
	width = runewidth.StringWidth(expandTabs(string(f.Content[start:end])))
	return pad, max(width, 1)
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}
