package diag

import (
	"testing"

	"cairolint/internal/source"
)

func TestFormatGolden(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")
	file := fs.Add("/workspace/src/lib.cairo", []byte("a\nb\n"), 0)
	at := func(start, end uint32) source.Span { return source.Span{File: file, Start: start, End: end} }

	diags := []Diagnostic{
		New(SevWarning, LintDoubleParens, at(2, 3), "unnecessary double parentheses").
			WithFix("remove", FixEdit{Span: at(2, 3), NewText: "b"}),
		New(SevError, SynUnexpectedToken, at(0, 1), "first line\r\nsecond").
			WithNote(at(2, 3), "note line"),
		New(SevWarning, SemaUnusedImport, at(0, 1), "unused import"),
	}

	want := "src/lib.cairo:1:1 error SYN2001: first line second\n" +
		"  note src/lib.cairo:2:1 note line\n" +
		"src/lib.cairo:1:1 warning SEM3001 unused_imports: unused import\n" +
		"src/lib.cairo:2:1 warning LNT4030 double_parens: unnecessary double parentheses\n" +
		"  fix src/lib.cairo:2:1 \"b\"\n"
	if got := FormatGolden(diags, fs, GoldenOpts{Notes: true, Fixes: true}); got != want {
		t.Fatalf("golden output:\n%s\nwant:\n%s", got, want)
	}

	bare := "src/lib.cairo:1:1 error SYN2001: first line second\n"
	if got := FormatGolden(diags[1:2], fs, GoldenOpts{}); got != bare {
		t.Fatalf("without notes: %q", got)
	}
}

func TestFormatGoldenSkipsUnknownFiles(t *testing.T) {
	fs := source.NewFileSet()
	diags := []Diagnostic{{Severity: SevWarning, Code: LintPanic, Primary: source.Span{File: 9}}}
	if got := FormatGolden(diags, fs, GoldenOpts{}); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
