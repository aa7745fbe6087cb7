package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"cairolint/internal/ast"
	"cairolint/internal/diag"
	"cairolint/internal/lexer"
	"cairolint/internal/lint"
	"cairolint/internal/parser"
	"cairolint/internal/rules"
	"cairolint/internal/sema"
	"cairolint/internal/source"
)

const redundantSrc = "fn main() {\n    let x = 1;\n    let _y = x + 0;\n}\n"

// analyze разбирает src как test.cairo и возвращает диагностики линтера.
func analyze(t *testing.T, src string) (*source.FileSet, *ast.Tree, []diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.Add("test.cairo", []byte(src), 0))
	bag := diag.NewBag(100)
	res := parser.Parse(file, diag.BagReporter{Bag: bag})
	if bag.HasErrors() {
		t.Fatalf("parse errors: %v", bag.Items())
	}
	facts := sema.Check(res.Tree, sema.Options{})
	return fs, res.Tree, lint.Run(res.Tree, &facts, rules.Registry(), nil)
}

func only(t *testing.T, diags []diag.Diagnostic, code diag.Code) diag.Diagnostic {
	t.Helper()
	for _, d := range diags {
		if d.Code == code {
			return d
		}
	}
	t.Fatalf("no %s among %d diagnostics", code.ID(), len(diags))
	return diag.Diagnostic{}
}

func TestFormat(t *testing.T) {
	fs, _, diags := analyze(t, redundantSrc)
	d := only(t, diags, diag.LintRedundantOp)

	want := "warning: This operation doesn't change the value and can be simplified.\n" +
		" --> test.cairo:3:14\n" +
		"  |\n" +
		"3 |     let _y = x + 0;\n" +
		"  |              ^^^^^\n" +
		"  |\n"
	got := Format(fs, d)
	if got != want {
		t.Fatalf("Format mismatch:\n got:\n%s\nwant:\n%s", got, want)
	}
	if again := Format(fs, d); again != got {
		t.Fatalf("Format is not stable between calls")
	}
}

func TestFormatTrailingComment(t *testing.T) {
	// хвостовой комментарий с кириллицей не влияет на каретку
	src := "fn main() {\n    let x = 1;\n    let _y = x + 0; // ок\n}\n"
	fs, _, diags := analyze(t, src)
	got := Format(fs, only(t, diags, diag.LintRedundantOp))
	if !strings.Contains(got, "  |              ^^^^^\n") {
		t.Fatalf("caret misplaced:\n%s", got)
	}
}

func TestFormatUnknownFile(t *testing.T) {
	d := diag.New(diag.SevError, diag.LintPanic, source.Span{File: 42}, "boom")
	if got := Format(source.NewFileSet(), d); got != "error: boom\n" {
		t.Fatalf("got %q", got)
	}
}

func TestPretty(t *testing.T) {
	fs, _, diags := analyze(t, redundantSrc)
	d := only(t, diags, diag.LintRedundantOp)

	var buf bytes.Buffer
	Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{})
	want := "test.cairo:3:14: WARNING LNT4035: This operation doesn't change the value and can be simplified.\n" +
		"3 |     let _y = x + 0;\n" +
		"  |              ^~~~~\n"
	if buf.String() != want {
		t.Fatalf("unexpected pretty output:\n%s", buf.String())
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs, _, diags := analyze(t, redundantSrc)
	d := only(t, diags, diag.LintRedundantOp)
	d = d.WithNote(d.Primary, "drop the zero").
		WithFix("simplify", diag.FixEdit{Span: d.Primary, NewText: "x"})

	var buf bytes.Buffer
	Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{
		Context:     1,
		ShowNotes:   true,
		ShowFixes:   true,
		ShowPreview: true,
	})
	out := buf.String()
	for _, want := range []string{
		"2 |     let x = 1;\n",
		"4 | }\n",
		"note: test.cairo:3:14: drop the zero",
		"fix #1: simplify",
		`test.cairo:3:14 apply="x"`,
		"preview:",
		"- 3 |     let _y = x + 0;",
		"+ 3 |     let _y = x;",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestShort(t *testing.T) {
	fs, _, diags := analyze(t, redundantSrc)
	var buf bytes.Buffer
	Short(&buf, []diag.Diagnostic{only(t, diags, diag.LintRedundantOp)}, fs, PathModeAuto)
	want := "test.cairo:3:14: warning[LNT4035]: This operation doesn't change the value and can be simplified.\n"
	if buf.String() != want {
		t.Fatalf("got %q", buf.String())
	}
}

func TestJSON(t *testing.T) {
	fs, _, diags := analyze(t, redundantSrc)
	d := only(t, diags, diag.LintRedundantOp).
		WithFix("simplify", diag.FixEdit{Span: only(t, diags, diag.LintRedundantOp).Primary, NewText: "x"})

	var buf bytes.Buffer
	if err := JSON(&buf, []diag.Diagnostic{d}, fs, JSONOpts{IncludePositions: true, IncludeFixes: true}); err != nil {
		t.Fatalf("JSON: %v", err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, buf.String())
	}
	if out.Count != 1 || len(out.Diagnostics) != 1 {
		t.Fatalf("count = %d, want 1", out.Count)
	}
	got := out.Diagnostics[0]
	if got.Code != "LNT4035" || got.Rule != "redundant_op" || got.Severity != "warning" {
		t.Fatalf("unexpected header: %+v", got)
	}
	if got.Location.StartLine != 3 || got.Location.StartCol != 14 {
		t.Fatalf("location = %d:%d, want 3:14", got.Location.StartLine, got.Location.StartCol)
	}
	if len(got.Fixes) != 1 || got.Fixes[0].Edits[0].OldText != "x + 0" {
		t.Fatalf("unexpected fixes: %+v", got.Fixes)
	}
}

func TestJSONMax(t *testing.T) {
	fs, _, diags := analyze(t, redundantSrc)
	d := only(t, diags, diag.LintRedundantOp)
	out := BuildDiagnosticsOutput([]diag.Diagnostic{d, d, d}, fs, JSONOpts{Max: 2})
	if out.Count != 2 {
		t.Fatalf("count = %d, want 2", out.Count)
	}
}

func TestSarif(t *testing.T) {
	fs, _, diags := analyze(t, redundantSrc)
	d := only(t, diags, diag.LintRedundantOp).
		WithFix("simplify", diag.FixEdit{Span: only(t, diags, diag.LintRedundantOp).Primary, NewText: "x"})

	var buf bytes.Buffer
	meta := SarifRunMeta{
		ToolName:    "cairolint",
		ToolVersion: "test",
		Rules:       []SarifRule{{ID: "LNT4035", Name: "redundant_op", Level: "warning", IsEnabled: true}},
	}
	if err := Sarif(&buf, []diag.Diagnostic{d}, fs, meta); err != nil {
		t.Fatalf("Sarif: %v", err)
	}
	var log sarifLog
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid sarif: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 {
		t.Fatalf("unexpected log header: %+v", log)
	}
	run := log.Runs[0]
	if run.Tool.Driver.Name != "cairolint" || len(run.Tool.Driver.Rules) != 1 {
		t.Fatalf("unexpected driver: %+v", run.Tool.Driver)
	}
	if len(run.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(run.Results))
	}
	res := run.Results[0]
	if res.RuleID != "LNT4035" || res.Level != "warning" {
		t.Fatalf("unexpected result: %+v", res)
	}
	region := res.Locations[0].PhysicalLocation.Region
	if region.StartLine != 3 || region.StartColumn != 14 || region.ByteLength != 5 {
		t.Fatalf("unexpected region: %+v", region)
	}
	if !strings.HasSuffix(res.Locations[0].PhysicalLocation.ArtifactLocation.URI, "test.cairo") {
		t.Fatalf("unexpected uri %q", res.Locations[0].PhysicalLocation.ArtifactLocation.URI)
	}
	if len(res.Fixes) != 1 || res.Fixes[0].ArtifactChanges[0].Replacements[0].InsertedContent.Text != "x" {
		t.Fatalf("unexpected fixes: %+v", res.Fixes)
	}
}

func TestSarifLevel(t *testing.T) {
	cases := map[diag.Severity]string{
		diag.SevError:   "error",
		diag.SevWarning: "warning",
		diag.SevInfo:    "note",
	}
	for sev, want := range cases {
		if got := SarifLevel(sev); got != want {
			t.Errorf("SarifLevel(%v) = %q, want %q", sev, got, want)
		}
	}
}

func TestFormatTree(t *testing.T) {
	fs, tree, _ := analyze(t, "use a::b;\nfn main() {}\n")

	var buf bytes.Buffer
	if err := FormatTreePretty(&buf, tree, fs); err != nil {
		t.Fatalf("FormatTreePretty: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"├─ ItemUse", "└─ ItemFn \"main\"", "UsePathLeaf \"b\""} {
		if !strings.Contains(out, want) {
			t.Fatalf("tree lacks %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := FormatTreeJSON(&buf, tree); err != nil {
		t.Fatalf("FormatTreeJSON: %v", err)
	}
	var root ASTNodeOutput
	if err := json.Unmarshal(buf.Bytes(), &root); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(root.Children) != 2 || root.Children[1].Name != "main" {
		t.Fatalf("unexpected root: %+v", root)
	}
}

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.Add("test.cairo", []byte("use a; // keep\n\n// doc for fn\nfn f() { true }\n"), 0))
	tokens := lexer.New(file, lexer.Options{}).All()

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, tokens, fs); err != nil {
		t.Fatalf("FormatTokensPretty: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"trailing[Space, // keep, Newline]",
		"leading[Newline, // doc for fn, Newline]",
		"keyword  fn",
		"literal  true",
		"ident",
		"eof",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("token dump lacks %q:\n%s", want, out)
		}
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, tokens, fs); err != nil {
		t.Fatalf("FormatTokensJSON: %v", err)
	}
	var got []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	fn := got[3]
	if fn.Class != ClassKeyword || fn.Start != (source.LineCol{Line: 4, Col: 1}) {
		t.Fatalf("fn token = %+v", fn)
	}
	if len(fn.Leading) != 3 || fn.Leading[1].Text != "// doc for fn" || fn.Leading[0].Text != "" {
		t.Fatalf("fn leading = %+v", fn.Leading)
	}
	if last := got[len(got)-1]; last.Class != ClassEOF {
		t.Fatalf("stream must end with EOF, got %+v", last)
	}
}

func TestFixPreview(t *testing.T) {
	src := "use a::b;\nuse c::d;\nfn main() {\n    let _y = ((1));\n}\n"
	fs := source.NewFileSet()
	id := fs.Add("test.cairo", []byte(src), 0)
	span := func(start, end uint32) source.Span { return source.Span{File: id, Start: start, End: end} }

	tests := []struct {
		name string
		fix  diag.Fix
		want []PreviewLine
	}{
		{
			name: "whole line removed",
			fix:  diag.Fix{Edits: []diag.FixEdit{{Span: span(0, 10)}}},
			want: []PreviewLine{{Op: "-", Line: 1, Text: "use a::b;"}},
		},
		{
			name: "two edits on separate lines",
			fix: diag.Fix{Edits: []diag.FixEdit{
				{Span: span(45, 50), NewText: "1"},
				{Span: span(17, 18), NewText: "e"},
			}},
			want: []PreviewLine{
				{Op: "-", Line: 2, Text: "use c::d;"},
				{Op: "-", Line: 3, Text: "fn main() {"},
				{Op: "-", Line: 4, Text: "    let _y = ((1));"},
				{Op: "+", Line: 2, Text: "use c::e;"},
				{Op: "+", Line: 3, Text: "fn main() {"},
				{Op: "+", Line: 4, Text: "    let _y = 1;"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fixPreview(fs, tt.fix)
			if err != nil {
				t.Fatalf("fixPreview: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("line %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}

	overlap := diag.Fix{Edits: []diag.FixEdit{{Span: span(0, 5)}, {Span: span(3, 8)}}}
	if _, err := fixPreview(fs, overlap); err == nil {
		t.Fatal("overlapping edits must not be previewed")
	}
}
