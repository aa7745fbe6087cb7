package diag

import (
	"testing"

	"cairolint/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	for i := range 3 {
		ok := b.Add(New(SevWarning, LintPanic, source.Span{Start: uint32(i)}, "x"))
		if want := i < 2; ok != want {
			t.Fatalf("Add #%d = %v, want %v", i, ok, want)
		}
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}

	unbounded := NewBag(0)
	for range 100 {
		unbounded.Add(Diagnostic{})
	}
	if unbounded.Len() != 100 {
		t.Fatalf("unbounded bag dropped items: %d", unbounded.Len())
	}
}

func TestBagSortAndDedup(t *testing.T) {
	b := NewBag(0)
	b.Add(New(SevWarning, LintRedundantOp, source.Span{File: 1, Start: 10, End: 12}, "b"))
	b.Add(New(SevWarning, LintDoubleParens, source.Span{File: 1, Start: 2, End: 4}, "a"))
	b.Add(New(SevError, LintImpossibleComparison, source.Span{File: 1, Start: 2, End: 4}, "c"))
	b.Add(New(SevWarning, LintDoubleParens, source.Span{File: 1, Start: 2, End: 4}, "a"))

	b.Dedup()
	if b.Len() != 3 {
		t.Fatalf("Dedup left %d items, want 3", b.Len())
	}
	b.Sort()

	got := []Code{b.Items()[0].Code, b.Items()[1].Code, b.Items()[2].Code}
	want := []Code{LintImpossibleComparison, LintDoubleParens, LintRedundantOp}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted codes = %v, want %v", got, want)
		}
	}
	if !b.HasErrors() || !b.HasWarnings() {
		t.Fatal("expected both errors and warnings")
	}
}

func TestBagFilter(t *testing.T) {
	b := NewBag(0)
	b.Add(New(SevWarning, LintPanic, source.Span{}, "p"))
	b.Add(New(SevError, SynUnexpectedToken, source.Span{}, "s"))
	b.Filter(func(d Diagnostic) bool { return !d.Code.IsLint() })
	if b.Len() != 1 || b.Items()[0].Code != SynUnexpectedToken {
		t.Fatalf("Filter kept %+v", b.Items())
	}
}

func TestCodeIDRanges(t *testing.T) {
	tests := map[Code]string{
		LexUnknownChar:     "LEX1001",
		SynExpectSemicolon: "SYN2003",
		SemaUnusedImport:   "SEM3001",
		LintDivEqOp:        "LNT4001",
		IOWriteFailed:      "IO5002",
		UnknownCode:        "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
	if LintDivEqOp.Title() != "div_eq_op" {
		t.Fatalf("lint title must be the allowed name, got %q", LintDivEqOp.Title())
	}
	if Code(4999).Title() != UnknownCode.Title() {
		t.Fatal("unknown codes fall back to the generic title")
	}
}

func TestDedupReporter(t *testing.T) {
	bag := NewBag(0)
	r := NewDedupReporter(BagReporter{Bag: bag})
	eof := source.Span{File: 1, Start: 10, End: 10}
	// вложенные блоки у EOF: остаётся только первая (самая внутренняя) ошибка
	ReportSyntax(r, SynUnclosedDelimiter, eof, "expected '}' to close block").OpenedAt(source.Span{File: 1, Start: 5, End: 6}).Emit()
	ReportSyntax(r, SynUnclosedDelimiter, eof, "expected '}' to close block").Emit()
	ReportSyntax(r, SynExpectSemicolon, eof, "expected ';'").Emit()
	// другой файл с тем же смещением
	ReportSyntax(r, SynExpectSemicolon, source.Span{File: 2, Start: 10, End: 10}, "expected ';'").Emit()
	// не синтаксические коды не схлопываются
	r.Report(IOLoadFailed, SevError, eof, "a", nil, nil)
	r.Report(IOLoadFailed, SevError, eof, "a", nil, nil)

	if bag.Len() != 4 {
		t.Fatalf("bag has %d items, want 4", bag.Len())
	}
	first := bag.Items()[0]
	if first.Code != SynUnclosedDelimiter || len(first.Notes) != 1 || first.Notes[0].Msg != "unclosed delimiter opened here" {
		t.Fatalf("first report = %+v", first)
	}
}

func TestSyntaxReportEmitsOnce(t *testing.T) {
	bag := NewBag(0)
	rep := ReportSyntax(BagReporter{Bag: bag}, LexUnknownChar, source.Span{File: 1, Start: 0, End: 1}, "unknown character $")
	rep.Emit()
	rep.Emit()
	if bag.Len() != 1 || bag.Items()[0].Severity != SevError {
		t.Fatalf("bag = %+v", bag.Items())
	}
	// без репортера Emit ничего не делает
	ReportSyntax(nil, LexUnknownChar, source.Span{}, "x").Emit()
}
