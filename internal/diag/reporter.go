package diag

import "cairolint/internal/source"

// Reporter принимает ошибки лексера и парсера. Находки правил идут мимо
// него, через lint.Context.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix)
}

// SyntaxReport collects one lexer or parser error before it is emitted.
type SyntaxReport struct {
	reporter Reporter
	diag     Diagnostic
	emitted  bool
}

// ReportSyntax starts an error report. Syntax errors are always SevError
// and never carry fixes: files with them are not fixed.
func ReportSyntax(r Reporter, code Code, at source.Span, msg string) *SyntaxReport {
	return &SyntaxReport{reporter: r, diag: New(SevError, code, at, msg)}
}

// OpenedAt points a note at the delimiter an unclosed construct began with.
func (b *SyntaxReport) OpenedAt(open source.Span) *SyntaxReport {
	if b == nil {
		return nil
	}
	b.diag = b.diag.WithNote(open, "unclosed delimiter opened here")
	return b
}

// Emit forwards the report once; later calls are no-ops.
func (b *SyntaxReport) Emit() {
	if b == nil || b.emitted {
		return
	}
	if b.reporter != nil {
		d := b.diag
		b.reporter.Report(d.Code, d.Severity, d.Primary, d.Message, d.Notes, nil)
	}
	b.emitted = true
}

// BagReporter — адаптер, который пишет в *Bag.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r.Bag == nil {
		return
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Code: code, Message: msg,
		Primary: primary, Notes: notes, Fixes: fixes,
	})
}
