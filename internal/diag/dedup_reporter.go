package diag

import "cairolint/internal/source"

type offsetKey struct {
	file  source.FileID
	start uint32
}

// DedupReporter keeps only the first syntax error reported at a given
// offset. Parser recovery tends to stack several complaints on one point
// (typically EOF inside nested blocks); the first is the innermost and the
// rest add nothing. Other codes pass through untouched.
type DedupReporter struct {
	next Reporter
	seen map[offsetKey]struct{}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: make(map[offsetKey]struct{})}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r == nil || r.next == nil {
		return
	}
	if code.IsSyntax() {
		key := offsetKey{file: primary.File, start: primary.Start}
		if _, dup := r.seen[key]; dup {
			return
		}
		r.seen[key] = struct{}{}
	}
	r.next.Report(code, sev, primary, msg, notes, fixes)
}
