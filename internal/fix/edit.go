package fix

import (
	"slices"
	"strings"

	"cairolint/internal/source"
)

// Edit replaces the half-open byte range [Start, End) with Replacement.
type Edit struct {
	Start       uint32
	End         uint32
	Replacement string
}

func spanEdit(sp source.Span, replacement string) Edit {
	return Edit{Start: sp.Start, End: sp.End, Replacement: replacement}
}

// Resolve orders edits back to front and checks that neighbours do not
// overlap or nest. Any conflict rejects the whole set: the result is nil
// and false. Zero or one edit is always safe.
func Resolve(edits []Edit) ([]Edit, bool) {
	out := slices.Clone(edits)
	slices.SortStableFunc(out, func(a, b Edit) int {
		switch {
		case a.Start > b.Start:
			return -1
		case a.Start < b.Start:
			return 1
		}
		return 0
	})
	for i := 0; i+1 < len(out); i++ {
		first, second := out[i], out[i+1]
		if first.Start < second.End {
			return nil, false
		}
		// две вставки в одну точку: порядок не определён
		if first.Start == second.Start {
			return nil, false
		}
	}
	return out, true
}

// ApplyEdits applies edits sorted by Resolve to text. Edits are applied back
// to front so pending offsets never shift.
func ApplyEdits(text string, edits []Edit) string {
	var b strings.Builder
	b.Grow(len(text))
	// edits идут по убыванию Start, собираем результат с конца
	parts := make([]string, 0, 2*len(edits)+1)
	end := len(text)
	for _, e := range edits {
		parts = append(parts, text[e.End:end], e.Replacement)
		end = int(e.Start)
	}
	parts = append(parts, text[:end])
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteString(parts[i])
	}
	return b.String()
}
