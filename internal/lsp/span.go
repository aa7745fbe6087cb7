package lsp

import (
	"sort"
	"unicode/utf16"
	"unicode/utf8"

	"cairolint/internal/source"
)

// positionOf converts a byte offset into an LSP position: zero-based line,
// character counted in UTF-16 units.
func positionOf(file *source.File, offset uint32) position {
	if file == nil {
		return position{}
	}
	offset = min(offset, file.Len())
	// LineIdx хранит смещения '\n'
	line := sort.Search(len(file.LineIdx), func(i int) bool { return file.LineIdx[i] >= offset })
	var lineStart uint32
	if line > 0 {
		lineStart = file.LineIdx[line-1] + 1
	}
	units := 0
	for rest := file.Content[lineStart:offset]; len(rest) > 0; {
		r, size := utf8.DecodeRune(rest)
		units += utf16Len(r)
		rest = rest[size:]
	}
	return position{Line: line, Character: units}
}

func utf16Len(r rune) int {
	if r == utf8.RuneError {
		return 1
	}
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}

func rangeOf(file *source.File, span source.Span) lspRange {
	return lspRange{Start: positionOf(file, span.Start), End: positionOf(file, span.End)}
}

// offsetOf is the inverse of positionOf, clamped to the file.
func offsetOf(file *source.File, pos position) uint32 {
	if file == nil {
		return 0
	}
	return clampOffset(offsetForPosition(string(file.Content), pos), file.Len())
}

func clampOffset(off int, limit uint32) uint32 {
	if off <= 0 {
		return 0
	}
	if uint64(off) > uint64(limit) {
		return limit
	}
	return uint32(off)
}

func rangesOverlap(a, b lspRange) bool {
	return !before(a.End, b.Start) && !before(b.End, a.Start)
}

func before(a, b position) bool {
	return a.Line < b.Line || (a.Line == b.Line && a.Character < b.Character)
}
