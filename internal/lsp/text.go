package lsp

import (
	"strings"
	"unicode/utf8"
)

// applyChanges replays didChange events over a buffer. A change without a
// range replaces the whole text; ranges past the end are clamped.
func applyChanges(text string, changes []textDocumentContentChangeEvent) string {
	for _, ch := range changes {
		if ch.Range == nil {
			text = ch.Text
			continue
		}
		start := offsetForPosition(text, ch.Range.Start)
		end := max(offsetForPosition(text, ch.Range.End), start)
		text = text[:start] + ch.Text + text[end:]
	}
	return text
}

// offsetForPosition maps an LSP position to a byte offset in text. A line
// past the end maps to len(text), a character past the line end stops at
// the newline.
func offsetForPosition(text string, pos position) int {
	if pos.Line < 0 || pos.Character < 0 {
		return 0
	}
	start := 0
	for range pos.Line {
		nl := strings.IndexByte(text[start:], '\n')
		if nl < 0 {
			return len(text)
		}
		start += nl + 1
	}
	line := text[start:]
	if nl := strings.IndexByte(line, '\n'); nl >= 0 {
		line = line[:nl]
	}
	return start + utf16Prefix(line, pos.Character)
}

// utf16Prefix returns the byte length of the longest prefix of line that
// fits into units UTF-16 code units. A position inside a surrogate pair
// snaps back to the rune start.
func utf16Prefix(line string, units int) int {
	off := 0
	for off < len(line) && units > 0 {
		r, size := utf8.DecodeRuneInString(line[off:])
		n := utf16Len(r)
		if n > units {
			break
		}
		units -= n
		off += size
	}
	return off
}
