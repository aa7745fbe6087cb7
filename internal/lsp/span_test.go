package lsp

import (
	"testing"

	"cairolint/internal/source"
)

func TestPositionRoundTrip(t *testing.T) {
	fs := source.NewFileSet()
	// é — 2 байта/1 UTF-16, 𝄞 — 4 байта/2 UTF-16
	content := "ab\nxé𝄞y\n"
	file := fs.Get(fs.Add("t.cairo", []byte(content), 0))

	cases := []struct {
		offset uint32
		want   position
	}{
		{0, position{0, 0}},
		{2, position{0, 2}},
		{3, position{1, 0}},
		{4, position{1, 1}},
		{6, position{1, 2}},
		{10, position{1, 4}},
		{11, position{1, 5}},
		{100, position{2, 0}},
	}
	for _, tc := range cases {
		got := positionOf(file, tc.offset)
		if got != tc.want {
			t.Fatalf("positionOf(%d) = %+v, want %+v", tc.offset, got, tc.want)
		}
		if tc.offset <= file.Len() {
			if back := offsetOf(file, got); back != tc.offset {
				t.Fatalf("offsetOf(%+v) = %d, want %d", got, back, tc.offset)
			}
		}
	}
}

func TestRangesOverlap(t *testing.T) {
	r := func(l1, c1, l2, c2 int) lspRange {
		return lspRange{Start: position{l1, c1}, End: position{l2, c2}}
	}
	cases := []struct {
		a, b lspRange
		want bool
	}{
		{r(1, 0, 1, 5), r(1, 3, 1, 3), true},
		{r(1, 0, 1, 5), r(1, 5, 1, 6), true},
		{r(1, 0, 1, 5), r(1, 6, 1, 7), false},
		{r(1, 0, 3, 0), r(2, 0, 2, 1), true},
		{r(2, 0, 2, 1), r(0, 0, 1, 9), false},
	}
	for _, tc := range cases {
		if got := rangesOverlap(tc.a, tc.b); got != tc.want {
			t.Fatalf("rangesOverlap(%+v, %+v) = %v", tc.a, tc.b, got)
		}
	}
}
