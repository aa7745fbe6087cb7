package source

import (
	"testing"

	"github.com/spf13/afero"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("lib.cairo", []byte("fn a() {}"), 0)
	id2 := fs.Add("lib.cairo", []byte("fn b() {}"), 0)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %d twice", id1)
	}

	latest, ok := fs.GetLatest("lib.cairo")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	// старая версия остаётся доступной
	if got := string(fs.Get(id1).Content); got != "fn a() {}" {
		t.Fatalf("first version content = %q", got)
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.cairo", []byte("a\nb\n"))
	file := fs.Get(id)

	want := []uint32{1, 3}
	if len(file.LineIdx) != len(want) {
		t.Fatalf("LineIdx = %v, want %v", file.LineIdx, want)
	}
	for i := range want {
		if file.LineIdx[i] != want[i] {
			t.Fatalf("LineIdx = %v, want %v", file.LineIdx, want)
		}
	}
	if file.Flags&FileVirtual == 0 {
		t.Fatal("expected FileVirtual flag")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.cairo", []byte("use a;\nfn main() {\n    x\n}\n"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{6, LineCol{1, 7}}, // сам '\n' принадлежит первой строке
		{7, LineCol{2, 1}},
		{23, LineCol{3, 5}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestResolveUTF8(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.cairo", []byte("α\n"))

	start, end := fs.Resolve(Span{File: id, Start: 0, End: 1})
	if start != (LineCol{Line: 1, Col: 1}) || end != (LineCol{Line: 1, Col: 2}) {
		t.Fatalf("unexpected positions %+v %+v", start, end)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	file := fs.Get(fs.AddVirtual("a.cairo", []byte("first\nsecond\nthird")))

	cases := map[uint32]string{0: "", 1: "first", 2: "second", 3: "third", 4: ""}
	for line, want := range cases {
		if got := file.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestLoadFromNormalizesBOMAndCRLF(t *testing.T) {
	mem := afero.NewMemMapFs()
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("use a;\r\nfn f() {}\r\n")...)
	if err := afero.WriteFile(mem, "/src/lib.cairo", raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	fs := NewFileSet()
	id, err := fs.LoadFrom(mem, "/src/lib.cairo")
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	file := fs.Get(id)
	if got := string(file.Content); got != "use a;\nfn f() {}\n" {
		t.Fatalf("content = %q", got)
	}
	if file.Flags&FileHadBOM == 0 || file.Flags&FileNormalizedCRLF == 0 {
		t.Fatalf("flags = %b, want BOM and CRLF", file.Flags)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.LoadFrom(afero.NewMemMapFs(), "/nope.cairo"); err == nil {
		t.Fatal("expected error for missing file")
	}
	if fs.Len() != 0 {
		t.Fatalf("missing file must not be added, Len = %d", fs.Len())
	}
}

func TestGetUnknownID(t *testing.T) {
	fs := NewFileSet()
	if fs.Get(42) != nil {
		t.Fatal("expected nil for unknown id")
	}
}
