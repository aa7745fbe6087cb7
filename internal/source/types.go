package source

type (
	// FileID uniquely identifies a source file within a FileSet.
	FileID uint32 // просто ID источника
	// FileFlags encodes metadata about a source file.
	FileFlags uint8 // метаданные
)

const (
	// FileVirtual indicates the file was added from memory (test, stdin, etc.).
	FileVirtual FileFlags = 1 << iota // добавлен не с диска (тест, stdin)
	FileHadBOM
	FileNormalizedCRLF
)

// Ext is the extension of lintable source files.
const Ext = ".cairo"

// File captures metadata and content for a single source file.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32
	Hash    [32]byte
	Flags   FileFlags
}

// Len returns the content length as a source offset.
func (f *File) Len() uint32 {
	return mustU32(len(f.Content))
}

// Slice returns the text covered by [start, end), clamped to the content.
func (f *File) Slice(start, end uint32) string {
	n := f.Len()
	if end > n {
		end = n
	}
	if start > end {
		return ""
	}
	return string(f.Content[start:end])
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
