package source

type (
	// FileID uniquely identifies a document within a FileSet.
	FileID uint32
	// FileFlags records how the document bytes were normalised on load.
	FileFlags uint8
)

const (
	// FileVirtual marks text that did not come from disk (stdin, LSP buffer, extracted docx/pdf).
	FileVirtual FileFlags = 1 << iota
	FileHadBOM
	FileNormalizedCRLF
	FileNormalizedNFC
)

// File is one normalised document.
type File struct {
	ID      FileID
	Path    string
	Content []byte
	LineIdx []uint32 // offsets of '\n'
	Hash    [32]byte
	Flags   FileFlags
	Origin  *OffsetMap // nil when Content equals the raw input
}

// LineCol is a 1-based line and byte column.
type LineCol struct {
	Line uint32
	Col  uint32
}
