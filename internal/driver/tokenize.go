package driver

import (
	"vesszo/internal/ingest"
	"vesszo/internal/lexer"
	"vesszo/internal/source"
	"vesszo/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
}

// Tokenize loads path (text, markdown, docx or pdf) and returns its tokens without EOF.
func Tokenize(path string, opts lexer.Options) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	fileID, err := loadDocument(fs, path, false)
	if err != nil {
		return nil, err
	}
	return tokenizeFile(fs, fileID, opts), nil
}

// TokenizeBytes tokenizes in-memory text registered under name.
func TokenizeBytes(name string, data []byte, opts lexer.Options) *TokenizeResult {
	fs := source.NewFileSet()
	return tokenizeFile(fs, fs.AddVirtual(name, data), opts)
}

func tokenizeFile(fs *source.FileSet, id source.FileID, opts lexer.Options) *TokenizeResult {
	file := fs.Get(id)
	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  lexer.All(file, opts),
	}
}

// loadDocument reads path through ingest and registers the text.
// Extracted documents are marked virtual: their bytes are not the file on disk.
func loadDocument(fs *source.FileSet, path string, strict bool) (source.FileID, error) {
	doc, err := ingest.Read(path, strict)
	if err != nil {
		return 0, err
	}
	var flags source.FileFlags
	if doc.Format.Extracted() {
		flags |= source.FileVirtual
	}
	return fs.AddText(path, doc.Text, flags), nil
}
