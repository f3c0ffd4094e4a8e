package diag

import (
	"vesszo/internal/source"
)

// Mistake is the explanation of one finding.
type Mistake struct {
	Message    string
	Confidence float64 // [0,1]
}

type Diagnostic struct {
	Severity Severity
	Code     Code
	Row      int // 1-based, 0 when the finding has no position
	Col      int // 1-based code point column
	Primary  source.Span
	Mistake
	Detector string // table kind that produced it, "" for IO and config
	Path     string // document path for errors raised before the document reached a FileSet
}

// New builds a detector finding at row/col.
func New(code Code, row, col int, primary source.Span, m Mistake, detector string) Diagnostic {
	return Diagnostic{
		Severity: SeverityFor(m.Confidence),
		Code:     code,
		Row:      row,
		Col:      col,
		Primary:  primary,
		Mistake:  m,
		Detector: detector,
	}
}

// NewError builds a positionless error such as a failed document load.
func NewError(code Code, path, msg string) Diagnostic {
	return Diagnostic{
		Severity: SevError,
		Code:     code,
		Mistake:  Mistake{Message: msg, Confidence: 1},
		Path:     path,
	}
}

// PathIn returns the document path of d, looking it up in fs when needed.
func (d Diagnostic) PathIn(fs *source.FileSet) string {
	if d.Path != "" {
		return d.Path
	}
	if fs == nil || int(d.Primary.File) >= fs.Len() {
		return "?"
	}
	return fs.Get(d.Primary.File).Path
}
