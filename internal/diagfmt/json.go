package diagfmt

import (
	"encoding/json"
	"io"

	"vesszo/internal/diag"
	"vesszo/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате.
// Row/Col это позиция детектора (кодовые точки), Location - байтовый span.
type DiagnosticJSON struct {
	Severity   string       `json:"severity"`
	Code       string       `json:"code"`
	Title      string       `json:"title"`
	Message    string       `json:"message"`
	Confidence float64      `json:"confidence"`
	Detector   string       `json:"detector,omitempty"`
	Row        int          `json:"row,omitempty"`
	Col        int          `json:"col,omitempty"`
	Location   LocationJSON `json:"location"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
}

func makeLocation(d diag.Diagnostic, fs *source.FileSet, opts JSONOpts) LocationJSON {
	loc := LocationJSON{
		File: formatPath(d.PathIn(fs), opts.PathMode, opts.BaseDir),
	}
	if d.Row == 0 || fs == nil || int(d.Primary.File) >= fs.Len() {
		return loc
	}
	loc.StartByte = d.Primary.Start
	loc.EndByte = d.Primary.End
	if opts.IncludePositions {
		startPos, endPos := fs.Resolve(d.Primary)
		loc.StartLine = startPos.Line
		loc.StartCol = startPos.Col
		loc.EndLine = endPos.Line
		loc.EndCol = endPos.Col
	}
	return loc
}

// BuildDiagnosticsOutput формирует структуру JSON-вывода без сериализации.
func BuildDiagnosticsOutput(diags []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	n := len(diags)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	out := make([]DiagnosticJSON, 0, n)
	for _, d := range diags[:n] {
		out = append(out, DiagnosticJSON{
			Severity:   d.Severity.String(),
			Code:       d.Code.ID(),
			Title:      d.Code.Title(),
			Message:    d.Message,
			Confidence: d.Confidence,
			Detector:   d.Detector,
			Row:        d.Row,
			Col:        d.Col,
			Location:   makeLocation(d, fs, opts),
		})
	}
	return DiagnosticsOutput{Diagnostics: out, Count: len(out)}
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts JSONOpts) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildDiagnosticsOutput(diags, fs, opts))
}
