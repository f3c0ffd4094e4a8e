package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"vesszo/internal/diag"
	"vesszo/internal/source"
)

// toProtocol converts findings on the normalised copy of text into LSP
// diagnostics positioned in text itself.
func toProtocol(fs *source.FileSet, text string, diags []diag.Diagnostic) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(diags))
	client := newClientText(text)
	src := serverName
	for _, d := range diags {
		var rng protocol.Range
		if d.Row > 0 && fs != nil && int(d.Primary.File) < fs.Len() {
			rng = client.rangeFor(fs.Get(d.Primary.File), d.Primary)
		}
		sev := severityOf(d.Severity)
		out = append(out, protocol.Diagnostic{
			Range:    rng,
			Severity: &sev,
			Code:     &protocol.IntegerOrString{Value: d.Code.ID()},
			Source:   &src,
			Message:  d.Message,
		})
	}
	return out
}

func severityOf(sev diag.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case diag.SevError:
		return protocol.DiagnosticSeverityError
	case diag.SevWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}
