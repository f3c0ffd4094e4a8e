package diag

import (
	"fmt"
	"strings"

	"vesszo/internal/source"
)

// FormatShortDiagnostics renders one stable line per diagnostic:
//
//	SEVERITY CODE path:row:col (confidence) message
//
// Lines keep the order of diags. Newlines inside messages are folded.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet) string {
	var b strings.Builder
	for i, d := range diags {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s %s %s:%d:%d (%.2f) %s",
			strings.ToLower(d.Severity.String()), d.Code.ID(), d.PathIn(fs),
			d.Row, d.Col, d.Confidence, sanitizeMessage(d.Message))
	}
	return b.String()
}

func sanitizeMessage(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
