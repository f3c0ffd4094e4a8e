package diag

import (
	"fmt"
	"strings"
)

// Severity defines the importance of a diagnostic.
type Severity uint8

const (
	// SevInfo is for low-confidence findings.
	SevInfo Severity = iota
	// SevWarning is for likely missing commas.
	SevWarning
	SevError
)

// WarningConfidence is the confidence from which a finding is a warning.
const WarningConfidence = 0.75

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "INFO"
	case SevWarning:
		return "WARNING"
	case SevError:
		return "ERROR"
	}
	return "UNKNOWN"
}

// SeverityFor maps a rule confidence onto a severity.
func SeverityFor(confidence float64) Severity {
	if confidence >= WarningConfidence {
		return SevWarning
	}
	return SevInfo
}

// ParseSeverity accepts info, warning and error in any case.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "info":
		return SevInfo, nil
	case "warning", "warn":
		return SevWarning, nil
	case "error":
		return SevError, nil
	}
	return 0, fmt.Errorf("unknown severity %q (want info, warning or error)", s)
}
