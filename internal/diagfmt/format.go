package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"vesszo/internal/diag"
	"vesszo/internal/source"
)

// Format selects a diagnostics renderer.
type Format string

const (
	FormatPlain  Format = "plain"
	FormatPretty Format = "pretty"
	FormatJSON   Format = "json"
	FormatSarif  Format = "sarif"
	FormatShort  Format = "short"
)

// Formats lists the accepted format names.
func Formats() []Format {
	return []Format{FormatPlain, FormatPretty, FormatJSON, FormatSarif, FormatShort}
}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (expected: plain|pretty|json|sarif|short)", s)
}

// Options carries the settings of every renderer; Render picks the relevant part.
type Options struct {
	Plain  PlainOpts
	Pretty PrettyOpts
	JSON   JSONOpts
	Sarif  SarifRunMeta
}

// Render writes diags in the given format.
func Render(w io.Writer, format Format, diags []diag.Diagnostic, fs *source.FileSet, opts Options) error {
	switch format {
	case FormatPlain:
		return Plain(w, diags, fs, opts.Plain)
	case FormatPretty:
		return Pretty(w, diags, fs, opts.Pretty)
	case FormatJSON:
		return JSON(w, diags, fs, opts.JSON)
	case FormatSarif:
		return Sarif(w, diags, fs, opts.Sarif)
	case FormatShort:
		out := diag.FormatShortDiagnostics(diags, fs)
		if out == "" {
			return nil
		}
		_, err := io.WriteString(w, out+"\n")
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}
