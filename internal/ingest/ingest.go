package ingest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// Format is the document type derived from the file extension.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatText
	FormatMarkdown
	FormatDOCX
	FormatPDF
)

var formatNames = [...]string{
	FormatUnknown:  "unknown",
	FormatText:     "text",
	FormatMarkdown: "markdown",
	FormatDOCX:     "docx",
	FormatPDF:      "pdf",
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f]
	}
	return "unknown"
}

// Extracted reports whether the text is produced by decoding a container
// rather than read byte for byte.
func (f Format) Extracted() bool {
	return f == FormatDOCX || f == FormatPDF
}

// ErrUnsupported is returned for extensions the checker does not read.
var ErrUnsupported = errors.New("unsupported file type")

var extensions = map[string]Format{
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatMarkdown,
	".markdown": FormatMarkdown,
	".docx":     FormatDOCX,
	".pdf":      FormatPDF,
}

// Extensions lists the recognised extensions in sorted order.
func Extensions() []string {
	out := make([]string, 0, len(extensions))
	for ext := range extensions {
		out = append(out, ext)
	}
	slices.Sort(out)
	return out
}

// FormatOf returns the format for path by extension.
func FormatOf(path string) Format {
	return extensions[strings.ToLower(filepath.Ext(path))]
}

// Supported reports whether path has a recognised extension.
func Supported(path string) bool {
	return FormatOf(path) != FormatUnknown
}

// Document is the text of one file, ready for source.FileSet.AddText.
type Document struct {
	Path   string
	Format Format
	Text   []byte
}

// Read loads path and extracts its text.
// Files without a recognised extension are read as plain text when
// strict is false, otherwise ErrUnsupported is returned.
func Read(path string, strict bool) (*Document, error) {
	format := FormatOf(path)
	if format == FormatUnknown {
		if strict {
			return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
		}
		format = FormatText
	}

	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var text []byte
	switch format {
	case FormatDOCX:
		s, err := parseDOCX(raw)
		if err != nil {
			return nil, err
		}
		text = []byte(s)
	case FormatPDF:
		s, err := parsePDF(path)
		if err != nil {
			return nil, err
		}
		text = []byte(s)
	default:
		text = raw
	}
	return &Document{Path: path, Format: format, Text: text}, nil
}

// trimLines drops trailing blanks of every line and trailing empty lines.
func trimLines(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
