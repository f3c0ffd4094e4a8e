package rules

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultDelimiter separates fields in delimited rule files.
const DefaultDelimiter = ";"

// Options override what a rule file says about itself.
type Options struct {
	Delimiter     string // "" means DefaultDelimiter
	CaseSensitive *bool  // nil keeps the file's choice or the kind default
	Template      string // "" keeps the file's template or the kind default
}

func (o Options) delimiter() string {
	if o.Delimiter == "" {
		return DefaultDelimiter
	}
	return o.Delimiter
}

// IsYAML reports whether path names a YAML rule document.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Parse decodes data as YAML or delimited text depending on the file name.
// The result is validated.
func Parse(name string, data []byte, kind Kind, opts Options) (*Table, error) {
	var (
		t   *Table
		err error
	)
	if IsYAML(name) {
		t, err = ParseYAML(name, data, kind, opts)
	} else {
		t, err = ParseDelimited(name, data, kind, opts)
	}
	if err != nil {
		return nil, err
	}
	if err := Validate(t); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseDelimited reads one rule per line:
//
//	word;confidence[;message]
//	first;confidence;second1 second2 ...[;message]   (pair tables)
//
// Blank lines and lines starting with '#' are ignored. Every malformed line
// is reported; the errors are joined.
func ParseDelimited(name string, data []byte, kind Kind, opts Options) (*Table, error) {
	delim := opts.delimiter()
	minFields, shape := 2, "word"+delim+"confidence"
	if kind == Pair {
		minFields, shape = 3, "first"+delim+"confidence"+delim+"followers"
	}

	var (
		out  []Rule
		errs []error
	)
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lineNo := i + 1
		fields := strings.Split(line, delim)
		for j := range fields {
			fields[j] = strings.TrimSpace(fields[j])
		}
		if len(fields) < minFields {
			errs = append(errs, fmt.Errorf("%s:%d: expected %q, got %q", name, lineNo, shape, line))
			continue
		}
		conf, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s:%d: bad confidence %q: %w", name, lineNo, fields[1], err))
			continue
		}
		r := Rule{Word: fields[0], Confidence: conf, Line: lineNo}
		rest := fields[2:]
		if kind == Pair {
			r.Followers = strings.Fields(fields[2])
			rest = fields[3:]
		}
		if len(rest) > 0 {
			r.Message = strings.Join(rest, delim)
		}
		out = append(out, r)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	caseSensitive := kind.DefaultCaseSensitive()
	if opts.CaseSensitive != nil {
		caseSensitive = *opts.CaseSensitive
	}
	t := NewTable(kind, name, caseSensitive, out)
	t.Template = opts.Template
	return t, nil
}
