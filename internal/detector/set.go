package detector

import (
	"errors"
	"slices"

	"vesszo/internal/diag"
	"vesszo/internal/rules"
	"vesszo/internal/token"
)

// Set is an ordered list of detectors. Results are concatenated in set order.
type Set []Detector

// NewSet builds one detector per table, keeping the table order.
func NewSet(tables []*rules.Table) (Set, error) {
	set := make(Set, 0, len(tables))
	var errs []error
	for _, t := range tables {
		d, err := New(t)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		set = append(set, d)
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return set, nil
}

// Scan runs every detector over the same tokens from a clean state.
func (s Set) Scan(tokens []token.Token) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range s {
		out = append(out, d.Scan(tokens)...)
	}
	return out
}

// ScanRow feeds one row to every detector, keeping their state.
func (s Set) ScanRow(tokens []token.Token) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, d := range s {
		out = append(out, d.ScanRow(tokens)...)
	}
	return out
}

func (s Set) Reset() {
	for _, d := range s {
		d.Reset()
	}
}

// Fresh returns new detectors over the same tables, for use on another goroutine.
func (s Set) Fresh() Set {
	out := make(Set, len(s))
	for i, d := range s {
		// вид таблицы уже проверен в NewSet
		out[i], _ = New(d.Table())
	}
	return out
}

// Only keeps the detectors whose kind is listed. An empty list keeps all.
func (s Set) Only(kinds []rules.Kind) Set {
	if len(kinds) == 0 {
		return s
	}
	out := make(Set, 0, len(s))
	for _, d := range s {
		if slices.Contains(kinds, d.Kind()) {
			out = append(out, d)
		}
	}
	return out
}

// Names lists detector names in order.
func (s Set) Names() []string {
	names := make([]string, len(s))
	for i, d := range s {
		names[i] = d.Name()
	}
	return names
}
