package rules

import (
	"errors"
	"fmt"
	"math"
	"unicode"
)

// Validate checks a table and reports every problem at once.
func Validate(t *Table) error {
	var errs []error
	seen := make(map[string]int, len(t.Rules))
	for i, r := range t.Rules {
		at := t.location(i)
		if r.Word == "" {
			errs = append(errs, fmt.Errorf("%s: empty word", at))
			continue
		}
		if !matchable(r.Word) {
			errs = append(errs, fmt.Errorf("%s: %q is not a single word or number and can never match", at, r.Word))
		}
		if math.IsNaN(r.Confidence) || r.Confidence < 0 || r.Confidence > 1 {
			errs = append(errs, fmt.Errorf("%s: confidence %v outside [0,1]", at, r.Confidence))
		}
		key := t.Fold(r.Word)
		if first, dup := seen[key]; dup {
			errs = append(errs, fmt.Errorf("%s: duplicate word %q (first at %s)", at, r.Word, t.location(first)))
		} else {
			seen[key] = i
		}
		switch {
		case t.Kind == Pair && len(r.Followers) == 0:
			errs = append(errs, fmt.Errorf("%s: pair rule %q has no followers", at, r.Word))
		case t.Kind != Pair && len(r.Followers) > 0:
			errs = append(errs, fmt.Errorf("%s: followers are only allowed in pair tables", at))
		}
		for _, f := range r.Followers {
			if !matchable(f) {
				errs = append(errs, fmt.Errorf("%s: follower %q is not a single word or number", at, f))
			}
		}
	}
	return errors.Join(errs...)
}

func (t *Table) location(i int) string {
	if line := t.Rules[i].Line; line > 0 {
		return fmt.Sprintf("%s:%d", t.Name, line)
	}
	return fmt.Sprintf("%s: rules[%d]", t.Name, i)
}

// matchable reports whether s lexes as exactly one Word or Number token.
func matchable(s string) bool {
	if s == "" {
		return false
	}
	letters, digits := true, true
	for _, r := range s {
		letters = letters && unicode.IsLetter(r)
		digits = digits && ((r >= '0' && r <= '9') || r == ',')
	}
	return letters || (digits && s[0] != ',' && s[len(s)-1] != ',')
}
