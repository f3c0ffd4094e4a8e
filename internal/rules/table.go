package rules

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rule is one trigger entry.
type Rule struct {
	Word       string   `msgpack:"word"`
	Followers  []string `msgpack:"followers,omitempty"` // pair tables only
	Confidence float64  `msgpack:"confidence"`
	Message    string   `msgpack:"message,omitempty"` // overrides Table.Template
	Line       int      `msgpack:"line,omitempty"`    // 1-based source line, 0 when unknown
}

// Table is an ordered rule list plus its matching mode.
type Table struct {
	Kind          Kind   `msgpack:"kind"`
	Name          string `msgpack:"name"`
	CaseSensitive bool   `msgpack:"case_sensitive"`
	Template      string `msgpack:"template,omitempty"`
	Rules         []Rule `msgpack:"rules"`

	index   map[string]int
	follows []map[string]struct{}
}

// NewTable builds a ready to use table. The rules slice is owned by the table afterwards.
func NewTable(kind Kind, name string, caseSensitive bool, rules []Rule) *Table {
	t := &Table{Kind: kind, Name: name, CaseSensitive: caseSensitive, Rules: rules}
	t.reindex()
	return t
}

// reindex rebuilds the lookup maps; the first of duplicated words wins.
func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Rules))
	t.follows = make([]map[string]struct{}, len(t.Rules))
	for i, r := range t.Rules {
		key := t.Fold(r.Word)
		if _, dup := t.index[key]; !dup {
			t.index[key] = i
		}
		if len(r.Followers) == 0 {
			continue
		}
		set := make(map[string]struct{}, len(r.Followers))
		for _, f := range r.Followers {
			set[t.Fold(f)] = struct{}{}
		}
		t.follows[i] = set
	}
}

// Fold normalises text for matching: identity for case-sensitive tables,
// Hungarian lower-casing otherwise.
func (t *Table) Fold(text string) string {
	if t.CaseSensitive {
		return text
	}
	// Caser хранит состояние, поэтому новый на каждый вызов
	return cases.Lower(language.Hungarian).String(text)
}

// Lookup returns the index of the rule whose word matches text.
func (t *Table) Lookup(text string) (int, bool) {
	i, ok := t.index[t.Fold(text)]
	return i, ok
}

// LookupFolded is Lookup for text already passed through Fold.
func (t *Table) LookupFolded(folded string) (int, bool) {
	i, ok := t.index[folded]
	return i, ok
}

// Follows reports whether text is an accepted second word of rule i and
// returns the follower as written in the table.
func (t *Table) Follows(i int, text string) (string, bool) {
	return t.FollowsFolded(i, t.Fold(text))
}

// FollowsFolded is Follows for text already passed through Fold.
func (t *Table) FollowsFolded(i int, folded string) (string, bool) {
	if i < 0 || i >= len(t.follows) || t.follows[i] == nil {
		return "", false
	}
	if _, ok := t.follows[i][folded]; !ok {
		return "", false
	}
	for _, f := range t.Rules[i].Followers {
		if t.Fold(f) == folded {
			return f, true
		}
	}
	return folded, true
}

// Len returns the number of rules.
func (t *Table) Len() int {
	return len(t.Rules)
}

// Message renders the explanation of rule i. second is the matched follower
// for pair rules and ignored otherwise.
func (t *Table) Message(i int, second string) string {
	r := t.Rules[i]
	tmpl := r.Message
	if tmpl == "" {
		tmpl = t.Template
	}
	if tmpl == "" {
		tmpl = t.Kind.DefaultTemplate()
	}
	return strings.NewReplacer("{word}", r.Word, "{second}", second).Replace(tmpl)
}
