package rules

import (
	"fmt"
	"strings"
)

// Kind selects the detector a table feeds.
type Kind uint8

const (
	Backward Kind = iota
	Forward
	Pair
	Sentence
)

var kindNames = [...]string{
	Backward: "naive",
	Forward:  "forward",
	Pair:     "pair",
	Sentence: "typical",
}

// Kinds returns every kind in the order detectors run by default.
func Kinds() []Kind {
	return []Kind{Backward, Forward, Pair, Sentence}
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind accepts the table names plus a few aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "naive", "backward", "before":
		return Backward, nil
	case "forward", "naive_forward", "after":
		return Forward, nil
	case "pair", "pairs":
		return Pair, nil
	case "typical", "sentence":
		return Sentence, nil
	}
	return 0, fmt.Errorf("unknown rule kind %q (want naive, forward, pair or typical)", s)
}

// DefaultCaseSensitive reports the matching mode used when a table does not
// choose one. Only the backward table matches case-sensitively.
func (k Kind) DefaultCaseSensitive() bool {
	return k == Backward
}

// DefaultTemplate is the Hungarian message used when neither the table nor
// the rule provides one.
func (k Kind) DefaultTemplate() string {
	switch k {
	case Backward:
		return `a(z) "{word}" szó elé általában vesszőt teszünk.`
	case Forward:
		return `a(z) "{word}" szó után általában vesszőt teszünk.`
	case Pair:
		return `a(z) "{word}" és "{second}" szavak közé általában vesszőt teszünk.`
	case Sentence:
		return `mondatokba, melyekben szerepel a(z) "{word}" szó, gyakran teszünk vesszőt.`
	}
	return `a(z) "{word}" szó közelében vessző hiányozhat.`
}
