package token

// Kind represents the category of a text token.
type Kind uint8

const (
	// Invalid is the zero Kind.
	Invalid Kind = iota
	// EOF marks the end of the document.
	EOF
	// Word is a maximal run of Unicode letters.
	Word
	// Number is a digit run with an optional decimal comma part ("3,14").
	Number
	// Comma covers ',' and ';'.
	Comma
	// SentenceEnd is one of '.', '?', '!'.
	SentenceEnd
	// LineBreak is a single '\n'.
	LineBreak
	// Bracket is a run of ()[]{} characters.
	Bracket
	// Skip is a discarded run (whitespace or unclassified characters).
	Skip
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Word:        "Word",
	Number:      "Number",
	Comma:       "Comma",
	SentenceEnd: "SentenceEnd",
	LineBreak:   "LineBreak",
	Bracket:     "Bracket",
	Skip:        "Skip",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// IsWordLike reports whether detectors treat the kind as a lexical word.
func (k Kind) IsWordLike() bool {
	return k == Word || k == Number
}
