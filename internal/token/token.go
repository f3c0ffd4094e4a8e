package token

import (
	"unicode/utf8"

	"vesszo/internal/source"
)

// Token is one classified slice of a document.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

func (t Token) IsComma() bool { return t.Kind == Comma }

func (t Token) IsSentenceEnd() bool { return t.Kind == SentenceEnd }

func (t Token) IsLineBreak() bool { return t.Kind == LineBreak }

// Width is the token length in code points.
func (t Token) Width() int {
	return utf8.RuneCountInString(t.Text)
}
