package token_test

import (
	"testing"

	"vesszo/internal/token"
)

func TestKindString(t *testing.T) {
	tests := map[token.Kind]string{
		token.Invalid:     "Invalid",
		token.Word:        "Word",
		token.SentenceEnd: "SentenceEnd",
		token.Skip:        "Skip",
		token.Kind(200):   "Kind(?)",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}

func TestIsWordLike(t *testing.T) {
	for _, k := range []token.Kind{token.Word, token.Number} {
		if !k.IsWordLike() {
			t.Errorf("%v should be word-like", k)
		}
	}
	for _, k := range []token.Kind{token.Comma, token.SentenceEnd, token.LineBreak, token.Bracket, token.Skip} {
		if k.IsWordLike() {
			t.Errorf("%v must not be word-like", k)
		}
	}
}

func TestWidthCountsCodePoints(t *testing.T) {
	tok := token.Token{Kind: token.Word, Text: "Szőlő"}
	if tok.Width() != 5 {
		t.Fatalf("Width = %d, want 5", tok.Width())
	}
}
