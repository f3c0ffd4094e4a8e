package detector

import (
	"testing"

	"vesszo/internal/diag"
	"vesszo/internal/lexer"
	"vesszo/internal/rules"
	"vesszo/internal/source"
	"vesszo/internal/token"
)

type at struct{ row, col int }

func tokensOf(t *testing.T, text string) []token.Token {
	t.Helper()
	fs := source.NewFileSet()
	return lexer.All(fs.Get(fs.AddVirtual("t.txt", []byte(text))), lexer.Options{})
}

func table(kind rules.Kind, words ...string) *rules.Table {
	rs := make([]rules.Rule, 0, len(words))
	for _, w := range words {
		rs = append(rs, rules.Rule{Word: w, Confidence: 1})
	}
	return rules.NewTable(kind, kind.String(), kind.DefaultCaseSensitive(), rs)
}

func pairTable(pairs ...[2]string) *rules.Table {
	rs := make([]rules.Rule, 0, len(pairs))
	for _, p := range pairs {
		rs = append(rs, rules.Rule{Word: p[0], Followers: []string{p[1]}, Confidence: 0.8})
	}
	return rules.NewTable(rules.Pair, "pair", false, rs)
}

func positions(ds []diag.Diagnostic) []at {
	out := make([]at, len(ds))
	for i, d := range ds {
		out[i] = at{d.Row, d.Col}
	}
	return out
}

func expectAt(t *testing.T, ds []diag.Diagnostic, want ...at) {
	t.Helper()
	got := positions(ds)
	if len(got) != len(want) {
		t.Fatalf("got %d diagnostics %v, want %v", len(got), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("diagnostic %d at %v, want %v", i, got[i], want[i])
		}
	}
}
