package rules

import (
	"errors"
	"strings"
	"testing"
)

func TestParseDelimited(t *testing.T) {
	src := "# comment\nhogy;0.7\n\n  mint ; 0.8 \nszia;1.0;köszönés után: {word}\n\n"
	tbl, err := Parse("naive.csv", []byte(src), Backward, Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tbl.Len() != 3 {
		t.Fatalf("got %d rules, want 3", tbl.Len())
	}
	r := tbl.Rules[1]
	if r.Word != "mint" || r.Confidence != 0.8 || r.Line != 4 {
		t.Errorf("rule 1 = %+v", r)
	}
	if tbl.Rules[2].Message != "köszönés után: {word}" {
		t.Errorf("message field = %q", tbl.Rules[2].Message)
	}
	if !tbl.CaseSensitive {
		t.Error("naive tables default to case-sensitive")
	}
}

func TestParsePair(t *testing.T) {
	tbl, err := Parse("pair.csv", []byte("mind;0.8;mind\nabban;0.9;hogy  mert\n"), Pair, Options{})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := strings.Join(tbl.Rules[1].Followers, ","); got != "hogy,mert" {
		t.Errorf("followers = %q", got)
	}
	if tbl.CaseSensitive {
		t.Error("pair tables default to case-insensitive")
	}
}

func TestParseCustomDelimiterAndOverrides(t *testing.T) {
	yes := true
	tbl, err := Parse("f.txt", []byte("Szia|1.0\n"), Forward, Options{Delimiter: "|", CaseSensitive: &yes, Template: "x {word}"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !tbl.CaseSensitive || tbl.Template != "x {word}" {
		t.Errorf("overrides not applied: %+v", tbl)
	}
	if _, ok := tbl.Lookup("szia"); ok {
		t.Error("case-sensitive override ignored")
	}
}

func TestParseReportsEveryBadLine(t *testing.T) {
	src := "hogy\nmint;sok\nami;0.5\n"
	_, err := Parse("bad.csv", []byte(src), Backward, Options{})
	if err == nil {
		t.Fatal("expected error")
	}
	msg := err.Error()
	for _, want := range []string{"bad.csv:1:", "bad.csv:2:"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q does not mention %q", msg, want)
		}
	}
	if strings.Contains(msg, "bad.csv:3:") {
		t.Errorf("valid line reported: %q", msg)
	}
}

func TestPairLineNeedsFollowers(t *testing.T) {
	_, err := Parse("pair.csv", []byte("ha;0.8\n"), Pair, Options{})
	if err == nil || !strings.Contains(err.Error(), "pair.csv:1:") {
		t.Fatalf("err = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		table *Table
		want  []string
	}{
		{
			name: "ok",
			table: NewTable(Sentence, "ok", false, []Rule{
				{Word: "hogy", Confidence: 0.5, Line: 1},
				{Word: "12", Confidence: 0.5, Line: 2},
			}),
		},
		{
			name:  "confidence range",
			table: NewTable(Backward, "c", true, []Rule{{Word: "hogy", Confidence: 1.5, Line: 3}}),
			want:  []string{"c:3: confidence 1.5 outside [0,1]"},
		},
		{
			name: "duplicate after folding",
			table: NewTable(Forward, "d", false, []Rule{
				{Word: "Szia", Confidence: 1, Line: 1},
				{Word: "szia", Confidence: 1, Line: 2},
			}),
			want: []string{`d:2: duplicate word "szia" (first at d:1)`},
		},
		{
			name:  "multi word trigger",
			table: NewTable(Backward, "m", true, []Rule{{Word: "azért hogy", Confidence: 1}}),
			want:  []string{"m: rules[0]:", "can never match"},
		},
		{
			name:  "followers outside pair",
			table: NewTable(Sentence, "f", false, []Rule{{Word: "ha", Followers: []string{"akkor"}, Confidence: 1, Line: 1}}),
			want:  []string{"followers are only allowed in pair tables"},
		},
		{
			name: "errors joined",
			table: NewTable(Pair, "j", false, []Rule{
				{Word: "ha", Confidence: -1, Line: 1},
				{Word: "", Confidence: 0.5, Line: 2},
			}),
			want: []string{"j:1: confidence -1", "j:1: pair rule \"ha\" has no followers", "j:2: empty word"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.table)
			if len(tt.want) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			for _, w := range tt.want {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("error %q does not contain %q", err, w)
				}
			}
		})
	}
}

func TestValidateJoinsErrors(t *testing.T) {
	err := Validate(NewTable(Backward, "x", true, []Rule{
		{Word: "a", Confidence: 2, Line: 1},
		{Word: "b", Confidence: 3, Line: 2},
	}))
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) || len(joined.Unwrap()) != 2 {
		t.Fatalf("expected two joined errors, got %v", err)
	}
}
