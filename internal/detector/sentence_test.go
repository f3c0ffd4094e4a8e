package detector

import (
	"testing"

	"vesszo/internal/rules"
)

func TestSentence(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []at
	}{
		{"empty", "", nil},
		{"trigger without comma", "Remélem jól van.", []at{{1, 17}}},
		{"comma after trigger", "Remélem, jól van.", nil},
		{"comma before trigger", "Jól van, remélem.", nil},
		{"semicolon", "Jól van; remélem.", nil},
		{"no terminal punctuation", "Remélem jól van", nil},
		{"comma survives line break", "Remélem,\njól van.", nil},
		{"reported at sentence end on the next line", "Remélem\njól van.", []at{{2, 9}}},
		{"each sentence on its own", "Remélem jól van. Remélem, igen.", []at{{1, 17}}},
		{"question mark ends", "Remélem jól van?", []at{{1, 17}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewSentence(table(rules.Sentence, "remélem"))
			expectAt(t, d.Scan(tokensOf(t, tt.text)), tt.want...)
		})
	}
}

func TestSentenceTableOrder(t *testing.T) {
	d := NewSentence(table(rules.Sentence, "hogy", "mert"))
	ds := d.Scan(tokensOf(t, "Mert azt mondta hogy jön."))
	if len(ds) != 2 {
		t.Fatalf("got %d diagnostics", len(ds))
	}
	if ds[0].Message != `mondatokba, melyekben szerepel a(z) "hogy" szó, gyakran teszünk vesszőt.` {
		t.Errorf("first message = %q", ds[0].Message)
	}
	if ds[0].Row != ds[1].Row || ds[0].Col != ds[1].Col {
		t.Errorf("both findings belong to the same sentence end: %v", positions(ds))
	}
}
