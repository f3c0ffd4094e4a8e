package detector

import (
	"strings"
	"testing"
)

const agreement = "Mind a tanárok mind a diákok egyetértenek abban hogy változásra van szükség!"

func TestPair(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []at
	}{
		{"empty", "", nil},
		{"both pairs", agreement, []at{{1, 16}, {1, 49}}},
		{"comma after first mind", strings.Replace(agreement, "Mind a", "Mind, a", 1), []at{{1, 51}}},
		{"comma after abban", strings.Replace(agreement, "abban hogy", "abban, hogy", 1), []at{{1, 16}}},
		{"line break keeps arming", "Ha kimész\nakkor hozz", []at{{2, 1}}},
		{"sentence end disarms", "Ha kimész. Akkor hozz", nil},
		{"follower before first", "akkor ha", nil},
		{"unbounded distance", "Ha egy kettő három négy öt hat hét akkor", []at{{1, 36}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewPair(pairTable([2]string{"mind", "mind"}, [2]string{"abban", "hogy"}, [2]string{"ha", "akkor"}))
			expectAt(t, d.Scan(tokensOf(t, tt.text)), tt.want...)
		})
	}
}

func TestPairMessages(t *testing.T) {
	d := NewPair(pairTable([2]string{"mind", "mind"}, [2]string{"abban", "hogy"}))
	ds := d.Scan(tokensOf(t, agreement))
	if len(ds) != 2 {
		t.Fatalf("got %d diagnostics", len(ds))
	}
	want := []string{
		`a(z) "mind" és "mind" szavak közé általában vesszőt teszünk.`,
		`a(z) "abban" és "hogy" szavak közé általában vesszőt teszünk.`,
	}
	for i, w := range want {
		if ds[i].Message != w {
			t.Errorf("message %d = %q, want %q", i, ds[i].Message, w)
		}
		if ds[i].Confidence != 0.8 {
			t.Errorf("confidence %d = %v", i, ds[i].Confidence)
		}
	}
}

func TestPairSeveralArmed(t *testing.T) {
	d := NewPair(pairTable([2]string{"ha", "akkor"}, [2]string{"úgy", "akkor"}))
	ds := d.Scan(tokensOf(t, "Ha úgy érzed akkor gyere"))
	expectAt(t, ds, at{1, 14}, at{1, 14})
}
