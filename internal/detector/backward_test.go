package detector

import (
	"testing"

	"vesszo/internal/diag"
	"vesszo/internal/rules"
)

func TestBackward(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []at
	}{
		{"empty", "", nil},
		{"no trigger", "Szép napunk van.", nil},
		{"missing comma", "Azt hiszem hogy igen.", []at{{1, 12}}},
		{"comma present", "Azt hiszem, hogy igen.", nil},
		{"semicolon counts", "Azt hiszem; hogy igen.", nil},
		{"adjacent triggers flagged once", "hogy hogy", []at{{1, 1}}},
		{"comma at line end", "Azt mondta,\nhogy jön.", nil},
		{"line break alone", "Azt mondta\nhogy jön.", []at{{2, 1}}},
		{"sentence end resets", "Jön. hogy", []at{{1, 7}}},
		{"case sensitive", "Hogy vagy?", nil},
		{"word between", "hogy szép hogy", []at{{1, 1}, {1, 11}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewBackward(table(rules.Backward, "hogy"))
			expectAt(t, d.Scan(tokensOf(t, tt.text)), tt.want...)
		})
	}
}

func TestBackwardDiagnosticFields(t *testing.T) {
	tbl := rules.NewTable(rules.Backward, "naive", true, []rules.Rule{{Word: "mint", Confidence: 0.8}})
	ds := NewBackward(tbl).Scan(tokensOf(t, "Nagyobb mint a ház."))
	if len(ds) != 1 {
		t.Fatalf("got %d diagnostics", len(ds))
	}
	d := ds[0]
	if d.Code != diag.CommaBefore || d.Detector != "naive" || d.Severity != diag.SevWarning {
		t.Errorf("unexpected diagnostic %+v", d)
	}
	if d.Message != `a(z) "mint" szó elé általában vesszőt teszünk.` || d.Confidence != 0.8 {
		t.Errorf("mistake = %+v", d.Mistake)
	}
	if d.Primary.Start != 8 || d.Primary.End != 12 {
		t.Errorf("primary span = %v", d.Primary)
	}
}
