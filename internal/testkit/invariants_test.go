package testkit

import (
	"testing"

	"vesszo/internal/detector"
	"vesszo/internal/diag"
	"vesszo/internal/lexer"
	"vesszo/internal/rules"
	"vesszo/internal/source"
)

const letter = `Kedves Anna!
Szia Anna, azt hiszem hogy mind a tanárok mind a diákok jönnek.
Remélem jól vagy.

Ha kimész akkor hozz kenyeret (és tejet) mert elfogyott.
Igen ez igaz, tudod ezt jól tudom.`

func defaultSet(t *testing.T) detector.Set {
	t.Helper()
	var tables []*rules.Table
	for _, k := range rules.Kinds() {
		tbl, err := rules.Default(k, rules.Options{})
		if err != nil {
			t.Fatal(err)
		}
		tables = append(tables, tbl)
	}
	set, err := detector.NewSet(tables)
	if err != nil {
		t.Fatal(err)
	}
	return set
}

func TestTokenInvariantsHold(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("letter.txt", []byte(letter)))
	for _, keep := range []bool{false, true} {
		toks := lexer.All(file, lexer.Options{KeepSkipped: keep})
		if err := CheckTokenInvariants(file, toks); err != nil {
			t.Fatalf("KeepSkipped=%v: %v", keep, err)
		}
	}
}

func TestPositionsHoldAcrossLines(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("letter.txt", []byte(letter)))
	ds := defaultSet(t).Scan(lexer.All(file, lexer.Options{}))
	if len(ds) < 5 {
		t.Fatalf("expected several findings, got %d", len(ds))
	}
	rows := map[int]bool{}
	for _, d := range ds {
		rows[d.Row] = true
	}
	if len(rows) < 3 {
		t.Fatalf("findings should span several rows, got %v", rows)
	}
	if err := CheckPositions(fs, ds); err != nil {
		t.Fatal(err)
	}
}

func TestCheckPositionsCatchesDrift(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("drift.txt", []byte("a\nhogy")))
	ds := defaultSet(t).Scan(lexer.All(file, lexer.Options{}))
	if len(ds) == 0 {
		t.Fatal("expected a finding for hogy")
	}
	bad := ds[0]
	bad.Row = 1
	if err := CheckPositions(fs, []diag.Diagnostic{bad}); err == nil {
		t.Fatal("a row that ignores the line break must be rejected")
	}
	bad = ds[0]
	bad.Col += 3
	if err := CheckPositions(fs, []diag.Diagnostic{bad}); err == nil {
		t.Fatal("a shifted column must be rejected")
	}
}
