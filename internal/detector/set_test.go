package detector

import (
	"reflect"
	"sort"
	"strings"
	"testing"

	"vesszo/internal/diag"
	"vesszo/internal/rules"
)

func defaultSet(t *testing.T) Set {
	t.Helper()
	var tables []*rules.Table
	for _, k := range rules.Kinds() {
		tbl, err := rules.Default(k, rules.Options{})
		if err != nil {
			t.Fatal(err)
		}
		tables = append(tables, tbl)
	}
	set, err := NewSet(tables)
	if err != nil {
		t.Fatal(err)
	}
	return set
}

func TestNewSetOrder(t *testing.T) {
	set := defaultSet(t)
	want := []string{"naive", "forward", "pair", "typical"}
	if got := set.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}
	if _, ok := set[2].(*Pair); !ok {
		t.Fatalf("third detector is %T", set[2])
	}
}

func TestSetConcatenatesInOrder(t *testing.T) {
	set := defaultSet(t)
	ds := set.Scan(tokensOf(t, "Szia Anna! Azt hiszem hogy jön."))
	var kinds []string
	for _, d := range ds {
		kinds = append(kinds, d.Detector)
	}
	// naive: hogy, forward: szia, typical: hogy in a comma-free sentence
	want := []string{"naive", "forward", "typical"}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("detector order = %v, want %v", kinds, want)
	}
}

func TestNoTriggersNoDiagnostics(t *testing.T) {
	set := defaultSet(t)
	for _, text := range []string{
		"",
		"Szép napunk van.",
		"A kutya ugat.\nA macska nyávog.",
		"12,5 kiló (körülbelül) répa!",
	} {
		if ds := set.Scan(tokensOf(t, text)); len(ds) != 0 {
			t.Errorf("%q: unexpected diagnostics %+v", text, ds)
		}
	}
}

func TestScanIsIdempotent(t *testing.T) {
	text := "Azt hiszem hogy mind a tanárok mind a diákok jönnek.\nSzia Anna, ha kimész akkor hozz kenyeret!"
	a := defaultSet(t).Scan(tokensOf(t, text))
	set := defaultSet(t)
	set.Scan(tokensOf(t, "Szia Béla"))
	b := set.Scan(tokensOf(t, text))
	if len(a) == 0 {
		t.Fatal("sample text should produce diagnostics")
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("two scans differ:\n%v\n%v", a, b)
	}
}

func TestScanRowEndsLikeLineBreak(t *testing.T) {
	d := NewForward(table(rules.Forward, "szia"))
	if ds := d.ScanRow(tokensOf(t, "Kedves barátom szia")); len(ds) != 0 {
		t.Fatalf("first row: %v", ds)
	}
	if row, col := d.Position(); row != 2 || col != 1 {
		t.Fatalf("after a row position = %d:%d, want 2:1", row, col)
	}
	// the row end closes the greeting, same as "\n" in a whole scan
	expectAt(t, d.ScanRow(tokensOf(t, "Anna jön holnap.")))
	expectAt(t, d.Scan(tokensOf(t, "Kedves barátom szia\nAnna jön holnap.")))

	// inside a row the trigger still fires
	d = NewForward(table(rules.Forward, "szia"))
	expectAt(t, d.ScanRow(tokensOf(t, "Szia Anna")), at{1, 6})
}

func TestScanRowMatchesScan(t *testing.T) {
	lines := []string{
		"Azt hiszem hogy mind a tanárok",
		"mind a diákok jönnek. Kedves barátom szia",
		"Anna, ha kimész akkor",
		"hozz kenyeret!",
	}
	whole := defaultSet(t).Scan(tokensOf(t, strings.Join(lines, "\n")))
	rows := defaultSet(t)
	var byRow []diag.Diagnostic
	for _, line := range lines {
		byRow = append(byRow, rows.ScanRow(tokensOf(t, line))...)
	}
	if len(whole) == 0 {
		t.Fatal("sample text should produce diagnostics")
	}
	// Set.Scan groups by detector, ScanRow by row
	byPosition(whole)
	byPosition(byRow)
	if !reflect.DeepEqual(positions(whole), positions(byRow)) {
		t.Fatalf("whole %v, by row %v", positions(whole), positions(byRow))
	}
	for i := range whole {
		if whole[i].Message != byRow[i].Message {
			t.Errorf("finding %d: %q vs %q", i, whole[i].Message, byRow[i].Message)
		}
	}
}

func byPosition(ds []diag.Diagnostic) {
	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].Row != ds[j].Row {
			return ds[i].Row < ds[j].Row
		}
		if ds[i].Col != ds[j].Col {
			return ds[i].Col < ds[j].Col
		}
		return ds[i].Code < ds[j].Code
	})
}

func TestSetScanRowRows(t *testing.T) {
	set := Set{NewBackward(table(rules.Backward, "hogy")), NewSentence(table(rules.Sentence, "hogy"))}
	var all []at
	for _, line := range []string{"Tudom", "hogy jön."} {
		all = append(all, positions(set.ScanRow(tokensOf(t, line)))...)
	}
	want := []at{{2, 1}, {2, 10}}
	if !reflect.DeepEqual(all, want) {
		t.Fatalf("positions = %v, want %v", all, want)
	}
	set.Reset()
	for _, d := range set {
		if r, c := d.Position(); r != 1 || c != 1 {
			t.Fatalf("%s not reset: %d:%d", d.Name(), r, c)
		}
	}
}

func TestFreshAndOnly(t *testing.T) {
	set := defaultSet(t)
	fresh := set.Fresh()
	set[1].ScanRow(tokensOf(t, "Szia"))
	if r, _ := fresh[1].Position(); r != 1 {
		t.Fatal("Fresh shares state with the original set")
	}
	if fresh[0].Table() != set[0].Table() {
		t.Fatal("Fresh should reuse the tables")
	}
	only := set.Only([]rules.Kind{rules.Pair, rules.Backward})
	if got := only.Names(); !reflect.DeepEqual(got, []string{"naive", "pair"}) {
		t.Fatalf("Only = %v", got)
	}
	if len(set.Only(nil)) != 4 {
		t.Fatal("Only(nil) should keep everything")
	}
}

func TestPositionAdvance(t *testing.T) {
	p := startPosition()
	for _, tok := range tokensOf(t, "Árvíz, tűrő\nx") {
		p.advance(tok)
	}
	// Árvíz(5)+1, ','+1, tűrő(4)+1 then newline, x(1)+1
	if p.Row != 2 || p.Col != 3 {
		t.Fatalf("position = %+v, want 2:3", p)
	}
}
