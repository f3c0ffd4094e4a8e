package diag

import (
	"testing"

	"vesszo/internal/source"
)

func finding(code Code, row, col int, conf float64) Diagnostic {
	return New(code, row, col, source.Span{}, Mistake{Message: "m", Confidence: conf}, "test")
}

func TestSeverityFor(t *testing.T) {
	tests := []struct {
		conf float64
		want Severity
	}{
		{0, SevInfo},
		{0.5, SevInfo},
		{0.74, SevInfo},
		{0.75, SevWarning},
		{1, SevWarning},
	}
	for _, tt := range tests {
		if got := SeverityFor(tt.conf); got != tt.want {
			t.Errorf("SeverityFor(%v) = %v, want %v", tt.conf, got, tt.want)
		}
	}
}

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	if dropped := b.AddAll([]Diagnostic{finding(CommaBefore, 1, 1, 1), finding(CommaBefore, 1, 2, 1), finding(CommaBefore, 1, 3, 1)}); dropped != 1 {
		t.Fatalf("dropped = %d, want 1", dropped)
	}
	if b.Len() != 2 {
		t.Fatalf("Len = %d", b.Len())
	}
	unbounded := NewBag(0)
	for i := range 100 {
		unbounded.Add(finding(CommaAfter, 1, i+1, 1))
	}
	if unbounded.Len() != 100 {
		t.Fatalf("unbounded Len = %d", unbounded.Len())
	}
}

func TestBagFilterStrictlyAbove(t *testing.T) {
	b := NewBag(0)
	b.Add(finding(CommaBefore, 1, 1, 0.30))
	b.Add(finding(CommaBefore, 1, 2, 0.31))
	b.Add(NewError(IOLoadFileError, "missing.txt", "nope"))
	b.Filter(0.30)
	if b.Len() != 2 {
		t.Fatalf("Len = %d, want 2", b.Len())
	}
	if b.Items()[0].Col != 2 || b.Items()[1].Code != IOLoadFileError {
		t.Fatalf("unexpected survivors: %+v", b.Items())
	}
}

func TestBagSortKeepsTiesInOrder(t *testing.T) {
	b := NewBag(0)
	first := finding(CommaBefore, 2, 5, 1)
	first.Message = "first"
	second := finding(CommaBefore, 2, 5, 1)
	second.Message = "second"
	b.Add(finding(CommaAfter, 3, 1, 1))
	b.Add(first)
	b.Add(finding(CommaAfter, 1, 9, 1))
	b.Add(second)
	b.Sort()

	got := b.Items()
	if got[0].Row != 1 || got[1].Message != "first" || got[2].Message != "second" || got[3].Row != 3 {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(finding(CommaInSentence, 1, 4, 0.5))
	other := NewBag(0)
	other.Add(finding(CommaBefore, 1, 2, 0.5))
	other.Add(finding(CommaBefore, 1, 8, 0.5))
	a.Merge(other)
	a.Merge(nil)
	if a.Len() != 3 {
		t.Fatalf("after Merge Len=%d, want 3", a.Len())
	}
	if got := a.Items(); got[0].Code != CommaInSentence || got[2].Col != 8 {
		t.Fatalf("merge must append in order: %+v", got)
	}
	if a.Add(finding(CommaBefore, 2, 1, 0.5)) {
		t.Fatal("limit grown to the merged size, Add must fail")
	}
}

func TestCountAtLeast(t *testing.T) {
	b := NewBag(0)
	b.Add(finding(CommaBefore, 1, 1, 0.5))
	b.Add(finding(CommaBefore, 1, 2, 0.9))
	if n := b.CountAtLeast(SevError); n != 0 {
		t.Fatalf("CountAtLeast(error) = %d", n)
	}
	if n := b.CountAtLeast(SevWarning); n != 1 {
		t.Fatalf("CountAtLeast(warning) = %d", n)
	}
}

func TestCodeID(t *testing.T) {
	if got := CommaBetween.ID(); got != "VSZ1003" {
		t.Errorf("ID = %q", got)
	}
	if Code(9999).Title() != "Unknown error" {
		t.Error("unknown code should fall back to the unknown title")
	}
}

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("levél.txt", []byte("Szia meghoztuk"))
	d := New(CommaAfter, 1, 6, source.Span{File: id, Start: 5, End: 14},
		Mistake{Message: "a(z) \"szia\"\nszó után", Confidence: 1}, "forward")

	want := `warning VSZ1002 levél.txt:1:6 (1.00) a(z) "szia" szó után`
	if got := FormatShortDiagnostics([]Diagnostic{d}, fs); got != want {
		t.Fatalf("got  %q\nwant %q", got, want)
	}
}

func TestParseSeverity(t *testing.T) {
	if s, err := ParseSeverity("Warning"); err != nil || s != SevWarning {
		t.Fatalf("ParseSeverity = %v,%v", s, err)
	}
	if _, err := ParseSeverity("fatal"); err == nil {
		t.Fatal("expected error")
	}
}
