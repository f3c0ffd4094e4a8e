package diag

import (
	"sort"
)

// Bag is an ordered, bounded diagnostic list. Insertion order is kept until Sort.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag creates a bag holding at most max items; max <= 0 means unbounded.
func NewBag(max int) *Bag {
	c := max
	if c <= 0 || c > 64 {
		c = 64
	}
	return &Bag{
		items: make([]Diagnostic, 0, c),
		max:   max,
	}
}

// Add добавляет диагностику, учитывая лимит.
// Возвращает false, если диагностика не добавлена (достигнут лимит).
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

// AddAll adds ds in order and reports how many were dropped by the limit.
func (b *Bag) AddAll(ds []Diagnostic) (dropped int) {
	for _, d := range ds {
		if !b.Add(d) {
			dropped++
		}
	}
	return dropped
}

// CountAtLeast counts diagnostics with severity >= sev.
func (b *Bag) CountAtLeast(sev Severity) int {
	n := 0
	for i := range b.items {
		if b.items[i].Severity >= sev {
			n++
		}
	}
	return n
}

func (b *Bag) Len() int {
	return len(b.items)
}

// Items возвращает read-only slice диагностик.
// ВАЖНО: не модифицируйте возвращаемый срез! (он указывает на внутренний массив Bag)
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Merge appends every item of other, growing the limit when needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); b.max > 0 && total > b.max {
		b.max = total
	}
	b.items = append(b.items, other.items...)
}

// Filter keeps only findings whose confidence is strictly above threshold.
// Errors are always kept.
func (b *Bag) Filter(threshold float64) {
	kept := b.items[:0]
	for _, d := range b.items {
		if d.Severity >= SevError || d.Confidence > threshold {
			kept = append(kept, d)
		}
	}
	b.items = kept
}

// Sort orders by file, row, column, code; ties keep insertion order.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Path != dj.Path {
			return di.Path < dj.Path
		}
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Row != dj.Row {
			return di.Row < dj.Row
		}
		if di.Col != dj.Col {
			return di.Col < dj.Col
		}
		return di.Code < dj.Code
	})
}
