package detector

import (
	"fmt"

	"vesszo/internal/diag"
	"vesszo/internal/rules"
	"vesszo/internal/source"
	"vesszo/internal/token"
)

// Detector is implemented by *Backward, *Forward, *Pair and *Sentence only.
type Detector interface {
	// Name is the table kind name: naive, forward, pair or typical.
	Name() string
	Kind() rules.Kind
	Table() *rules.Table
	// Scan resets position and state, then scans a whole document.
	Scan(tokens []token.Token) []diag.Diagnostic
	// ScanRow continues the current scan with one more row of tokens. After
	// the chunk the row advances by one and the column returns to 1.
	ScanRow(tokens []token.Token) []diag.Diagnostic
	// Reset puts the detector back to row 1, column 1 with empty state.
	Reset()
	// Position reports the current row and column.
	Position() (row, col int)

	sealed()
}

// New builds the detector variant matching table.Kind.
func New(table *rules.Table) (Detector, error) {
	switch table.Kind {
	case rules.Backward:
		return NewBackward(table), nil
	case rules.Forward:
		return NewForward(table), nil
	case rules.Pair:
		return NewPair(table), nil
	case rules.Sentence:
		return NewSentence(table), nil
	}
	return nil, fmt.Errorf("no detector for rule kind %v", table.Kind)
}

// base holds what every variant shares.
type base struct {
	table *rules.Table
	pos   position
	code  diag.Code
}

func newBase(table *rules.Table, code diag.Code) base {
	return base{table: table, pos: startPosition(), code: code}
}

func (b *base) Name() string             { return b.table.Kind.String() }
func (b *base) Kind() rules.Kind         { return b.table.Kind }
func (b *base) Table() *rules.Table      { return b.table }
func (b *base) Position() (row, col int) { return b.pos.Row, b.pos.Col }
func (b *base) sealed()                  {}

// emit builds a finding for rule i at the current position.
func (b *base) emit(i int, second string, at source.Span) diag.Diagnostic {
	r := b.table.Rules[i]
	return diag.New(b.code, b.pos.Row, b.pos.Col, at, diag.Mistake{
		Message:    b.table.Message(i, second),
		Confidence: r.Confidence,
	}, b.Name())
}

// lookup matches word-like tokens only.
func (b *base) lookup(tok token.Token) (int, bool) {
	if !tok.Kind.IsWordLike() {
		return -1, false
	}
	return b.table.Lookup(tok.Text)
}
