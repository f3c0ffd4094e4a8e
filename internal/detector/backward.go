package detector

import (
	"vesszo/internal/diag"
	"vesszo/internal/rules"
	"vesszo/internal/token"
)

// Backward flags trigger words not preceded by a comma ("Azt hiszem hogy").
//
// A line break keeps both flags, so a comma at the end of the previous line
// still counts. A sentence end clears them. Of two adjacent triggers only the
// first is flagged.
type Backward struct {
	base
	prevComma   bool
	prevTrigger bool
}

func NewBackward(table *rules.Table) *Backward {
	return &Backward{base: newBase(table, diag.CommaBefore)}
}

func (d *Backward) Reset() {
	d.pos = startPosition()
	d.prevComma, d.prevTrigger = false, false
}

func (d *Backward) Scan(tokens []token.Token) []diag.Diagnostic {
	d.Reset()
	return d.scan(tokens)
}

func (d *Backward) ScanRow(tokens []token.Token) []diag.Diagnostic {
	out := d.scan(tokens)
	d.pos.nextRow()
	return out
}

func (d *Backward) scan(tokens []token.Token) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, tok := range tokens {
		switch tok.Kind {
		case token.Skip:
			continue
		case token.LineBreak:
			d.pos.advance(tok)
			continue
		case token.SentenceEnd:
			d.prevComma, d.prevTrigger = false, false
			d.pos.advance(tok)
			continue
		}

		i, found := d.lookup(tok)
		if found && !d.prevComma && !d.prevTrigger {
			out = append(out, d.emit(i, "", tok.Span))
		}
		d.prevComma = tok.IsComma()
		d.prevTrigger = found
		d.pos.advance(tok)
	}
	return out
}
