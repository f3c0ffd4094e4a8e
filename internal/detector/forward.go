package detector

import (
	"vesszo/internal/diag"
	"vesszo/internal/rules"
	"vesszo/internal/token"
)

// Forward flags trigger words whose comma never arrives ("Szia Anna").
//
// At most one trigger is active. The next word or number while it is active
// is reported at that word's position. Comma, sentence end and line break
// clear the trigger; any other token replaces it with its own lookup result.
type Forward struct {
	base
	active int // rule index, -1 when idle
}

func NewForward(table *rules.Table) *Forward {
	return &Forward{base: newBase(table, diag.CommaAfter), active: -1}
}

func (d *Forward) Reset() {
	d.pos = startPosition()
	d.active = -1
}

func (d *Forward) Scan(tokens []token.Token) []diag.Diagnostic {
	d.Reset()
	return d.scan(tokens)
}

// ScanRow scans one row. The row end counts as a line break: the active
// trigger is dropped just as a LineBreak token drops it in Scan.
func (d *Forward) ScanRow(tokens []token.Token) []diag.Diagnostic {
	out := d.scan(tokens)
	d.active = -1
	d.pos.nextRow()
	return out
}

func (d *Forward) scan(tokens []token.Token) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, tok := range tokens {
		if tok.Kind == token.Skip {
			continue
		}
		if d.active >= 0 && tok.Kind.IsWordLike() {
			out = append(out, d.emit(d.active, "", tok.Span))
		}
		if tok.IsComma() || tok.IsSentenceEnd() || tok.IsLineBreak() {
			d.active = -1
		} else if i, ok := d.lookup(tok); ok {
			d.active = i
		} else {
			d.active = -1
		}
		d.pos.advance(tok)
	}
	return out
}
