package detector

import (
	"vesszo/internal/diag"
	"vesszo/internal/rules"
	"vesszo/internal/token"
)

// Pair flags "first … second" word pairs with no comma in between, at any
// distance inside one sentence ("Ha kimész akkor hozz egy hamburgert").
//
// Each rule has its own armed flag, so several pairs can be open at once.
// A matching follower is reported at its own position and disarms the rule
// before the same token may arm rules again. Comma and sentence end disarm
// every rule; a line break does not.
type Pair struct {
	base
	armed []bool
}

func NewPair(table *rules.Table) *Pair {
	return &Pair{base: newBase(table, diag.CommaBetween), armed: make([]bool, table.Len())}
}

func (d *Pair) Reset() {
	d.pos = startPosition()
	clear(d.armed)
}

func (d *Pair) Scan(tokens []token.Token) []diag.Diagnostic {
	d.Reset()
	return d.scan(tokens)
}

func (d *Pair) ScanRow(tokens []token.Token) []diag.Diagnostic {
	out := d.scan(tokens)
	d.pos.nextRow()
	return out
}

func (d *Pair) scan(tokens []token.Token) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, tok := range tokens {
		switch tok.Kind {
		case token.Skip:
			continue
		case token.Comma, token.SentenceEnd:
			clear(d.armed)
		case token.Word, token.Number:
			folded := d.table.Fold(tok.Text)
			for i, on := range d.armed {
				if !on {
					continue
				}
				if second, ok := d.table.FollowsFolded(i, folded); ok {
					out = append(out, d.emit(i, second, tok.Span))
					d.armed[i] = false
				}
			}
			if i, ok := d.table.LookupFolded(folded); ok {
				d.armed[i] = true
			}
		}
		d.pos.advance(tok)
	}
	return out
}
