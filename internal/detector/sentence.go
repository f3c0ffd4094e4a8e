package detector

import (
	"vesszo/internal/diag"
	"vesszo/internal/rules"
	"vesszo/internal/token"
)

// Sentence flags sentences that contain a trigger word but no comma at all.
//
// The finding is placed at the sentence-ending token, not at the trigger.
// The comma flag survives line breaks until the sentence ends; a trailing
// sentence without terminal punctuation is never reported.
type Sentence struct {
	base
	seen  []bool
	comma bool
}

func NewSentence(table *rules.Table) *Sentence {
	return &Sentence{base: newBase(table, diag.CommaInSentence), seen: make([]bool, table.Len())}
}

func (d *Sentence) Reset() {
	d.pos = startPosition()
	clear(d.seen)
	d.comma = false
}

func (d *Sentence) Scan(tokens []token.Token) []diag.Diagnostic {
	d.Reset()
	return d.scan(tokens)
}

func (d *Sentence) ScanRow(tokens []token.Token) []diag.Diagnostic {
	out := d.scan(tokens)
	d.pos.nextRow()
	return out
}

func (d *Sentence) scan(tokens []token.Token) []diag.Diagnostic {
	var out []diag.Diagnostic
	for _, tok := range tokens {
		switch tok.Kind {
		case token.Skip:
			continue
		case token.SentenceEnd:
			if !d.comma {
				for i, on := range d.seen {
					if on {
						out = append(out, d.emit(i, "", tok.Span))
					}
				}
			}
			clear(d.seen)
			d.comma = false
		case token.Comma:
			d.comma = true
		default:
			if i, ok := d.lookup(tok); ok {
				d.seen[i] = true
			}
		}
		d.pos.advance(tok)
	}
	return out
}
