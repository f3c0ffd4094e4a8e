package detector

import (
	"vesszo/internal/token"
)

// position is the row/column cursor shared by every detector.
type position struct {
	Row int
	Col int
}

func startPosition() position {
	return position{Row: 1, Col: 1}
}

// advance steps over tok.
func (p *position) advance(tok token.Token) {
	if tok.IsLineBreak() {
		p.Row++
		p.Col = 1
		return
	}
	p.Col += tok.Width() + 1
}

// nextRow closes a ScanRow chunk.
func (p *position) nextRow() {
	p.Row++
	p.Col = 1
}
