package testkit

import (
	"fmt"
	"unicode/utf8"

	"fortio.org/safecast"

	"vesszo/internal/diag"
	"vesszo/internal/lexer"
	"vesszo/internal/source"
	"vesszo/internal/token"
)

// CheckTokenInvariants verifies a lexed token slice against its file:
// 1) every span lies inside the content and is non-empty
// 2) Text equals the bytes under Span
// 3) spans are strictly increasing and do not overlap
// 4) no EOF token is materialised
func CheckTokenInvariants(file *source.File, tokens []token.Token) error {
	if file == nil {
		return fmt.Errorf("nil file")
	}
	lenContent, err := safecast.Conv[uint32](len(file.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var prevEnd uint32
	for i, tok := range tokens {
		sp := tok.Span
		switch {
		case tok.Kind == token.EOF:
			return fmt.Errorf("token %d: EOF in materialised slice", i)
		case sp.File != file.ID:
			return fmt.Errorf("token %d: span file %d, want %d", i, sp.File, file.ID)
		case sp.Empty():
			return fmt.Errorf("token %d: empty span %v", i, sp)
		case sp.End > lenContent:
			return fmt.Errorf("token %d: span %v beyond content (%d bytes)", i, sp, lenContent)
		case sp.Start < prevEnd:
			return fmt.Errorf("token %d: span %v overlaps previous token ending at %d", i, sp, prevEnd)
		}
		if got := string(file.Content[sp.Start:sp.End]); got != tok.Text {
			return fmt.Errorf("token %d: text %q, content under span %q", i, tok.Text, got)
		}
		prevEnd = sp.End
	}
	return nil
}

// CheckPositions verifies that detector findings from a whole-document scan
// sit where the row/column tracker says they should:
// 1) Row equals the line of the primary token (rows reset on every line break)
// 2) Col equals the tracked column of that token, recomputed from scratch
// 3) Col never exceeds the tracked length of the line: its code points plus
// one implied separator per token
func CheckPositions(fs *source.FileSet, diags []diag.Diagnostic) error {
	cache := make(map[source.FileID][]token.Token)
	for i, d := range diags {
		if d.Detector == "" {
			continue
		}
		file := fs.Get(d.Primary.File)
		toks, ok := cache[file.ID]
		if !ok {
			toks = lexer.All(file, lexer.Options{})
			cache[file.ID] = toks
		}
		start, _ := fs.Resolve(d.Primary)
		if d.Row != int(start.Line) {
			return fmt.Errorf("diagnostic %d: row %d, primary token is on line %d", i, d.Row, start.Line)
		}
		col, onLine := trackedColumn(toks, d.Primary.Start)
		if d.Col != col {
			return fmt.Errorf("diagnostic %d: col %d, tracked column of the primary token is %d", i, d.Col, col)
		}
		line := file.GetLine(start.Line)
		if limit := utf8.RuneCountInString(line) + onLine; d.Col < 1 || d.Col > limit {
			return fmt.Errorf("diagnostic %d: col %d outside line %d (limit %d)", i, d.Col, start.Line, limit)
		}
	}
	return nil
}

// trackedColumn replays the tracker over the tokens of the line containing
// off and returns the column at off plus the number of tokens on that line.
func trackedColumn(toks []token.Token, off uint32) (col, onLine int) {
	col = 1
	found := false
	for _, tok := range toks {
		if tok.Kind == token.LineBreak {
			if tok.Span.Start >= off {
				break
			}
			col, onLine = 1, 0
			continue
		}
		onLine++
		if tok.Span.Start == off {
			found = true
		}
		if !found {
			col += utf8.RuneCountInString(tok.Text) + 1
		}
	}
	return col, onLine
}
