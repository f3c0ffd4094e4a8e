package lexer

import (
	"unicode"

	"vesszo/internal/source"
	"vesszo/internal/token"
)

type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next возвращает следующий токен. После EOF всегда возвращает EOF.
func (lx *Lexer) Next() token.Token {
	for {
		if lx.cursor.EOF() {
			return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
		}
		tok := lx.scan()
		if tok.Kind == token.Skip && !lx.opts.KeepSkipped {
			continue
		}
		return tok
	}
}

func (lx *Lexer) scan() token.Token {
	ch := lx.cursor.Peek()
	switch {
	case isDec(ch):
		return lx.scanNumber()
	case ch == '.', ch == '?', ch == '!':
		return lx.scanSingle(token.SentenceEnd)
	case ch == ',', ch == ';':
		return lx.scanSingle(token.Comma)
	case ch == '\n':
		return lx.scanSingle(token.LineBreak)
	}

	r, _ := lx.peekRune()
	switch {
	case isBracket(r):
		return lx.scanBrackets()
	case unicode.IsLetter(r):
		return lx.scanWord()
	default:
		return lx.scanSkipped()
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// All lexes the whole file. The EOF token is not included.
func All(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	out := make([]token.Token, 0, len(file.Content)/4+1)
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return out
		}
		out = append(out, tok)
	}
}
