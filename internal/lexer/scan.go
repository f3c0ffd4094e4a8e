package lexer

import (
	"unicode"

	"vesszo/internal/token"
)

func (lx *Lexer) emit(kind token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{
		Kind: kind,
		Span: sp,
		Text: string(lx.file.Content[sp.Start:sp.End]),
	}
}

// scanNumber reads [0-9]+(,[0-9]+)?. A comma not followed by a digit is
// left for the next token, so "3,x" is Number Comma Word.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
	m := lx.cursor.Mark()
	if lx.cursor.Eat(',') {
		if !isDec(lx.cursor.Peek()) {
			lx.cursor.Reset(m)
		}
		for isDec(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
	}
	return lx.emit(token.Number, start)
}

// scanWord reads a maximal run of Unicode letters.
func (lx *Lexer) scanWord() token.Token {
	start := lx.cursor.Mark()
	for {
		r, sz := lx.peekRune()
		if sz == 0 || !unicode.IsLetter(r) {
			break
		}
		lx.bumpRune()
	}
	return lx.emit(token.Word, start)
}

func (lx *Lexer) scanBrackets() token.Token {
	start := lx.cursor.Mark()
	for {
		r, sz := lx.peekRune()
		if sz == 0 || !isBracket(r) {
			break
		}
		lx.bumpRune()
	}
	return lx.emit(token.Bracket, start)
}

// scanSkipped consumes whitespace and unclassified characters up to the next
// token start. '\n' is never part of a skipped run.
func (lx *Lexer) scanSkipped() token.Token {
	start := lx.cursor.Mark()
	for {
		r, sz := lx.peekRune()
		if sz == 0 || !discarded(r) {
			break
		}
		lx.bumpRune()
	}
	return lx.emit(token.Skip, start)
}

func (lx *Lexer) scanSingle(kind token.Kind) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	return lx.emit(kind, start)
}
