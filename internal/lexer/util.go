package lexer

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
)

// peekRune decodes the rune under the cursor.
func (lx *Lexer) peekRune() (r rune, size int) {
	if lx.cursor.EOF() {
		return utf8.RuneError, 0
	}
	b := lx.cursor.Peek()
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
}

func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	if sz == 0 {
		return
	}
	usz, err := safecast.Conv[uint32](sz)
	if err != nil {
		panic(fmt.Errorf("bumpRune overflow: %w", err))
	}
	lx.cursor.Off += usz
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isSentenceEnd(r rune) bool { return r == '.' || r == '?' || r == '!' }

func isCommaLike(r rune) bool { return r == ',' || r == ';' }

func isBracket(r rune) bool {
	switch r {
	case '(', ')', '[', ']', '{', '}':
		return true
	}
	return false
}

// discarded reports whether r starts no token of its own.
func discarded(r rune) bool {
	switch {
	case r == '\n', r < utf8.RuneSelf && isDec(byte(r)):
		return false
	case isSentenceEnd(r), isCommaLike(r), isBracket(r), unicode.IsLetter(r):
		return false
	}
	return true
}
