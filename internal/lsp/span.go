package lsp

import (
	"sort"
	"unicode/utf8"

	"fortio.org/safecast"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"vesszo/internal/source"
)

const maxUint32 = ^uint32(0)

func safeUint32(n int) uint32 {
	if n < 0 {
		return 0
	}
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return maxUint32
	}
	return v
}

// clientText is the buffer exactly as the editor sent it. Detectors see the
// normalised copy; ranges go back through File.Origin and are measured here.
type clientText struct {
	text   string
	starts []int // byte offset of every line start
}

func newClientText(text string) *clientText {
	starts := []int{0}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			starts = append(starts, i+1)
		case '\r':
			// \r\n считается одним переводом строки
			if i+1 < len(text) && text[i+1] == '\n' {
				continue
			}
			starts = append(starts, i+1)
		}
	}
	return &clientText{text: text, starts: starts}
}

// position maps a byte offset to a 0-based line and UTF-16 column.
func (c *clientText) position(offset int) protocol.Position {
	offset = max(0, min(offset, len(c.text)))
	line := sort.Search(len(c.starts), func(i int) bool { return c.starts[i] > offset }) - 1
	var units int
	for off := c.starts[line]; off < offset; {
		r, size := utf8.DecodeRuneInString(c.text[off:offset])
		if off+size > offset {
			break
		}
		units += utf16Len(r)
		off += size
	}
	return protocol.Position{Line: safeUint32(line), Character: safeUint32(units)}
}

func utf16Len(r rune) int {
	if r > 0xFFFF {
		return 2
	}
	return 1
}

func (c *clientText) rangeFor(file *source.File, span source.Span) protocol.Range {
	if file == nil {
		return protocol.Range{}
	}
	return protocol.Range{
		Start: c.position(file.Origin.Raw(int(span.Start))),
		End:   c.position(file.Origin.Raw(int(span.End))),
	}
}
