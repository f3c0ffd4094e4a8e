package source

import (
	"bytes"
	"path/filepath"
	"sort"

	"golang.org/x/text/unicode/norm"
)

var (
	utf8BOM = []byte{0xEF, 0xBB, 0xBF}
	crlf    = []byte("\r\n")
)

// normalizeText strips a leading BOM, folds CRLF into LF and composes the
// text into NFC so that "a" + U+0301 becomes one letter. The returned map
// leads offsets of the result back to raw; it is nil when nothing changed.
func normalizeText(raw []byte) ([]byte, FileFlags, *OffsetMap) {
	hasBOM := bytes.HasPrefix(raw, utf8BOM)
	if !hasBOM && !bytes.Contains(raw, crlf) && norm.NFC.IsNormal(raw) {
		return raw, 0, nil
	}
	var (
		flags FileFlags
		m     OffsetMap
		p     int
	)
	out := make([]byte, 0, len(raw))
	if hasBOM {
		flags |= FileHadBOM
		m.add(0, 0, 0, len(utf8BOM))
		p = len(utf8BOM)
	}
	for p < len(raw) {
		if raw[p] == '\r' && p+1 < len(raw) && raw[p+1] == '\n' {
			flags |= FileNormalizedCRLF
			m.add(len(out), p, 1, 2)
			out = append(out, '\n')
			p += 2
			continue
		}
		// сегменты NFC независимы: нормализуем по одному
		n := norm.NFC.NextBoundary(raw[p:], true)
		if n <= 0 {
			n = len(raw) - p
		}
		seg := raw[p : p+n]
		composed := norm.NFC.Bytes(seg)
		if !bytes.Equal(composed, seg) {
			flags |= FileNormalizedNFC
			m.add(len(out), p, len(composed), n)
		}
		out = append(out, composed...)
		p += n
	}
	if len(m.pieces) == 0 {
		return out, flags, nil
	}
	return out, flags, &m
}

// OffsetMap leads byte offsets of normalised content back to the raw input.
type OffsetMap struct {
	pieces []rewrite // ascending by norm
}

// rewrite is one replaced run: raw[raw:raw+rawLen] became
// content[norm:norm+normLen].
type rewrite struct {
	norm, normLen int
	raw, rawLen   int
}

func (m *OffsetMap) add(normOff, rawOff, normLen, rawLen int) {
	m.pieces = append(m.pieces, rewrite{norm: normOff, normLen: normLen, raw: rawOff, rawLen: rawLen})
}

// Raw returns the raw offset of off. Offsets inside a rewritten run are
// clamped to it. A nil map is the identity.
func (m *OffsetMap) Raw(off int) int {
	if m == nil {
		return off
	}
	i := sort.Search(len(m.pieces), func(i int) bool { return m.pieces[i].norm > off }) - 1
	if i < 0 {
		return off
	}
	pc := m.pieces[i]
	if d := off - pc.norm; d < pc.normLen {
		return pc.raw + min(d, pc.rawLen)
	}
	return pc.raw + pc.rawLen + (off - pc.norm - pc.normLen)
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) // #nosec G115 -- длина проверена в Add
		}
	}
	return out
}

// toLineCol maps a byte offset to a 1-based line and byte column.
// A '\n' belongs to the line it terminates.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// количество переводов строки строго до off
	line := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= off })
	var start uint32
	if line > 0 {
		start = lineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line + 1), Col: off - start + 1} // #nosec G115
}

func normalizePath(p string) string {
	if p == "" || p == "-" {
		return p
	}
	return filepath.ToSlash(filepath.Clean(p))
}
