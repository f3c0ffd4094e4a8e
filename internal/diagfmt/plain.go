package diagfmt

import (
	"bufio"
	"fmt"
	"io"

	"vesszo/internal/diag"
	"vesszo/internal/source"
)

// PlainPrefix starts the message part of every finding line.
const PlainPrefix = "potenciális vesszőhiba:"

// Plain writes one line per diagnostic in the classic form
//
//	ln: <row>, col: <col> potenciális vesszőhiba: <message>
//
// Errors without a position (unreadable documents) are written as
// "<path>: hiba: <message>".
func Plain(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PlainOpts) error {
	bw := bufio.NewWriter(w)
	for _, d := range diags {
		writePlain(bw, d, fs, opts)
	}
	return bw.Flush()
}

// PlainLine formats a single diagnostic without the trailing newline.
func PlainLine(d diag.Diagnostic, fs *source.FileSet, opts PlainOpts) string {
	path := formatPath(d.PathIn(fs), opts.PathMode, opts.BaseDir)
	if d.Row == 0 {
		return fmt.Sprintf("%s: hiba: %s", path, d.Message)
	}
	line := fmt.Sprintf("ln: %d, col: %d %s %s", d.Row, d.Col, PlainPrefix, d.Message)
	if opts.WithPath {
		line = path + ": " + line
	}
	return line
}

func writePlain(w io.Writer, d diag.Diagnostic, fs *source.FileSet, opts PlainOpts) {
	fmt.Fprintln(w, PlainLine(d, fs, opts))
}
