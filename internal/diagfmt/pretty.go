package diagfmt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"fortio.org/safecast"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"vesszo/internal/diag"
	"vesszo/internal/source"
)

const tabWidth = 4

type prettyStyles struct {
	sev     map[diag.Severity]lipgloss.Style
	path    lipgloss.Style
	code    lipgloss.Style
	gutter  lipgloss.Style
	caret   lipgloss.Style
	enabled bool
}

func newPrettyStyles(w io.Writer, color bool) prettyStyles {
	if !color {
		return prettyStyles{}
	}
	r := lipgloss.NewRenderer(w)
	return prettyStyles{
		sev: map[diag.Severity]lipgloss.Style{
			diag.SevError:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
			diag.SevWarning: r.NewStyle().Bold(true).Foreground(lipgloss.Color("3")),
			diag.SevInfo:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("6")),
		},
		path:    r.NewStyle().Bold(true),
		code:    r.NewStyle().Faint(true),
		gutter:  r.NewStyle().Foreground(lipgloss.Color("4")),
		caret:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
		enabled: true,
	}
}

func (s prettyStyles) render(st lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return st.Render(text)
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой диагностики печатает:
//
//	<path>:<row>:<col>: <SEV> <CODE> (<conf>): <Message>
//
// затем строку исходника и подчёркивание ^^^ под словом, к которому относится находка.
func Pretty(w io.Writer, diags []diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) error {
	bw := bufio.NewWriter(w)
	st := newPrettyStyles(w, opts.Color)
	for i, d := range diags {
		if i > 0 {
			bw.WriteByte('\n')
		}
		writePrettyOne(bw, d, fs, opts, st)
	}
	return bw.Flush()
}

func writePrettyOne(w *bufio.Writer, d diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, st prettyStyles) {
	path := formatPath(d.PathIn(fs), opts.PathMode, opts.BaseDir)
	loc := path
	if d.Row > 0 {
		loc = fmt.Sprintf("%s:%d:%d", path, d.Row, d.Col)
	}
	sev := st.render(st.sev[d.Severity], d.Severity.String())
	fmt.Fprintf(w, "%s: %s %s", st.render(st.path, loc), sev, st.render(st.code, d.Code.ID()))
	if d.Severity < diag.SevError {
		fmt.Fprintf(w, " (%.2f)", d.Confidence)
	}
	fmt.Fprintf(w, ": %s\n", d.Message)

	if d.Row == 0 || fs == nil || int(d.Primary.File) >= fs.Len() {
		return
	}
	file := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)

	gutterWidth := len(strconv.Itoa(d.Row))
	for k := opts.Context; k > 0; k-- {
		lineNum := int(start.Line) - k
		if lineNum < 1 {
			continue
		}
		writeSourceLine(w, st, gutterWidth, d.Row-k, expandTabs(file.GetLine(lineNumber(lineNum))), opts.Width)
	}

	line := file.GetLine(start.Line)
	writeSourceLine(w, st, gutterWidth, d.Row, expandTabs(line), opts.Width)

	// позиция каретки считается по реальному тексту, а не по колонке детектора
	startCol := min(int(start.Col)-1, len(line))
	prefix := expandTabs(line[:startCol])
	rest := line[startCol:]
	length := min(int(d.Primary.Len()), len(rest))
	width := max(1, runewidth.StringWidth(rest[:length]))
	pad := runewidth.StringWidth(prefix)
	if opts.Width > 0 && pad >= opts.Width {
		return
	}
	fmt.Fprintf(w, "%s | %s%s\n",
		strings.Repeat(" ", gutterWidth),
		strings.Repeat(" ", pad),
		st.render(st.caret, strings.Repeat("^", width)))
}

func writeSourceLine(w io.Writer, st prettyStyles, gutterWidth, row int, text string, maxWidth int) {
	if maxWidth > 0 && runewidth.StringWidth(text) > maxWidth {
		text = runewidth.Truncate(text, maxWidth, "…")
	}
	gutter := fmt.Sprintf("%*d |", gutterWidth, row)
	fmt.Fprintf(w, "%s %s\n", st.render(st.gutter, gutter), text)
}

func lineNumber(n int) uint32 {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return 0
	}
	return v
}

func expandTabs(s string) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	return strings.ReplaceAll(s, "\t", strings.Repeat(" ", tabWidth))
}
