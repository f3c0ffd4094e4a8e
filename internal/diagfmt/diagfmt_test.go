package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"vesszo/internal/diag"
	"vesszo/internal/source"
)

// fixture: "Azt hiszem hogy jön." on row 2 with a finding on "hogy" (bytes 22..26, col 12)
func fixture(t *testing.T) (*source.FileSet, []diag.Diagnostic) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("level.txt", []byte("Első sor.\nAzt hiszem hogy jön.\n"))
	d := diag.New(diag.CommaBefore, 2, 12, source.Span{File: id, Start: 22, End: 26},
		diag.Mistake{Message: `a(z) "hogy" szó elé általában vesszőt teszünk.`, Confidence: 0.7}, "naive")
	return fs, []diag.Diagnostic{d}
}

func TestPlainReferenceLine(t *testing.T) {
	fs, diags := fixture(t)
	var buf bytes.Buffer
	if err := Plain(&buf, diags, fs, PlainOpts{}); err != nil {
		t.Fatal(err)
	}
	want := "ln: 2, col: 12 potenciális vesszőhiba: a(z) \"hogy\" szó elé általában vesszőt teszünk.\n"
	if buf.String() != want {
		t.Fatalf("Plain = %q, want %q", buf.String(), want)
	}

	buf.Reset()
	if err := Plain(&buf, diags, fs, PlainOpts{WithPath: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "level.txt: ln: 2, col: 12 ") {
		t.Fatalf("Plain with path = %q", buf.String())
	}
}

func TestPlainLoadError(t *testing.T) {
	d := diag.NewError(diag.IOLoadFileError, "missing.txt", "failed to load file: nope")
	if got := PlainLine(d, nil, PlainOpts{}); got != "missing.txt: hiba: failed to load file: nope" {
		t.Fatalf("PlainLine = %q", got)
	}
}

func TestPrettyCaret(t *testing.T) {
	fs, diags := fixture(t)
	var buf bytes.Buffer
	if err := Pretty(&buf, diags, fs, PrettyOpts{Context: 1}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("want header, context, line and caret; got:\n%s", buf.String())
	}
	if !strings.HasPrefix(lines[0], "level.txt:2:12: INFO VSZ1001 (0.70): a(z)") {
		t.Fatalf("header = %q", lines[0])
	}
	if lines[1] != "1 | Első sor." || lines[2] != "2 | Azt hiszem hogy jön." {
		t.Fatalf("source lines = %q, %q", lines[1], lines[2])
	}
	if want := "  | " + strings.Repeat(" ", 11) + "^^^^"; lines[3] != want {
		t.Fatalf("caret line = %q", lines[3])
	}
}

func TestPrettyWideCharacters(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("wide.txt", []byte("漢字 hogy"))
	d := diag.New(diag.CommaBefore, 1, 4, source.Span{File: id, Start: 7, End: 11},
		diag.Mistake{Message: "m", Confidence: 1}, "naive")
	var buf bytes.Buffer
	if err := Pretty(&buf, []diag.Diagnostic{d}, fs, PrettyOpts{}); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	// два широких символа занимают четыре колонки
	if want := "  | " + strings.Repeat(" ", 5) + "^^^^"; lines[len(lines)-1] != want {
		t.Fatalf("caret line = %q", lines[len(lines)-1])
	}
}

func TestJSONOutput(t *testing.T) {
	fs, diags := fixture(t)
	diags = append(diags, diag.NewError(diag.IOLoadFileError, "gone.pdf", "failed"))
	var buf bytes.Buffer
	if err := JSON(&buf, diags, fs, JSONOpts{IncludePositions: true}); err != nil {
		t.Fatal(err)
	}
	var out DiagnosticsOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}
	if out.Count != 2 {
		t.Fatalf("count = %d", out.Count)
	}
	first := out.Diagnostics[0]
	if first.Code != "VSZ1001" || first.Row != 2 || first.Col != 12 || first.Detector != "naive" {
		t.Fatalf("first = %+v", first)
	}
	if first.Location.StartLine != 2 || first.Location.StartCol != 12 || first.Location.StartByte != 22 {
		t.Fatalf("location = %+v", first.Location)
	}
	if second := out.Diagnostics[1]; second.Location.File != "gone.pdf" || second.Row != 0 {
		t.Fatalf("second = %+v", second)
	}

	buf.Reset()
	if err := JSON(&buf, diags, fs, JSONOpts{Max: 1}); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil || out.Count != 1 {
		t.Fatalf("Max not applied: %v %d", err, out.Count)
	}
}

func TestSarifOutput(t *testing.T) {
	fs, diags := fixture(t)
	var buf bytes.Buffer
	if err := Sarif(&buf, diags, fs, SarifRunMeta{ToolVersion: "1.0.0"}); err != nil {
		t.Fatal(err)
	}
	var log struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name  string `json:"name"`
					Rules []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				RuleIndex int    `json:"ruleIndex"`
				Level     string `json:"level"`
				Locations []struct {
					PhysicalLocation struct {
						Region struct {
							StartLine   int `json:"startLine"`
							StartColumn int `json:"startColumn"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &log); err != nil {
		t.Fatalf("invalid SARIF: %v", err)
	}
	if log.Version != "2.1.0" || len(log.Runs) != 1 || log.Runs[0].Tool.Driver.Name != "vesszo" {
		t.Fatalf("unexpected log header %+v", log)
	}
	res := log.Runs[0].Results
	if len(res) != 1 || res[0].RuleID != "VSZ1001" || res[0].Level != "note" {
		t.Fatalf("results = %+v", res)
	}
	rules := log.Runs[0].Tool.Driver.Rules
	if rules[res[0].RuleIndex].ID != res[0].RuleID {
		t.Fatal("ruleIndex does not point at the rule")
	}
	if r := res[0].Locations[0].PhysicalLocation.Region; r.StartLine != 2 || r.StartColumn != 12 {
		t.Fatalf("region = %+v", r)
	}
}

func TestRenderDispatch(t *testing.T) {
	fs, diags := fixture(t)
	for _, f := range Formats() {
		var buf bytes.Buffer
		if err := Render(&buf, f, diags, fs, Options{}); err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if buf.Len() == 0 {
			t.Fatalf("%s produced no output", f)
		}
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Fatal("expected error for unknown format")
	}
	if f, err := ParseFormat(" JSON "); err != nil || f != FormatJSON {
		t.Fatalf("ParseFormat = %v, %v", f, err)
	}
}

func TestFormatPath(t *testing.T) {
	tests := []struct {
		path string
		mode PathMode
		base string
		want string
	}{
		{"docs/a.txt", PathModeAuto, "", "docs/a.txt"},
		{"/work/docs/a.txt", PathModeAuto, "/work", "docs/a.txt"},
		{"/elsewhere/a.txt", PathModeAuto, "/work", "/elsewhere/a.txt"},
		{"/work/docs/a.txt", PathModeBasename, "", "a.txt"},
		{"/work/docs/a.txt", PathModeRelative, "/work/docs", "a.txt"},
		{"-", PathModeAbsolute, "", "-"},
		{"embedded:naive", PathModeAbsolute, "", "embedded:naive"},
	}
	for _, tt := range tests {
		if got := formatPath(tt.path, tt.mode, tt.base); got != tt.want {
			t.Errorf("formatPath(%q, %v, %q) = %q, want %q", tt.path, tt.mode, tt.base, got, tt.want)
		}
	}
}
