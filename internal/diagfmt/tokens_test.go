package diagfmt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"vesszo/internal/lexer"
	"vesszo/internal/source"
)

func TestFormatTokens(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("t.txt", []byte("Szia,\nAnna")))
	tokens := lexer.All(file, lexer.Options{})

	var buf bytes.Buffer
	if err := FormatTokensPretty(&buf, tokens, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 || !strings.Contains(lines[3], `"Anna" at 2:1-2:5`) {
		t.Fatalf("pretty tokens:\n%s", buf.String())
	}

	buf.Reset()
	if err := FormatTokensJSON(&buf, tokens, fs); err != nil {
		t.Fatal(err)
	}
	var out []TokenOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(out) != 4 || out[1].Text != "," || out[3].Line != 2 {
		t.Fatalf("json tokens = %+v", out)
	}
}
