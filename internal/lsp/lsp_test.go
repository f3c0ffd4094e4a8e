package lsp

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"vesszo/internal/detector"
	"vesszo/internal/driver"
	"vesszo/internal/rules"
)

type published struct {
	mu    sync.Mutex
	calls []protocol.PublishDiagnosticsParams
}

func (p *published) notify(method string, params any) {
	if method != protocol.ServerTextDocumentPublishDiagnostics {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, params.(protocol.PublishDiagnosticsParams))
}

func (p *published) last(t *testing.T) protocol.PublishDiagnosticsParams {
	t.Helper()
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.calls) == 0 {
		t.Fatal("nothing published")
	}
	return p.calls[len(p.calls)-1]
}

func (p *published) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func newTestServer(t *testing.T, debounce time.Duration) (*Server, *published, *glsp.Context) {
	t.Helper()
	table := rules.NewTable(rules.Backward, "naive", true, []rules.Rule{{Word: "hogy", Confidence: 0.8}})
	set, err := detector.NewSet([]*rules.Table{table})
	if err != nil {
		t.Fatalf("NewSet: %v", err)
	}
	pub := &published{}
	srv := NewServer(set, ServerOptions{Debounce: debounce, Check: driver.DefaultOptions(), Version: "test"})
	return srv, pub, &glsp.Context{Notify: pub.notify}
}

const testURI = "file:///tmp/level.txt"

func open(t *testing.T, srv *Server, ctx *glsp.Context, text string) {
	t.Helper()
	err := srv.didOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: testURI, LanguageID: "plaintext", Version: 1, Text: text},
	})
	if err != nil {
		t.Fatalf("didOpen: %v", err)
	}
}

func TestDidOpenPublishesUTF16Ranges(t *testing.T) {
	srv, pub, ctx := newTestServer(t, 0)
	open(t, srv, ctx, "Értem hogy jön.")

	got := pub.last(t)
	if got.URI != testURI {
		t.Fatalf("uri = %q", got.URI)
	}
	if got.Version == nil || *got.Version != 1 {
		t.Fatalf("version = %v, want 1", got.Version)
	}
	if len(got.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(got.Diagnostics))
	}
	d := got.Diagnostics[0]
	want := protocol.Range{
		Start: protocol.Position{Line: 0, Character: 6},
		End:   protocol.Position{Line: 0, Character: 10},
	}
	if d.Range != want {
		t.Errorf("range = %+v, want %+v", d.Range, want)
	}
	if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityWarning {
		t.Errorf("severity = %v, want warning", d.Severity)
	}
	if d.Code == nil || d.Code.Value != "VSZ1001" {
		t.Errorf("code = %+v", d.Code)
	}
	if d.Source == nil || *d.Source != "vesszo" {
		t.Errorf("source = %v", d.Source)
	}
}

func TestDidChangeRechecksWholeText(t *testing.T) {
	srv, pub, ctx := newTestServer(t, 0)
	open(t, srv, ctx, "Értem hogy jön.")

	err := srv.didChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "Értem, hogy jön."}},
	})
	if err != nil {
		t.Fatalf("didChange: %v", err)
	}
	got := pub.last(t)
	if len(got.Diagnostics) != 0 {
		t.Fatalf("expected no diagnostics after fix, got %d", len(got.Diagnostics))
	}
	if got.Version == nil || *got.Version != 2 {
		t.Fatalf("version = %v, want 2", got.Version)
	}
}

func TestDidChangeDebounced(t *testing.T) {
	srv, pub, ctx := newTestServer(t, 20*time.Millisecond)
	open(t, srv, ctx, "Értem, hogy jön.")
	before := pub.count()

	for v := protocol.Integer(2); v <= 4; v++ {
		_ = srv.didChange(ctx, &protocol.DidChangeTextDocumentParams{
			TextDocument: protocol.VersionedTextDocumentIdentifier{
				TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: testURI},
				Version:                v,
			},
			ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "Értem hogy jön."}},
		})
	}
	if pub.count() != before {
		t.Fatal("change published before the debounce delay")
	}
	deadline := time.Now().Add(2 * time.Second)
	for pub.count() == before && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	got := pub.last(t)
	if got.Version == nil || *got.Version != 4 {
		t.Fatalf("version = %v, want 4", got.Version)
	}
	if len(got.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(got.Diagnostics))
	}
}

func TestDidCloseClearsDiagnostics(t *testing.T) {
	srv, pub, ctx := newTestServer(t, 0)
	open(t, srv, ctx, "Értem hogy jön.")
	if err := srv.didClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
	}); err != nil {
		t.Fatalf("didClose: %v", err)
	}
	got := pub.last(t)
	if got.Diagnostics == nil || len(got.Diagnostics) != 0 {
		t.Fatalf("close should publish an empty list, got %+v", got.Diagnostics)
	}
	if srv.current(testURI, 1) {
		t.Fatal("document still tracked after close")
	}
}

func TestDidSaveUsesIncludedText(t *testing.T) {
	srv, pub, ctx := newTestServer(t, 0)
	open(t, srv, ctx, "Értem, hogy jön.")
	text := "Tudom hogy jön.\nLátom hogy megy."
	if err := srv.didSave(ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: testURI},
		Text:         &text,
	}); err != nil {
		t.Fatalf("didSave: %v", err)
	}
	got := pub.last(t)
	if len(got.Diagnostics) != 2 {
		t.Fatalf("got %d diagnostics, want 2", len(got.Diagnostics))
	}
	if line := got.Diagnostics[1].Range.Start.Line; line != 1 {
		t.Errorf("second finding on line %d, want 1", line)
	}
}

func TestClientPositionSurrogates(t *testing.T) {
	client := newClientText("a🙂b\r\nc\rd")
	tests := []struct {
		off  int
		want protocol.Position
	}{
		{0, protocol.Position{Line: 0, Character: 0}},
		{1, protocol.Position{Line: 0, Character: 1}},
		{5, protocol.Position{Line: 0, Character: 3}},
		{8, protocol.Position{Line: 1, Character: 0}},
		{10, protocol.Position{Line: 2, Character: 0}},
		{100, protocol.Position{Line: 2, Character: 1}},
	}
	for _, tt := range tests {
		if got := client.position(tt.off); got != tt.want {
			t.Errorf("offset %d: got %+v, want %+v", tt.off, got, tt.want)
		}
	}
}

func TestRangesFollowClientText(t *testing.T) {
	tests := []struct {
		name string
		text string
		want protocol.Range
	}{
		{
			name: "decomposed",
			text: "Azt ke\u0301rdem hogy jön.",
			want: protocol.Range{Start: protocol.Position{Line: 0, Character: 12}, End: protocol.Position{Line: 0, Character: 16}},
		},
		{
			name: "bom",
			text: "\uFEFFTudom hogy jön.",
			want: protocol.Range{Start: protocol.Position{Line: 0, Character: 7}, End: protocol.Position{Line: 0, Character: 11}},
		},
		{
			name: "crlf",
			text: "Tudom.\r\nÉrte\u0301k hogy jön.",
			want: protocol.Range{Start: protocol.Position{Line: 1, Character: 7}, End: protocol.Position{Line: 1, Character: 11}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, pub, ctx := newTestServer(t, 0)
			open(t, srv, ctx, tt.text)
			got := pub.last(t)
			if len(got.Diagnostics) != 1 {
				t.Fatalf("got %d diagnostics, want 1", len(got.Diagnostics))
			}
			if r := got.Diagnostics[0].Range; r != tt.want {
				t.Errorf("range = %+v, want %+v", r, tt.want)
			}
		})
	}
}

func TestURIToPath(t *testing.T) {
	tests := []struct {
		uri, want string
	}{
		{"file:///tmp/a%20b.txt", filepath.FromSlash("/tmp/a b.txt")},
		{"/tmp/x.md", filepath.FromSlash("/tmp/x.md")},
		{"untitled:Untitled-1", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := uriToPath(tt.uri); got != tt.want {
			t.Errorf("uriToPath(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}
