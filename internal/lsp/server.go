package lsp

import (
	"sync"
	"time"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	// simple backend пишет в stderr, stdout занят протоколом
	_ "github.com/tliron/commonlog/simple"

	"vesszo/internal/detector"
	"vesszo/internal/driver"
)

const serverName = "vesszo"

// ServerOptions configures LSP server behavior.
type ServerOptions struct {
	// Debounce delays re-checking after didChange; 0 checks synchronously.
	Debounce time.Duration
	Check    driver.Options
	Version  string
}

// Server publishes comma diagnostics for open documents over LSP 3.16.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	log     commonlog.Logger

	set  detector.Set
	opts ServerOptions

	mu       sync.Mutex
	docs     map[string]*document
	shutdown bool
}

// NewServer constructs a server checking documents with set.
// set is only used as a template; every check runs on Set.Fresh detectors.
func NewServer(set detector.Set, opts ServerOptions) *Server {
	s := &Server{
		log:  commonlog.GetLogger("vesszo.lsp"),
		set:  set,
		opts: opts,
		docs: make(map[string]*document),
	}
	s.handler = protocol.Handler{
		Initialize:            s.initialize,
		Initialized:           s.initialized,
		Shutdown:              s.shutdownHandler,
		SetTrace:              s.setTrace,
		TextDocumentDidOpen:   s.didOpen,
		TextDocumentDidChange: s.didChange,
		TextDocumentDidClose:  s.didClose,
		TextDocumentDidSave:   s.didSave,
	}
	s.server = server.NewServer(&s.handler, serverName, false)
	return s
}

// RunStdio serves a single client over stdin/stdout until it exits.
func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

func (s *Server) initialize(_ *glsp.Context, params *protocol.InitializeParams) (any, error) {
	if params.ClientInfo != nil {
		s.log.Infof("client %s connected", params.ClientInfo.Name)
	}
	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}
	version := s.opts.Version
	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &version,
		},
	}, nil
}

func (s *Server) initialized(_ *glsp.Context, _ *protocol.InitializedParams) error {
	s.log.Infof("ready, detectors: %v", s.set.Names())
	return nil
}

func (s *Server) shutdownHandler(_ *glsp.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shutdown = true
	for _, doc := range s.docs {
		doc.stopTimer()
	}
	return nil
}

func (s *Server) setTrace(_ *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) didOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	item := params.TextDocument
	s.mu.Lock()
	s.docs[item.URI] = &document{version: item.Version, text: item.Text}
	s.mu.Unlock()
	s.publish(ctx.Notify, item.URI, item.Version, item.Text)
	return nil
}

func (s *Server) didChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change, ok := params.ContentChanges[len(params.ContentChanges)-1].(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		s.log.Warningf("ignoring incremental change for %s", params.TextDocument.URI)
		return nil
	}
	uri, version := params.TextDocument.URI, params.TextDocument.Version

	s.mu.Lock()
	doc := s.docs[uri]
	if doc == nil {
		doc = &document{}
		s.docs[uri] = doc
	}
	doc.version, doc.text = version, change.Text
	doc.stopTimer()
	if s.opts.Debounce > 0 && !s.shutdown {
		notify := ctx.Notify
		doc.timer = time.AfterFunc(s.opts.Debounce, func() {
			s.publish(notify, uri, version, change.Text)
		})
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()
	s.publish(ctx.Notify, uri, version, change.Text)
	return nil
}

func (s *Server) didSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	doc := s.docs[uri]
	if doc == nil {
		s.mu.Unlock()
		return nil
	}
	if params.Text != nil {
		doc.text = *params.Text
	}
	doc.stopTimer()
	version, text := doc.version, doc.text
	s.mu.Unlock()
	s.publish(ctx.Notify, uri, version, text)
	return nil
}

func (s *Server) didClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	s.mu.Lock()
	if doc := s.docs[uri]; doc != nil {
		doc.stopTimer()
	}
	delete(s.docs, uri)
	s.mu.Unlock()
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: []protocol.Diagnostic{},
	})
	return nil
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
