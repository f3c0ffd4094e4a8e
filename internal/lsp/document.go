package lsp

import (
	"context"
	"time"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"vesszo/internal/driver"
)

type document struct {
	version protocol.Integer
	text    string
	timer   *time.Timer
}

func (d *document) stopTimer() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// current reports whether uri is still open at version.
func (s *Server) current(uri string, version protocol.Integer) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[uri]
	return ok && doc.version == version
}

// publish checks text and sends the findings unless the document moved on
// to a newer version in the meantime.
func (s *Server) publish(notify glsp.NotifyFunc, uri string, version protocol.Integer, text string) {
	name := uriToPath(uri)
	if name == "" {
		name = uri
	}
	fs, res := driver.CheckText(context.Background(), name, []byte(text), s.set.Fresh(), s.opts.Check)
	if !s.current(uri, version) {
		s.log.Debugf("dropping stale diagnostics for %s (version %d)", uri, version)
		return
	}
	diags := toProtocol(fs, text, res.Diagnostics())
	s.log.Debugf("%s: %d findings", name, len(diags))

	params := protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diags,
	}
	if version >= 0 {
		v := protocol.UInteger(version)
		params.Version = &v
	}
	notify(protocol.ServerTextDocumentPublishDiagnostics, params)
}
