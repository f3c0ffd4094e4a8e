package trace

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// openDocs holds the document spans that have begun but not ended,
// span id -> document path. Only real spans are tracked, so the list is
// filled from LevelDetail up.
var openDocs sync.Map

func trackOpen(s *Span) {
	if s.scope == ScopeDocument {
		openDocs.Store(s.id, s.name)
	}
}

func trackClosed(s *Span) {
	if s.scope == ScopeDocument {
		openDocs.Delete(s.id)
	}
}

// OpenDocuments returns the paths of documents still being checked, sorted.
func OpenDocuments() []string {
	var out []string
	openDocs.Range(func(_, v any) bool {
		out = append(out, v.(string))
		return true
	})
	slices.Sort(out)
	return out
}

// Heartbeat emits a liveness event every interval naming the documents
// still open. A PDF stuck in extraction or a runaway detector shows up as
// the same name in consecutive heartbeats.
type Heartbeat struct {
	tracer   Tracer
	interval time.Duration
	stop     chan struct{}
	once     sync.Once
	wg       sync.WaitGroup
}

// StartHeartbeat starts the heartbeat goroutine. It returns nil when tracing
// is off or interval is not positive; Stop on nil is a no-op.
func StartHeartbeat(tracer Tracer, interval time.Duration) *Heartbeat {
	if tracer == nil || !tracer.Enabled() || interval <= 0 {
		return nil
	}
	h := &Heartbeat{tracer: tracer, interval: interval, stop: make(chan struct{})}
	h.wg.Add(1)
	go h.run()
	return h
}

func (h *Heartbeat) run() {
	defer h.wg.Done()
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for beat := 1; ; beat++ {
		select {
		case <-ticker.C:
			h.tracer.Emit(&Event{
				Time:   time.Now(),
				Seq:    NextSeq(),
				Kind:   KindHeartbeat,
				Scope:  ScopeDriver,
				GID:    getGoroutineID(),
				Name:   "heartbeat",
				Detail: heartbeatDetail(beat, OpenDocuments()),
			})
		case <-h.stop:
			return
		}
	}
}

func heartbeatDetail(beat int, open []string) string {
	if len(open) == 0 {
		return fmt.Sprintf("#%d idle", beat)
	}
	return fmt.Sprintf("#%d open: %s", beat, strings.Join(open, ", "))
}

// Stop ends the heartbeat and waits for the goroutine. Safe to call twice.
func (h *Heartbeat) Stop() {
	if h == nil {
		return
	}
	h.once.Do(func() { close(h.stop) })
	h.wg.Wait()
}
