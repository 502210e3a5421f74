package app

import (
	"log/slog"
	"sync"

	"github.com/codescout/codescout/internal/domain/index"
	"github.com/codescout/codescout/internal/ports"
)

// Session memoizes the engine's symbol index across queries. Any filesystem
// event under the project root drops the cached index, so the next query
// rebuilds and a changed file is always visible — staleness is never
// silently returned. Without a Session the engine rebuilds on every call,
// which is the default behavior.
type Session struct {
	engine  *Engine
	watcher ports.Watcher

	mu sync.Mutex
	ix *index.Index
}

// NewSession installs an index cache on engine and starts watching its
// root. Close the session to stop the watcher and restore per-call
// rebuilds.
func NewSession(engine *Engine, watcher ports.Watcher) (*Session, error) {
	s := &Session{engine: engine, watcher: watcher}
	if err := watcher.Watch(engine.Root(), s.invalidate); err != nil {
		return nil, err
	}
	engine.cache = s
	return s, nil
}

// Close stops the watcher and detaches the cache.
func (s *Session) Close() error {
	s.engine.cache = nil
	return s.watcher.Stop()
}

func (s *Session) invalidate(filePath string) {
	s.mu.Lock()
	stale := s.ix != nil
	s.ix = nil
	s.mu.Unlock()
	if stale {
		slog.Debug("session index invalidated", "file", filePath)
	}
}

func (s *Session) get() *index.Index {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ix
}

func (s *Session) put(ix *index.Index) {
	s.mu.Lock()
	s.ix = ix
	s.mu.Unlock()
}
