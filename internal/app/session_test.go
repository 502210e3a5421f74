package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescout/codescout/internal/adapters/fsnotify"
	"github.com/codescout/codescout/internal/adapters/treesitter"
)

func TestSession_CachesAndInvalidates(t *testing.T) {
	dir := writeProject(t, map[string]string{"m.py": "class Before:\n    pass\n"})
	engine, err := NewEngine(dir, treesitter.NewParser(), DefaultOptions())
	require.NoError(t, err)

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)

	session, err := NewSession(engine, watcher)
	require.NoError(t, err)
	defer session.Close()

	_, ok := mustQueryDef(t, engine, "Before")
	require.True(t, ok)
	assert.NotNil(t, session.get(), "index cached after first query")

	// A file change drops the cache; the next query sees the new content.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "m.py"), []byte("class After:\n    pass\n"), 0644))

	require.Eventually(t, func() bool {
		return session.get() == nil
	}, 2*time.Second, 20*time.Millisecond, "cache invalidated on file change")

	_, ok = mustQueryDef(t, engine, "After")
	assert.True(t, ok)
	_, ok = mustQueryDef(t, engine, "Before")
	assert.False(t, ok)
}

func TestSession_CloseRestoresFreshBuilds(t *testing.T) {
	dir := writeProject(t, map[string]string{"m.py": "class A:\n    pass\n"})
	engine, err := NewEngine(dir, treesitter.NewParser(), DefaultOptions())
	require.NoError(t, err)

	watcher, err := fsnotify.NewWatcher()
	require.NoError(t, err)

	session, err := NewSession(engine, watcher)
	require.NoError(t, err)
	require.NoError(t, session.Close())

	assert.Nil(t, engine.cache)

	// Queries keep working after close, rebuilding each time.
	_, ok := mustQueryDef(t, engine, "A")
	assert.True(t, ok)
}
