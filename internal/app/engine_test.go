package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescout/codescout/internal/adapters/treesitter"
	"github.com/codescout/codescout/internal/ports"
)

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for path, content := range files {
		full := filepath.Join(dir, filepath.FromSlash(path))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	return dir
}

func newTestEngine(t *testing.T, files map[string]string) *Engine {
	t.Helper()
	dir := writeProject(t, files)
	engine, err := NewEngine(dir, treesitter.NewParser(), DefaultOptions())
	require.NoError(t, err)
	return engine
}

func TestNewEngine_Validation(t *testing.T) {
	_, err := NewEngine("", treesitter.NewParser(), DefaultOptions())
	assert.ErrorIs(t, err, ErrProjectNotInitialized)

	_, err = NewEngine(filepath.Join(t.TempDir(), "missing"), treesitter.NewParser(), DefaultOptions())
	var opErr *OperationError
	assert.ErrorAs(t, err, &opErr)
}

func TestQuery_TextCapWithTrueTotal(t *testing.T) {
	content := ""
	for i := 0; i < 60; i++ {
		content += fmt.Sprintf("needle_%d = True\n", i)
	}
	engine := newTestEngine(t, map[string]string{"big.py": content})

	res, err := engine.Query(TextQuery{Query: "needle"})
	require.NoError(t, err)

	// 50 returned, true total still reported.
	assert.Len(t, res.Matches, 50)
	assert.Equal(t, 60, res.TotalMatches)
	assert.True(t, res.Truncated)
}

func TestQuery_TextUnderCap(t *testing.T) {
	engine := newTestEngine(t, map[string]string{"m.py": "needle = 1\n"})

	res, err := engine.Query(TextQuery{Query: "needle"})
	require.NoError(t, err)
	assert.Len(t, res.Matches, 1)
	assert.Equal(t, 1, res.TotalMatches)
	assert.False(t, res.Truncated)
}

func TestQuery_SymbolDispatch(t *testing.T) {
	engine := newTestEngine(t, map[string]string{
		"m.py": "class Router:\n    pass\n\ndef route(path):\n    pass\n",
	})

	res, err := engine.Query(SymbolQuery{Fragment: "rout"})
	require.NoError(t, err)
	require.Len(t, res.Symbols, 2)
	assert.Equal(t, ports.KindClass, res.Symbols[0].Kind)

	res, err = engine.Query(SymbolQuery{Fragment: "rout", Kind: ports.KindFunction})
	require.NoError(t, err)
	require.Len(t, res.Symbols, 1)
	assert.Equal(t, "route", res.Symbols[0].Name)
}

func TestQuery_DefinitionNotFoundIsNotAnError(t *testing.T) {
	engine := newTestEngine(t, map[string]string{"m.py": "class Known:\n    pass\n"})

	res, err := engine.Query(DefinitionQuery{Name: "Unknown"})
	require.NoError(t, err, "not-found must be distinguishable from failure")
	assert.Nil(t, res.Definition)
	assert.Equal(t, 0, res.TotalMatches)

	res, err = engine.Query(DefinitionQuery{Name: "Known"})
	require.NoError(t, err)
	require.NotNil(t, res.Definition)
	assert.Equal(t, "Known", res.Definition.Name)
}

func TestQuery_References(t *testing.T) {
	engine := newTestEngine(t, map[string]string{
		"d.py": "def handler():\n    pass\n",
		"u.py": "from d import handler\nhandler()\n",
	})

	res, err := engine.Query(ReferenceQuery{Name: "handler"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.TotalMatches, 3)
}

func TestQuery_FreshIndexSeesChanges(t *testing.T) {
	// Without a session, every query rebuilds: a changed file is visible
	// to the next query with no invalidation step.
	dir := writeProject(t, map[string]string{"m.py": "class Before:\n    pass\n"})
	engine, err := NewEngine(dir, treesitter.NewParser(), DefaultOptions())
	require.NoError(t, err)

	_, ok := mustQueryDef(t, engine, "Before")
	assert.True(t, ok)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "m.py"), []byte("class After:\n    pass\n"), 0644))

	_, ok = mustQueryDef(t, engine, "Before")
	assert.False(t, ok)
	_, ok = mustQueryDef(t, engine, "After")
	assert.True(t, ok)
}

func mustQueryDef(t *testing.T, engine *Engine, name string) (*Result, bool) {
	t.Helper()
	res, err := engine.Query(DefinitionQuery{Name: name})
	require.NoError(t, err)
	return res, res.Definition != nil
}

func TestImports(t *testing.T) {
	engine := newTestEngine(t, map[string]string{
		"app.py": "import os\nfrom models import User\n",
	})

	report, err := engine.Imports("app.py")
	require.NoError(t, err)
	assert.Equal(t, []string{"models"}, report.Dependencies)
	assert.Len(t, report.Imports, 2)
}

func TestAnalyzeFile_SurfacesTargetedFailures(t *testing.T) {
	engine := newTestEngine(t, map[string]string{
		"ok.py":  "def fine():\n    if True:\n        pass\n",
		"bad.py": "def broken(:\n",
	})

	report, err := engine.AnalyzeFile("ok.py")
	require.NoError(t, err)
	require.Len(t, report.Functions, 1)
	assert.Equal(t, 2, report.Functions[0].Complexity)

	// Bulk indexing would swallow this; a targeted analysis must not.
	_, err = engine.AnalyzeFile("bad.py")
	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "analyze_file", opErr.Op)

	_, err = engine.AnalyzeFile("missing.py")
	assert.ErrorAs(t, err, &opErr)
}

func TestFindCodePatterns(t *testing.T) {
	engine := newTestEngine(t, map[string]string{
		"m.py": "def a():\n    pass\ndef b():\n    pass\n",
	})

	matches, err := engine.FindCodePatterns("m.py", []string{`def \w+`})
	require.NoError(t, err)
	assert.Len(t, matches, 2)

	_, err = engine.FindCodePatterns("m.py", []string{`[bad`})
	var opErr *OperationError
	assert.ErrorAs(t, err, &opErr)
}

func TestResolvePath_RejectsEscape(t *testing.T) {
	engine := newTestEngine(t, map[string]string{"m.py": "x = 1\n"})

	_, err := engine.ReadFile("../outside.txt", 0, 0)
	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.ErrorContains(t, err, "escapes project root")
}

func TestOperationError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := opErr("read_file", "x.py", inner)
	assert.ErrorIs(t, err, inner)
	assert.Contains(t, err.Error(), "read_file x.py")
}
