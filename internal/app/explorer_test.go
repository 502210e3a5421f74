package app

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExplore_StructureAndStats(t *testing.T) {
	engine := newTestEngine(t, map[string]string{
		"src/main.py":   "x = 1\n",
		"src/util.py":   "y = 2\n",
		"docs/notes.md": "# notes\n",
		"README.md":     "readme\n",
		"venv/lib.py":   "hidden\n",
	})

	overview, err := engine.Explore()
	require.NoError(t, err)

	// Directories first, then files, each sorted by name; venv filtered.
	var names []string
	for _, e := range overview.Structure {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"docs", "src", "README.md"}, names)
	assert.Equal(t, "directory", overview.Structure[0].Type)
	assert.False(t, overview.Truncated)

	assert.Equal(t, 4, overview.Stats.TotalFiles)
	assert.Equal(t, 4, overview.Stats.CodeFiles)
	assert.Equal(t, 2, overview.Stats.Directories)
	assert.Equal(t, 2, overview.Stats.ByExtension[".py"])
	assert.Equal(t, 2, overview.Stats.ByExtension[".md"])
	assert.Greater(t, overview.Stats.TotalSize, int64(0))
}

func TestExplore_TruncatesAtTwenty(t *testing.T) {
	files := map[string]string{}
	for i := 0; i < 25; i++ {
		files[fmt.Sprintf("file_%02d.py", i)] = "pass\n"
	}
	engine := newTestEngine(t, files)

	overview, err := engine.Explore()
	require.NoError(t, err)
	assert.Len(t, overview.Structure, 20)
	assert.True(t, overview.Truncated)
	assert.Equal(t, 25, overview.Stats.TotalFiles, "stats cover the whole tree, not the truncated listing")
}

func TestListFiles_SortedByExtensionThenName(t *testing.T) {
	engine := newTestEngine(t, map[string]string{
		"b.py":     "x\n",
		"a.py":     "x\n",
		"z.go":     "x\n",
		"sub/c.py": "x\n",
	})

	files, err := engine.ListFiles("", false, false)
	require.NoError(t, err)

	var paths []string
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	// Non-recursive: sub/ is not descended. .go sorts before .py.
	assert.Equal(t, []string{"z.go", "a.py", "b.py"}, paths)

	files, err = engine.ListFiles("", true, false)
	require.NoError(t, err)
	paths = nil
	for _, f := range files {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"z.go", "a.py", "b.py", "sub/c.py"}, paths)
}

func TestListFiles_CodeOnly(t *testing.T) {
	engine := newTestEngine(t, map[string]string{
		"main.py":  "x\n",
		"data.bin": "x\n",
	})

	files, err := engine.ListFiles("", false, true)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "main.py", files[0].Path)
	assert.Equal(t, ".py", files[0].Extension)
	assert.Greater(t, files[0].Size, int64(0))
}

func TestReadFile_LineRange(t *testing.T) {
	engine := newTestEngine(t, map[string]string{
		"m.py": "line1\nline2\nline3\nline4\nline5\n",
	})

	content, err := engine.ReadFile("m.py", 2, 4)
	require.NoError(t, err)
	assert.Equal(t, "line2\nline3\nline4", content.Content)
	assert.Equal(t, 2, content.StartLine)
	assert.Equal(t, 4, content.EndLine)
	assert.Equal(t, 6, content.TotalLines) // trailing newline yields a final empty line

	// Out-of-range bounds clamp instead of failing.
	content, err = engine.ReadFile("m.py", 0, 999)
	require.NoError(t, err)
	assert.Equal(t, 1, content.StartLine)
}

func TestReadFile_Latin1Fallback(t *testing.T) {
	dir := writeProject(t, map[string]string{"m.py": "x = 1\n"})
	// 0xE9 is "é" in Latin-1 and invalid as standalone UTF-8.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "legacy.py"), []byte{'c', 'a', 'f', 0xE9, '\n'}, 0644))

	engine, err := NewEngine(dir, nil, DefaultOptions())
	require.NoError(t, err)

	content, err := engine.ReadFile("legacy.py", 0, 0)
	require.NoError(t, err, "invalid UTF-8 falls back to Latin-1, not an error")
	assert.Contains(t, content.Content, "café")
}

func TestSearchFiles_CapsWithTrueTotals(t *testing.T) {
	files := map[string]string{}
	// 25 files, each with 8 matching lines.
	for i := 0; i < 25; i++ {
		content := ""
		for j := 0; j < 8; j++ {
			content += "needle line\n"
		}
		files[fmt.Sprintf("f%02d.py", i)] = content
	}
	engine := newTestEngine(t, files)

	results, err := engine.SearchFiles("needle", "*", false)
	require.NoError(t, err)

	assert.Len(t, results.Results, 20, "at most 20 files reported")
	assert.Equal(t, 25, results.TotalFiles, "true file count preserved")
	assert.True(t, results.Truncated)

	for _, r := range results.Results {
		assert.Len(t, r.Matches, 5, "at most 5 matches per file")
		assert.Equal(t, 8, r.TotalMatches, "true per-file count preserved")
	}
}

func TestSearchFiles_CaseSensitivity(t *testing.T) {
	engine := newTestEngine(t, map[string]string{
		"m.py": "Needle\nneedle\n",
	})

	results, err := engine.SearchFiles("Needle", "*", true)
	require.NoError(t, err)
	require.Len(t, results.Results, 1)
	assert.Equal(t, 1, results.Results[0].TotalMatches)

	results, err = engine.SearchFiles("Needle", "*", false)
	require.NoError(t, err)
	assert.Equal(t, 2, results.Results[0].TotalMatches)
}
