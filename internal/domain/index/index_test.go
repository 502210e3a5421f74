package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescout/codescout/internal/adapters/treesitter"
	"github.com/codescout/codescout/internal/ports"
)

// writeProject lays out a small Python tree.
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

func buildIndex(t *testing.T, files map[string]string) (*Index, *Report) {
	t.Helper()
	dir := writeProject(t, files)
	ix, report, err := Build(dir, treesitter.NewParser())
	require.NoError(t, err)
	return ix, report
}

func TestBuild_IndexesSymbols(t *testing.T) {
	ix, report := buildIndex(t, map[string]string{
		"models.py": "class User:\n    def save(self):\n        pass\n",
		"main.py":   "from models import User\n\ndef run():\n    pass\n",
	})

	assert.Equal(t, 2, report.Parsed())
	assert.Equal(t, 0, report.Skipped())

	classes := ix.Records(ports.KindClass)
	require.Len(t, classes, 1)
	assert.Equal(t, "User", classes[0].Name)
	assert.Equal(t, "models.py", classes[0].File)
	assert.Equal(t, 1, classes[0].Line)

	var functionNames []string
	for _, rec := range ix.Records(ports.KindFunction) {
		functionNames = append(functionNames, rec.Name)
	}
	assert.ElementsMatch(t, []string{"save", "run"}, functionNames)

	imports := ix.Records(ports.KindImport)
	require.Len(t, imports, 1)
	assert.Equal(t, "models.User", imports[0].Name)
	assert.Equal(t, "models", imports[0].FromModule)
}

func TestBuild_ExcludesFilteredDirectories(t *testing.T) {
	// A symbol defined only inside an ignored directory is unreachable by
	// every query path.
	ix, _ := buildIndex(t, map[string]string{
		"src/app.py":      "class Visible:\n    pass\n",
		"venv/hidden.py":  "class Ghost:\n    pass\n",
		".git/sneaky.py":  "class Ghost:\n    pass\n",
		"build/frozen.py": "class Ghost:\n    pass\n",
	})

	assert.Empty(t, ix.LookupSymbol("Ghost", ""))
	_, found := ix.FindDefinition("Ghost")
	assert.False(t, found)
	require.Len(t, ix.Records(ports.KindClass), 1)
	assert.Equal(t, "Visible", ix.Records(ports.KindClass)[0].Name)
}

func TestBuild_SkipsUnparsableFilesAndContinues(t *testing.T) {
	ix, report := buildIndex(t, map[string]string{
		"good.py":   "def fine():\n    pass\n",
		"broken.py": "def broken(:\n",
	})

	assert.Equal(t, 1, report.Parsed())
	assert.Equal(t, 1, report.Skipped())

	// The broken file is simply absent; indexing still completed.
	_, ok := ix.FindDefinition("fine")
	assert.True(t, ok)

	var skipped []string
	for _, f := range report.Files {
		if f.Status == StatusSkipped {
			skipped = append(skipped, f.File)
			assert.NotEmpty(t, f.Reason)
		}
	}
	assert.Equal(t, []string{"broken.py"}, skipped)
}

func TestBuild_Idempotent(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"a.py": "class A:\n    pass\n\ndef f():\n    pass\n",
		"b.py": "from a import A\n",
	})

	parser := treesitter.NewParser()
	first, _, err := Build(dir, parser)
	require.NoError(t, err)
	second, _, err := Build(dir, parser)
	require.NoError(t, err)

	for _, kind := range []ports.SymbolKind{ports.KindClass, ports.KindFunction, ports.KindImport} {
		assert.Equal(t, first.Records(kind), second.Records(kind), "kind %s", kind)
	}
	assert.Equal(t, first.Dependencies("b.py"), second.Dependencies("b.py"))
}

func TestDependencies_FromImportsOnly(t *testing.T) {
	// Plain imports contribute no graph edge; from-imports do.
	ix, _ := buildIndex(t, map[string]string{
		"uses.py": "import os\nimport json\nfrom collections import OrderedDict\nfrom models import User\n",
	})

	assert.Equal(t, []string{"collections", "models"}, ix.Dependencies("uses.py"))
	assert.Equal(t, []string{"uses.py"}, ix.ImportedFiles())
}

func TestBuild_MissingRoot(t *testing.T) {
	_, _, err := Build(filepath.Join(t.TempDir(), "nope"), treesitter.NewParser())
	assert.Error(t, err)
}
