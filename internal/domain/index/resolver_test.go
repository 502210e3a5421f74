package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescout/codescout/internal/domain/textsearch"
	"github.com/codescout/codescout/internal/ports"
)

func TestLookupSymbol_CaseInsensitiveSubstring(t *testing.T) {
	ix, _ := buildIndex(t, map[string]string{
		"shapes.py": "class Circle:\n    pass\n\nclass Square:\n    pass\n\ndef circle_area(r):\n    pass\n",
	})

	results := ix.LookupSymbol("CIRCLE", "")
	require.Len(t, results, 2)

	// Kind-major order: the class comes before the function.
	assert.Equal(t, ports.KindClass, results[0].Kind)
	assert.Equal(t, "Circle", results[0].Name)
	assert.Equal(t, ports.KindFunction, results[1].Kind)
	assert.Equal(t, "circle_area", results[1].Name)
}

func TestLookupSymbol_KindRestriction(t *testing.T) {
	ix, _ := buildIndex(t, map[string]string{
		"m.py": "class Thing:\n    pass\n\ndef thing():\n    pass\n",
	})

	classes := ix.LookupSymbol("thing", ports.KindClass)
	require.Len(t, classes, 1)
	assert.Equal(t, "Thing", classes[0].Name)

	functions := ix.LookupSymbol("thing", ports.KindFunction)
	require.Len(t, functions, 1)
	assert.Equal(t, "thing", functions[0].Name)
}

func TestFindDefinition_ClassBeatsFunction(t *testing.T) {
	// Same name as class and function: the class wins regardless of file
	// discovery order.
	ix, _ := buildIndex(t, map[string]string{
		"a_func.py": "def Widget():\n    pass\n",
		"z_cls.py":  "class Widget:\n    pass\n",
	})

	rec, ok := ix.FindDefinition("Widget")
	require.True(t, ok)
	assert.Equal(t, ports.KindClass, rec.Kind)
	assert.Equal(t, "z_cls.py", rec.File)
}

func TestFindDefinition_ExactMatchOnly(t *testing.T) {
	ix, _ := buildIndex(t, map[string]string{
		"m.py": "class UserProfile:\n    pass\n",
	})

	_, ok := ix.FindDefinition("User")
	assert.False(t, ok, "substring must not match a definition")

	_, ok = ix.FindDefinition("userprofile")
	assert.False(t, ok, "definition lookup is case-sensitive")

	rec, ok := ix.FindDefinition("UserProfile")
	require.True(t, ok)
	assert.Equal(t, 1, rec.Line)
}

func TestFindDefinition_NeverReturnsImports(t *testing.T) {
	ix, _ := buildIndex(t, map[string]string{
		"m.py": "import os\nfrom pkg import thing\n",
	})

	_, ok := ix.FindDefinition("os")
	assert.False(t, ok)
	_, ok = ix.FindDefinition("pkg.thing")
	assert.False(t, ok)
}

func TestFindReferences_TextualWholeWord(t *testing.T) {
	ix, _ := buildIndex(t, map[string]string{
		"defs.py": "def process(data):\n    return data\n",
		"use.py":  "from defs import process\n\nresult = process([1])\n# process is called above\nreprocess = None\n",
	})

	matches, err := ix.FindReferences("process")
	require.NoError(t, err)

	// Purely textual: the comment mention counts, the word inside
	// "reprocess" does not.
	var hits []string
	for _, m := range matches {
		assert.Equal(t, textsearch.KindReference, m.Kind)
		hits = append(hits, m.Content)
	}
	assert.Contains(t, hits, "# process is called above")
	for _, h := range hits {
		assert.NotEqual(t, "reprocess = None", h)
	}

	// Both files contribute matches.
	files := map[string]bool{}
	for _, m := range matches {
		files[m.File] = true
	}
	assert.True(t, files["defs.py"])
	assert.True(t, files["use.py"])
}

func TestImportsFor(t *testing.T) {
	ix, _ := buildIndex(t, map[string]string{
		"app.py":   "import sys\nfrom models import User\nfrom models import Role\nfrom utils.text import slugify\n",
		"other.py": "from models import User\n",
	})

	report := ix.ImportsFor("app.py")
	assert.Equal(t, "app.py", report.File)
	require.Len(t, report.Imports, 4)
	assert.Equal(t, []string{"models", "utils.text"}, report.Dependencies)

	// A file with no from-imports has no dependencies.
	empty := ix.ImportsFor("missing.py")
	assert.Empty(t, empty.Imports)
	assert.Empty(t, empty.Dependencies)
}
