package index

import (
	"path/filepath"
	"strings"

	"github.com/codescout/codescout/internal/domain/textsearch"
	"github.com/codescout/codescout/internal/ports"
)

// kindOrder fixes the kind-major result ordering for unrestricted lookups.
var kindOrder = []ports.SymbolKind{ports.KindClass, ports.KindFunction, ports.KindImport}

// LookupSymbol returns every record whose name contains fragment,
// case-insensitively. When kind is empty all three kinds are searched in
// class, function, import order; within a kind, records keep their
// insertion order.
func (ix *Index) LookupSymbol(fragment string, kind ports.SymbolKind) []SymbolRecord {
	kinds := kindOrder
	if kind != "" {
		kinds = []ports.SymbolKind{kind}
	}

	needle := strings.ToLower(fragment)
	var results []SymbolRecord
	for _, k := range kinds {
		for _, rec := range ix.byKind[k] {
			if strings.Contains(strings.ToLower(rec.Name), needle) {
				results = append(results, rec)
			}
		}
	}
	return results
}

// FindDefinition returns the first class or function record whose name is
// an exact match, classes taking priority over functions. Imports are never
// definitions. The boolean result distinguishes "not found" from a zero
// record; not-found is not an error.
func (ix *Index) FindDefinition(name string) (SymbolRecord, bool) {
	for _, k := range []ports.SymbolKind{ports.KindClass, ports.KindFunction} {
		for _, rec := range ix.byKind[k] {
			if rec.Name == name {
				return rec, true
			}
		}
	}
	return SymbolRecord{}, false
}

// FindReferences locates textual occurrences of name across the default
// language set, whole-word and case-insensitive. References are purely
// textual: a name inside a comment, string literal, or same-spelled
// identifier is indistinguishable from a genuine use.
func (ix *Index) FindReferences(name string) ([]textsearch.Match, error) {
	return textsearch.Search(ix.root, name, textsearch.Options{
		FilePattern:  "*",
		WholeWord:    true,
		ContextLines: 2,
		Kind:         textsearch.KindReference,
	})
}

// ImportsReport is the result shape of ImportsFor.
type ImportsReport struct {
	File         string         `json:"file"`
	Imports      []SymbolRecord `json:"imports"`
	Dependencies []string       `json:"dependencies"`
}

// ImportsFor returns the import records declared in file plus the module
// names it depends on through from-imports. file is relative to the root.
func (ix *Index) ImportsFor(file string) ImportsReport {
	rel := filepath.ToSlash(file)
	report := ImportsReport{File: rel}
	for _, rec := range ix.byKind[ports.KindImport] {
		if rec.File == rel {
			report.Imports = append(report.Imports, rec)
		}
	}
	report.Dependencies = ix.Dependencies(rel)
	return report
}
