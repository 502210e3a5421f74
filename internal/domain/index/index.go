// Package index builds and queries the in-memory symbol index and import
// dependency graph for one project tree.
package index

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/codescout/codescout/internal/domain/scan"
	"github.com/codescout/codescout/internal/ports"
)

// SymbolRecord is one indexed symbol. File is relative to the indexed root,
// Line is 1-based. Identity is (Name, File, Line, Kind); duplicates across
// files are expected and retained.
type SymbolRecord struct {
	Name       string           `json:"name"`
	File       string           `json:"file"`
	Line       int              `json:"line"`
	Kind       ports.SymbolKind `json:"type"`
	FromModule string           `json:"from_module,omitempty"`
}

// FileStatus classifies one file's outcome during the indexing pass.
type FileStatus string

const (
	StatusParsed  FileStatus = "parsed"
	StatusSkipped FileStatus = "skipped"
)

// FileResult records what happened to one candidate file during Build.
type FileResult struct {
	File    string     `json:"file"`
	Status  FileStatus `json:"status"`
	Reason  string     `json:"reason,omitempty"`  // set when skipped
	Symbols int        `json:"symbols,omitempty"` // set when parsed
}

// Report collects per-file results from one indexing pass, exposed for
// diagnostics. The index itself is built from the parsed subset only.
type Report struct {
	Files []FileResult `json:"files"`
}

// Parsed returns the number of successfully parsed files.
func (r *Report) Parsed() int {
	n := 0
	for _, f := range r.Files {
		if f.Status == StatusParsed {
			n++
		}
	}
	return n
}

// Skipped returns the number of skipped files.
func (r *Report) Skipped() int {
	return len(r.Files) - r.Parsed()
}

// Index is the in-memory symbol index and import graph for one project
// root. It is built once by Build and never mutated afterward; construct a
// fresh Index to observe filesystem changes.
type Index struct {
	root    string
	byKind  map[ports.SymbolKind][]SymbolRecord
	imports map[string]map[string]bool // file -> set of from-modules
}

// Root returns the absolute project root the index was built from.
func (ix *Index) Root() string { return ix.root }

// Records returns the records of one kind in tree-traversal insertion
// order. The returned slice must not be modified.
func (ix *Index) Records(kind ports.SymbolKind) []SymbolRecord {
	return ix.byKind[kind]
}

// Dependencies returns the sorted set of modules the file imports via
// "from X import Y" forms. Plain "import X" statements contribute no edge.
func (ix *Index) Dependencies(file string) []string {
	set := ix.imports[filepath.ToSlash(file)]
	if len(set) == 0 {
		return nil
	}
	deps := make([]string, 0, len(set))
	for mod := range set {
		deps = append(deps, mod)
	}
	sort.Strings(deps)
	return deps
}

// ImportedFiles returns the sorted list of files that have at least one
// import-graph edge.
func (ix *Index) ImportedFiles() []string {
	files := make([]string, 0, len(ix.imports))
	for f := range ix.imports {
		files = append(files, f)
	}
	sort.Strings(files)
	return files
}

// Build walks the tree once, parses each eligible Python file, and
// assembles the symbol index and import graph. Per-file parse and decode
// failures are swallowed (recorded in the report, logged at debug) so the
// aggregate index is best-effort complete; no error escapes for individual
// files. Walk order follows the platform's directory traversal.
func Build(root string, parser ports.Parser) (*Index, *Report, error) {
	absRoot, err := scan.ResolveRoot(root)
	if err != nil {
		return nil, nil, err
	}

	files, err := scan.Walk(absRoot, scan.WalkOptions{Extensions: []string{".py"}})
	if err != nil {
		return nil, nil, err
	}

	ix := &Index{
		root:    absRoot,
		byKind:  make(map[ports.SymbolKind][]SymbolRecord),
		imports: make(map[string]map[string]bool),
	}
	report := &Report{}

	for _, rel := range files {
		source, err := os.ReadFile(filepath.Join(absRoot, rel))
		if err != nil {
			report.Files = append(report.Files, FileResult{File: rel, Status: StatusSkipped, Reason: err.Error()})
			slog.Debug("index: skipping unreadable file", "file", rel, "err", err)
			continue
		}

		symbols, err := parser.ParseFile(rel, source)
		if err != nil {
			report.Files = append(report.Files, FileResult{File: rel, Status: StatusSkipped, Reason: err.Error()})
			slog.Debug("index: skipping unparsable file", "file", rel, "err", err)
			continue
		}

		relSlash := filepath.ToSlash(rel)
		for _, sym := range symbols {
			ix.byKind[sym.Kind] = append(ix.byKind[sym.Kind], SymbolRecord{
				Name:       sym.Name,
				File:       relSlash,
				Line:       sym.Line,
				Kind:       sym.Kind,
				FromModule: sym.FromModule,
			})
			if sym.Kind == ports.KindImport && sym.FromModule != "" {
				if ix.imports[relSlash] == nil {
					ix.imports[relSlash] = make(map[string]bool)
				}
				ix.imports[relSlash][sym.FromModule] = true
			}
		}
		report.Files = append(report.Files, FileResult{File: rel, Status: StatusParsed, Symbols: len(symbols)})
	}

	return ix, report, nil
}
