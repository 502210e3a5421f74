// Package app wires the domain packages into per-project operations: the
// query engine, the file explorer, and the optional cached session.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/codescout/codescout/internal/domain/index"
	"github.com/codescout/codescout/internal/domain/metrics"
	"github.com/codescout/codescout/internal/domain/textsearch"
	"github.com/codescout/codescout/internal/ports"
)

// Parser is what the engine needs from the language adapter: symbol
// extraction for indexing plus structural fact extraction for analysis.
type Parser interface {
	ports.Parser
	AnalyzeSource(path string, source []byte) (*metrics.FileFacts, error)
}

// Options tunes result caps and filtering. The zero value is not useful;
// start from DefaultOptions.
type Options struct {
	ContextLines   int      // context lines around each text match
	ResultCap      int      // advanced text search returns at most this many matches
	FileCap        int      // search-files reports at most this many files
	MatchesPerFile int      // search-files reports at most this many matches per file
	UseGitignore   bool     // also honor the project's .gitignore
	ExtraIgnore    []string // additional directory names to prune
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		ContextLines:   2,
		ResultCap:      50,
		FileCap:        20,
		MatchesPerFile: 5,
	}
}

// Query is the closed set of query variants the engine dispatches on.
type Query interface{ isQuery() }

// TextQuery searches file content for a literal or regex pattern.
type TextQuery struct {
	Query         string
	FilePattern   string // comma-separated extensions; "" or "*" selects the default set
	CaseSensitive bool
	WholeWord     bool
	Regex         bool
	ContextLines  int // 0 uses the configured default
}

// SymbolQuery looks up indexed symbols by name fragment.
type SymbolQuery struct {
	Fragment string
	Kind     ports.SymbolKind // empty searches all kinds
}

// ReferenceQuery finds textual occurrences of a symbol name.
type ReferenceQuery struct {
	Name string
}

// DefinitionQuery finds the defining record of an exact symbol name.
type DefinitionQuery struct {
	Name string
}

func (TextQuery) isQuery()       {}
func (SymbolQuery) isQuery()     {}
func (ReferenceQuery) isQuery()  {}
func (DefinitionQuery) isQuery() {}

// Result is the normalized envelope every query resolves to. Text and
// reference queries fill Matches; symbol queries fill Symbols; definition
// queries fill Definition, which stays nil on not-found (not an error).
// TotalMatches carries the true count even when Matches was truncated.
type Result struct {
	Matches      []textsearch.Match   `json:"matches,omitempty"`
	Symbols      []index.SymbolRecord `json:"symbols,omitempty"`
	Definition   *index.SymbolRecord  `json:"definition,omitempty"`
	TotalMatches int                  `json:"total_matches"`
	Truncated    bool                 `json:"truncated,omitempty"`
}

// indexCache lets a session memoize the built index. The engine itself
// builds fresh on every call; only a Session installs a cache.
type indexCache interface {
	get() *index.Index
	put(*index.Index)
}

// Engine executes queries against one project root. Construct one per
// root; there is no global instance. All methods are synchronous.
type Engine struct {
	root   string
	parser Parser
	opts   Options
	cache  indexCache
}

// NewEngine creates an engine for the project rooted at root. The root must
// exist and be a directory.
func NewEngine(root string, parser Parser, opts Options) (*Engine, error) {
	if root == "" {
		return nil, ErrProjectNotInitialized
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, opErr("open_project", root, err)
	}
	if !info.IsDir() {
		return nil, opErr("open_project", root, fmt.Errorf("not a directory"))
	}
	return &Engine{root: abs, parser: parser, opts: opts}, nil
}

// Root returns the absolute project root.
func (e *Engine) Root() string { return e.root }

// Query dispatches one query variant and returns the normalized result.
// The switch is exhaustive over the closed Query set.
func (e *Engine) Query(q Query) (*Result, error) {
	if e == nil || e.root == "" {
		return nil, ErrProjectNotInitialized
	}

	switch q := q.(type) {
	case TextQuery:
		return e.searchText(q)
	case SymbolQuery:
		ix, err := e.index()
		if err != nil {
			return nil, err
		}
		symbols := ix.LookupSymbol(q.Fragment, q.Kind)
		return &Result{Symbols: symbols, TotalMatches: len(symbols)}, nil
	case ReferenceQuery:
		ix, err := e.index()
		if err != nil {
			return nil, err
		}
		matches, err := ix.FindReferences(q.Name)
		if err != nil {
			return nil, err
		}
		return &Result{Matches: matches, TotalMatches: len(matches)}, nil
	case DefinitionQuery:
		ix, err := e.index()
		if err != nil {
			return nil, err
		}
		res := &Result{}
		if rec, ok := ix.FindDefinition(q.Name); ok {
			res.Definition = &rec
			res.TotalMatches = 1
		}
		return res, nil
	default:
		return nil, fmt.Errorf("unhandled query type %T", q)
	}
}

// searchText runs the text matcher and applies the advanced-search cap,
// reporting the true total alongside the truncated list.
func (e *Engine) searchText(q TextQuery) (*Result, error) {
	contextLines := q.ContextLines
	if contextLines <= 0 {
		contextLines = e.opts.ContextLines
	}

	matches, err := textsearch.Search(e.root, q.Query, textsearch.Options{
		FilePattern:   q.FilePattern,
		CaseSensitive: q.CaseSensitive,
		WholeWord:     q.WholeWord,
		Regex:         q.Regex,
		ContextLines:  contextLines,
		UseGitignore:  e.opts.UseGitignore,
		ExtraIgnore:   e.opts.ExtraIgnore,
	})
	if err != nil {
		return nil, err
	}

	res := &Result{Matches: matches, TotalMatches: len(matches)}
	if limit := e.opts.ResultCap; limit > 0 && len(matches) > limit {
		res.Matches = matches[:limit]
		res.Truncated = true
	}
	return res, nil
}

// Imports returns the import records and module dependencies of one file,
// relative to the project root.
func (e *Engine) Imports(file string) (index.ImportsReport, error) {
	ix, err := e.index()
	if err != nil {
		return index.ImportsReport{}, err
	}
	return ix.ImportsFor(file), nil
}

// AnalyzeFile computes metrics for one Python file. Unlike indexing, a
// parse or decode failure here surfaces as an *OperationError: the caller
// targeted this file directly.
func (e *Engine) AnalyzeFile(path string) (*metrics.FileMetrics, error) {
	abs, err := e.resolvePath(path)
	if err != nil {
		return nil, err
	}
	source, err := os.ReadFile(abs)
	if err != nil {
		return nil, opErr("analyze_file", path, err)
	}
	facts, err := e.parser.AnalyzeSource(path, source)
	if err != nil {
		return nil, opErr("analyze_file", path, err)
	}
	return metrics.Compute(source, facts), nil
}

// FindCodePatterns matches caller-supplied regex patterns against one
// file's content. An invalid pattern fails the whole operation.
func (e *Engine) FindCodePatterns(path string, patterns []string) ([]metrics.PatternMatch, error) {
	abs, err := e.resolvePath(path)
	if err != nil {
		return nil, err
	}
	source, err := os.ReadFile(abs)
	if err != nil {
		return nil, opErr("find_code_patterns", path, err)
	}
	matches, err := metrics.FindPatterns(string(source), patterns)
	if err != nil {
		return nil, opErr("find_code_patterns", path, err)
	}
	return matches, nil
}

// BuildReport runs a full index pass and returns the per-file report.
func (e *Engine) BuildReport() (*index.Report, error) {
	_, report, err := index.Build(e.root, e.parser)
	return report, err
}

// index returns the symbol index, from the session cache when one is
// installed and warm, otherwise freshly built.
func (e *Engine) index() (*index.Index, error) {
	if e.cache != nil {
		if ix := e.cache.get(); ix != nil {
			return ix, nil
		}
	}
	ix, report, err := index.Build(e.root, e.parser)
	if err != nil {
		return nil, err
	}
	slog.Debug("project indexed", "root", e.root, "parsed", report.Parsed(), "skipped", report.Skipped())
	if e.cache != nil {
		e.cache.put(ix)
	}
	return ix, nil
}

// resolvePath joins a caller-supplied relative path with the root and
// rejects anything escaping it.
func (e *Engine) resolvePath(rel string) (string, error) {
	abs := filepath.Clean(filepath.Join(e.root, rel))
	if abs != e.root && !strings.HasPrefix(abs, e.root+string(filepath.Separator)) {
		return "", opErr("resolve_path", rel, fmt.Errorf("path escapes project root"))
	}
	return abs, nil
}
