// Package textsearch scans project files line-by-line for literal or regex
// patterns and assembles matches with surrounding context windows.
package textsearch

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/codescout/codescout/internal/domain/scan"
)

// MatchKind distinguishes plain text matches from reference lookups.
type MatchKind string

const (
	KindText      MatchKind = "text"
	KindReference MatchKind = "reference"
)

// Match is one pattern occurrence. Line and Column are 1-based; Column is a
// byte offset within the line. Content is the matched line with its trailing
// newline stripped. Context slices hold at most the requested number of
// neighbor lines, fewer near file edges — never padded.
type Match struct {
	File          string    `json:"file"`
	Line          int       `json:"line"`
	Column        int       `json:"column"`
	Content       string    `json:"content"`
	ContextBefore []string  `json:"context_before"`
	ContextAfter  []string  `json:"context_after"`
	Kind          MatchKind `json:"type"`
}

// Options controls pattern compilation and file selection.
type Options struct {
	// FilePattern is a comma-separated extension list ("py", "*.py", ".py"
	// all mean the same). "*" selects the default language set, not all
	// files.
	FilePattern string

	// CaseSensitive disables the default case-folding.
	CaseSensitive bool

	// WholeWord wraps the escaped literal in word boundaries. Ignored when
	// Regex is set: a caller-supplied regex is compiled verbatim.
	WholeWord bool

	// Regex compiles the query as a regular expression instead of an
	// escaped literal.
	Regex bool

	// ContextLines is the number of lines captured before and after each
	// match, clamped to file bounds.
	ContextLines int

	// Kind tags emitted matches; defaults to KindText.
	Kind MatchKind

	// UseGitignore passes through to the walker (off by default).
	UseGitignore bool

	// ExtraIgnore passes additional directory names through to the walker.
	ExtraIgnore []string
}

// Compile builds the regexp for a query under the given options.
func Compile(query string, opts Options) (*regexp.Regexp, error) {
	pattern := query
	if !opts.Regex {
		pattern = regexp.QuoteMeta(query)
		if opts.WholeWord {
			pattern = `\b` + pattern + `\b`
		}
	}
	if !opts.CaseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", query, err)
	}
	return re, nil
}

// Search walks root and returns every match in discovery order: file by
// file, top to bottom, left to right. It applies no result cap; truncation
// belongs to the caller. Files that fail to read or decode are skipped
// silently, matching the indexer's best-effort policy.
func Search(root, query string, opts Options) ([]Match, error) {
	re, err := Compile(query, opts)
	if err != nil {
		return nil, err
	}

	absRoot, err := scan.ResolveRoot(root)
	if err != nil {
		return nil, err
	}

	exts := scan.ParseFilePattern(opts.FilePattern)
	if exts == nil {
		exts = scan.DefaultSearchExtensions()
	}

	files, err := scan.Walk(absRoot, scan.WalkOptions{
		Extensions:   exts,
		UseGitignore: opts.UseGitignore,
		ExtraIgnore:  opts.ExtraIgnore,
	})
	if err != nil {
		return nil, err
	}

	kind := opts.Kind
	if kind == "" {
		kind = KindText
	}

	var matches []Match
	for _, rel := range files {
		matches = append(matches, searchFile(absRoot, rel, re, opts.ContextLines, kind)...)
	}
	return matches, nil
}

// searchFile scans one file and emits its matches. Unreadable or
// non-UTF-8 content skips the whole file.
func searchFile(absRoot, rel string, re *regexp.Regexp, contextLines int, kind MatchKind) []Match {
	data, err := os.ReadFile(filepath.Join(absRoot, rel))
	if err != nil {
		return nil
	}
	if !utf8.Valid(data) {
		return nil
	}

	lines := splitLines(string(data))
	relSlash := filepath.ToSlash(rel)

	var matches []Match
	for i, line := range lines {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			matches = append(matches, Match{
				File:          relSlash,
				Line:          i + 1,
				Column:        loc[0] + 1,
				Content:       line,
				ContextBefore: contextWindow(lines, i-contextLines, i),
				ContextAfter:  contextWindow(lines, i+1, i+1+contextLines),
				Kind:          kind,
			})
		}
	}
	return matches
}

// contextWindow copies lines[from:to) clamped to the file bounds.
func contextWindow(lines []string, from, to int) []string {
	if from < 0 {
		from = 0
	}
	if to > len(lines) {
		to = len(lines)
	}
	if from >= to {
		return nil
	}
	out := make([]string, to-from)
	copy(out, lines[from:to])
	return out
}

// splitLines splits content into lines without trailing newlines. A final
// newline does not produce a phantom empty line.
func splitLines(content string) []string {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
