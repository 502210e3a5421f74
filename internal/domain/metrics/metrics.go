// Package metrics computes per-file code metrics (line counts, functions,
// classes, imports, cyclomatic complexity) from structural facts extracted
// by the parser adapter, and matches ad-hoc regex patterns against file
// content.
package metrics

import "strings"

// FunctionFact describes one function definition.
type FunctionFact struct {
	Name       string   `json:"name"`
	Line       int      `json:"line"`
	Args       []string `json:"args"`
	Decorators []string `json:"decorators"`
	Docstring  string   `json:"docstring,omitempty"`
	Complexity int      `json:"complexity"`
}

// ClassFact describes one class definition.
type ClassFact struct {
	Name      string   `json:"name"`
	Line      int      `json:"line"`
	Bases     []string `json:"bases"`
	Methods   []string `json:"methods"`
	Docstring string   `json:"docstring,omitempty"`
}

// ImportFact describes one imported name.
type ImportFact struct {
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
	Line  int    `json:"line"`
	From  string `json:"from,omitempty"`
}

// FileFacts holds the structural facts extracted from one source file.
type FileFacts struct {
	Functions []FunctionFact
	Classes   []ClassFact
	Imports   []ImportFact
}

// FileMetrics is the analysis report for one file.
type FileMetrics struct {
	LinesOfCode  int            `json:"lines_of_code"`
	LinesBlank   int            `json:"lines_blank"`
	LinesComment int            `json:"lines_comment"`
	Functions    []FunctionFact `json:"functions"`
	Classes      []ClassFact    `json:"classes"`
	Imports      []ImportFact   `json:"imports"`
	Complexity   int            `json:"complexity"`
}

// Compute assembles the metrics report from raw source and its extracted
// facts. File-level complexity is the sum over functions.
func Compute(source []byte, facts *FileFacts) *FileMetrics {
	m := &FileMetrics{
		Functions: facts.Functions,
		Classes:   facts.Classes,
		Imports:   facts.Imports,
	}

	lines := splitFileLines(string(source))
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			m.LinesBlank++
		case strings.HasPrefix(trimmed, "#"):
			m.LinesComment++
		}
	}
	m.LinesOfCode = len(lines)

	for _, fn := range facts.Functions {
		m.Complexity += fn.Complexity
	}
	return m
}

// splitFileLines splits content into lines; a trailing newline does not
// produce an empty final line.
func splitFileLines(content string) []string {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return nil
	}
	return strings.Split(content, "\n")
}
