// Package scan decides which files and directories participate in indexing
// and search, and provides the single tree walker shared by the indexer and
// the text matcher.
package scan

import (
	"path/filepath"
	"strings"
)

// ignoreNames are directory or file names never indexed or searched.
var ignoreNames = map[string]bool{
	"venv":          true,
	"env":           true,
	"__pycache__":   true,
	".git":          true,
	"node_modules":  true,
	".pytest_cache": true,
	".idea":         true,
	".vscode":       true,
	"dist":          true,
	"build":         true,
}

// hiddenAllowed are dot-files exempt from the hidden-file suppression.
var hiddenAllowed = map[string]bool{
	".gitignore":   true,
	".env.example": true,
}

// defaultSearchExtensions is the language set searched when the file
// pattern is "*".
var defaultSearchExtensions = []string{
	".py", ".js", ".jsx", ".ts", ".tsx", ".java", ".cpp", ".c", ".go",
}

// codeExtensions is the broader "is code file" set used by the listing and
// search-files operations. Includes source, markup, config, and script
// extensions.
var codeExtensions = map[string]bool{
	".py": true, ".js": true, ".jsx": true, ".ts": true, ".tsx": true,
	".java": true, ".cpp": true, ".c": true, ".cs": true,
	".go": true, ".rs": true, ".php": true, ".rb": true, ".swift": true,
	".kt": true, ".scala": true, ".sql": true,
	".html": true, ".css": true, ".scss": true, ".vue": true, ".svelte": true,
	".json": true, ".yaml": true, ".yml": true,
	".md": true, ".txt": true, ".sh": true, ".bash": true, ".zsh": true,
	".ps1": true, ".dockerfile": true, ".gitignore": true,
}

// ShouldSkip reports whether relPath is excluded from indexing and search.
// A path is skipped when any segment is in the fixed ignore set, or when
// the leaf name is hidden and not on the allow-list. Pure and deterministic.
func ShouldSkip(relPath string) bool {
	segments := strings.Split(filepath.ToSlash(relPath), "/")
	for _, seg := range segments {
		if seg == "" || seg == "." {
			continue
		}
		if ignoreNames[seg] {
			return true
		}
	}
	name := segments[len(segments)-1]
	if strings.HasPrefix(name, ".") && !hiddenAllowed[name] {
		return true
	}
	return false
}

// SkipName reports whether a single path segment (directory or file name)
// is excluded. Used by the walker to prune whole subtrees.
func SkipName(name string) bool {
	if ignoreNames[name] {
		return true
	}
	if strings.HasPrefix(name, ".") && !hiddenAllowed[name] {
		return true
	}
	return false
}

// IsIndexable reports whether the file can be structurally indexed.
// Only Python sources have a parseable grammar here; everything else is
// visible to text search but not to the symbol index.
func IsIndexable(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".py")
}

// IsCodeFile reports whether the extension is in the broad code-file set.
func IsCodeFile(path string) bool {
	return codeExtensions[strings.ToLower(filepath.Ext(path))]
}

// DefaultSearchExtensions returns a copy of the default language set used
// when the file pattern is "*".
func DefaultSearchExtensions() []string {
	out := make([]string, len(defaultSearchExtensions))
	copy(out, defaultSearchExtensions)
	return out
}

// ParseFilePattern converts a comma-separated extension pattern into a
// normalized list of leading-dot extensions. "py", "*.py", and ".py" all
// normalize to ".py". The literal "*" returns nil, which callers interpret
// as their own default set.
func ParseFilePattern(pattern string) []string {
	if pattern == "*" || pattern == "" {
		return nil
	}
	var exts []string
	for _, part := range strings.Split(pattern, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		switch {
		case strings.HasPrefix(part, "*."):
			part = part[1:]
		case strings.HasPrefix(part, "."):
			// already normalized
		default:
			part = "." + part
		}
		exts = append(exts, strings.ToLower(part))
	}
	return exts
}

// HasExtension reports whether path's extension is one of exts.
// A nil exts matches everything.
func HasExtension(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
