// Package ports defines the interfaces (contracts) that adapters must
// implement. Domain logic depends only on these interfaces, never on
// concrete implementations.
package ports

// SymbolKind classifies an extracted symbol.
type SymbolKind string

const (
	KindClass    SymbolKind = "class"
	KindFunction SymbolKind = "function"
	KindImport   SymbolKind = "import"
)

// Symbol is one structural fact extracted from a source file: a class
// definition, a function definition, or an imported name. Line is 1-based.
// FromModule is set only for "from X import Y" style imports; it names the
// module the binding was imported from.
type Symbol struct {
	Name       string
	Line       int
	Kind       SymbolKind
	FromModule string
}

// Parser extracts structural symbols from source files. The concrete
// implementation (tree-sitter) lives in internal/adapters/treesitter.
type Parser interface {
	// ParseFile extracts symbols from source. It returns an error when the
	// content cannot be parsed or decoded; callers decide whether that error
	// is swallowed (bulk indexing) or surfaced (single-file operations).
	ParseFile(path string, source []byte) ([]Symbol, error)

	// SupportsExtension reports whether files with this extension can be
	// structurally parsed. Extension includes the leading dot.
	SupportsExtension(ext string) bool
}
