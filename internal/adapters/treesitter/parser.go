// Package treesitter implements Python source parsing using the tree-sitter
// grammar. It extracts class definitions, function definitions, and imported
// names, and produces ports.Symbol entries for the symbol index.
package treesitter

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	ts_python "github.com/tree-sitter/tree-sitter-python/bindings/go"

	"github.com/codescout/codescout/internal/ports"
)

// Parser extracts symbols from Python source files.
type Parser struct {
	language *tree_sitter.Language
}

// NewParser creates a parser with the Python grammar registered.
func NewParser() *Parser {
	return &Parser{
		language: tree_sitter.NewLanguage(ts_python.Language()),
	}
}

// SupportsExtension reports whether the parser handles this extension.
func (p *Parser) SupportsExtension(ext string) bool {
	return strings.EqualFold(ext, ".py")
}

// ParseFile extracts class, function, and import symbols from source.
// Returns an error for undecodable or unparsable content; symbols appear
// in AST walk order with 1-based line numbers.
func (p *Parser) ParseFile(path string, source []byte) ([]ports.Symbol, error) {
	if !p.SupportsExtension(filepath.Ext(path)) {
		return nil, nil
	}
	if !utf8.Valid(source) {
		return nil, fmt.Errorf("parse %s: invalid UTF-8", path)
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(p.language); err != nil {
		return nil, err
	}

	tree := parser.Parse(source, nil)
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, fmt.Errorf("parse %s: syntax error", path)
	}

	var symbols []ports.Symbol
	walk(root, source, &symbols)
	return symbols, nil
}

// walk visits every node, emitting symbols for class definitions, function
// definitions, and import statements. Nested and method definitions are
// indexed identically to top-level ones.
func walk(n *tree_sitter.Node, source []byte, out *[]ports.Symbol) {
	switch n.Kind() {
	case "class_definition":
		if name := namedChildText(n, "identifier", source); name != "" {
			*out = append(*out, ports.Symbol{
				Name: name,
				Line: int(n.StartPosition().Row + 1),
				Kind: ports.KindClass,
			})
		}
	case "function_definition":
		if name := namedChildText(n, "identifier", source); name != "" {
			*out = append(*out, ports.Symbol{
				Name: name,
				Line: int(n.StartPosition().Row + 1),
				Kind: ports.KindFunction,
			})
		}
	case "import_statement":
		extractImport(n, source, out)
	case "import_from_statement":
		extractImportFrom(n, source, out)
	}

	for i := uint(0); i < n.ChildCount(); i++ {
		walk(n.Child(i), source, out)
	}
}

// extractImport handles "import foo.bar" and "import foo as f" forms.
// The recorded name is the literal imported path; aliases do not rename it.
func extractImport(n *tree_sitter.Node, source []byte, out *[]ports.Symbol) {
	line := int(n.StartPosition().Row + 1)
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "dotted_name":
			*out = append(*out, ports.Symbol{
				Name: nodeText(child, source),
				Line: line,
				Kind: ports.KindImport,
			})
		case "aliased_import":
			if dotted := childByKind(child, "dotted_name"); dotted != nil {
				*out = append(*out, ports.Symbol{
					Name: nodeText(dotted, source),
					Line: line,
					Kind: ports.KindImport,
				})
			}
		}
	}
}

// extractImportFrom handles "from pkg.mod import a, b as c" forms. Each
// imported name is recorded as "<module>.<name>" with FromModule set to the
// module path. A purely relative import ("from . import x") has no module
// path: the bare name is recorded and FromModule stays empty, so it adds no
// dependency edge.
func extractImportFrom(n *tree_sitter.Node, source []byte, out *[]ports.Symbol) {
	line := int(n.StartPosition().Row + 1)

	var module string
	var names []string
	sawImportKeyword := false

	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "import":
			sawImportKeyword = true
		case "relative_import":
			// "from .pkg import x": the dotted part names the module,
			// the dot prefix does not.
			if dotted := childByKind(child, "dotted_name"); dotted != nil {
				module = nodeText(dotted, source)
			}
		case "dotted_name":
			if sawImportKeyword {
				names = append(names, nodeText(child, source))
			} else {
				module = nodeText(child, source)
			}
		case "aliased_import":
			if dotted := childByKind(child, "dotted_name"); dotted != nil {
				names = append(names, nodeText(dotted, source))
			}
		case "wildcard_import":
			names = append(names, "*")
		}
	}

	for _, name := range names {
		qualified := name
		if module != "" {
			qualified = module + "." + name
		}
		*out = append(*out, ports.Symbol{
			Name:       qualified,
			Line:       line,
			Kind:       ports.KindImport,
			FromModule: module,
		})
	}
}

// namedChildText returns the text of the first child with the given kind.
func namedChildText(n *tree_sitter.Node, kind string, source []byte) string {
	if c := childByKind(n, kind); c != nil {
		return nodeText(c, source)
	}
	return ""
}

// childByKind finds the first direct child with the given kind.
func childByKind(n *tree_sitter.Node, kind string) *tree_sitter.Node {
	for i := uint(0); i < n.ChildCount(); i++ {
		c := n.Child(i)
		if c.Kind() == kind {
			return c
		}
	}
	return nil
}

// nodeText returns the source text for a node.
func nodeText(n *tree_sitter.Node, source []byte) string {
	start, end := n.StartByte(), n.EndByte()
	if int(start) >= len(source) || int(end) > len(source) {
		return ""
	}
	return string(source[start:end])
}
