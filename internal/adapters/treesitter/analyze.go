package treesitter

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/codescout/codescout/internal/domain/metrics"
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// AnalyzeSource parses Python source and extracts the structural facts the
// metrics report is built from. Unlike bulk indexing, failures here are
// surfaced: the caller explicitly targeted this file.
func (p *Parser) AnalyzeSource(path string, source []byte) (*metrics.FileFacts, error) {
	if !p.SupportsExtension(filepath.Ext(path)) {
		return nil, fmt.Errorf("analyze %s: only Python files are supported", path)
	}
	if !utf8.Valid(source) {
		return nil, fmt.Errorf("analyze %s: invalid UTF-8", path)
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
		return nil, fmt.Errorf("analyze %s: syntax error", path)
	}

	facts := &metrics.FileFacts{}
	collectFacts(root, source, facts)
	return facts, nil
}

// collectFacts walks the whole tree gathering function, class, and import
// facts, mirroring the walk order of the symbol extractor.
func collectFacts(n *tree_sitter.Node, source []byte, facts *metrics.FileFacts) {
	switch n.Kind() {
	case "function_definition":
		facts.Functions = append(facts.Functions, functionFact(n, source))
	case "class_definition":
		facts.Classes = append(facts.Classes, classFact(n, source))
	case "import_statement":
		importFacts(n, source, facts)
	case "import_from_statement":
		importFromFacts(n, source, facts)
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		collectFacts(n.Child(i), source, facts)
	}
}

func functionFact(n *tree_sitter.Node, source []byte) metrics.FunctionFact {
	fact := metrics.FunctionFact{
		Name:       namedChildText(n, "identifier", source),
		Line:       int(n.StartPosition().Row + 1),
		Args:       parameterNames(n, source),
		Decorators: decoratorNames(n, source),
		Docstring:  docstring(n, source),
		Complexity: complexity(n),
	}
	return fact
}

func classFact(n *tree_sitter.Node, source []byte) metrics.ClassFact {
	fact := metrics.ClassFact{
		Name:      namedChildText(n, "identifier", source),
		Line:      int(n.StartPosition().Row + 1),
		Docstring: docstring(n, source),
	}
	if argList := childByKind(n, "argument_list"); argList != nil {
		for i := uint(0); i < argList.ChildCount(); i++ {
			c := argList.Child(i)
			if c.Kind() == "identifier" || c.Kind() == "attribute" {
				fact.Bases = append(fact.Bases, nodeText(c, source))
			}
		}
	}
	if body := childByKind(n, "block"); body != nil {
		for i := uint(0); i < body.ChildCount(); i++ {
			c := body.Child(i)
			if c.Kind() == "function_definition" {
				fact.Methods = append(fact.Methods, namedChildText(c, "identifier", source))
			}
			if c.Kind() == "decorated_definition" {
				if fn := childByKind(c, "function_definition"); fn != nil {
					fact.Methods = append(fact.Methods, namedChildText(fn, "identifier", source))
				}
			}
		}
	}
	return fact
}

func importFacts(n *tree_sitter.Node, source []byte, facts *metrics.FileFacts) {
	line := int(n.StartPosition().Row + 1)
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "dotted_name":
			facts.Imports = append(facts.Imports, metrics.ImportFact{
				Name: nodeText(child, source),
				Line: line,
			})
		case "aliased_import":
			fact := metrics.ImportFact{Line: line}
			if dotted := childByKind(child, "dotted_name"); dotted != nil {
				fact.Name = nodeText(dotted, source)
			}
			if alias := childByKind(child, "identifier"); alias != nil {
				fact.Alias = nodeText(alias, source)
			}
			facts.Imports = append(facts.Imports, fact)
		}
	}
}

func importFromFacts(n *tree_sitter.Node, source []byte, facts *metrics.FileFacts) {
	line := int(n.StartPosition().Row + 1)

	var module string
	sawImportKeyword := false

	add := func(name, alias string) {
		qualified := name
		if module != "" {
			qualified = module + "." + name
		}
		facts.Imports = append(facts.Imports, metrics.ImportFact{
			Name:  qualified,
			Alias: alias,
			Line:  line,
			From:  module,
		})
	}

	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		switch child.Kind() {
		case "import":
			sawImportKeyword = true
		case "relative_import":
			if dotted := childByKind(child, "dotted_name"); dotted != nil {
				module = nodeText(dotted, source)
			}
		case "dotted_name":
			if sawImportKeyword {
				add(nodeText(child, source), "")
			} else {
				module = nodeText(child, source)
			}
		case "aliased_import":
			var name, alias string
			if dotted := childByKind(child, "dotted_name"); dotted != nil {
				name = nodeText(dotted, source)
			}
			if id := childByKind(child, "identifier"); id != nil {
				alias = nodeText(id, source)
			}
			if name != "" {
				add(name, alias)
			}
		case "wildcard_import":
			add("*", "")
		}
	}
}

// parameterNames returns the bare parameter identifiers of a function.
func parameterNames(n *tree_sitter.Node, source []byte) []string {
	params := childByKind(n, "parameters")
	if params == nil {
		return nil
	}
	var names []string
	for i := uint(0); i < params.ChildCount(); i++ {
		c := params.Child(i)
		switch c.Kind() {
		case "identifier":
			names = append(names, nodeText(c, source))
		case "typed_parameter", "default_parameter", "typed_default_parameter":
			if id := childByKind(c, "identifier"); id != nil {
				names = append(names, nodeText(id, source))
			}
		case "list_splat_pattern", "dictionary_splat_pattern":
			if id := childByKind(c, "identifier"); id != nil {
				names = append(names, nodeText(id, source))
			}
		}
	}
	return names
}

// decoratorNames returns the decorator expressions attached to a definition.
// Decorators live on the enclosing decorated_definition node.
func decoratorNames(n *tree_sitter.Node, source []byte) []string {
	parent := n.Parent()
	if parent == nil || parent.Kind() != "decorated_definition" {
		return nil
	}
	var names []string
	for i := uint(0); i < parent.ChildCount(); i++ {
		c := parent.Child(i)
		if c.Kind() == "decorator" {
			names = append(names, strings.TrimPrefix(nodeText(c, source), "@"))
		}
	}
	return names
}

// docstring returns the leading string literal of a definition body, with
// quote delimiters stripped, or "" when the body has none.
func docstring(n *tree_sitter.Node, source []byte) string {
	body := childByKind(n, "block")
	if body == nil || body.ChildCount() == 0 {
		return ""
	}
	first := body.Child(0)
	if first.Kind() != "expression_statement" {
		return ""
	}
	str := childByKind(first, "string")
	if str == nil {
		return ""
	}
	text := nodeText(str, source)
	for _, quote := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(text, quote) && strings.HasSuffix(text, quote) && len(text) >= 2*len(quote) {
			return strings.TrimSpace(text[len(quote) : len(text)-len(quote)])
		}
	}
	return strings.TrimSpace(text)
}

// complexity computes cyclomatic complexity for one function: 1 plus each
// branch point (if/while/for statements, except clauses) plus boolean
// operator fan-in. Nested function bodies count toward their own score, not
// the enclosing one.
func complexity(fn *tree_sitter.Node) int {
	score := 1
	var visit func(n *tree_sitter.Node)
	visit = func(n *tree_sitter.Node) {
		for i := uint(0); i < n.ChildCount(); i++ {
			c := n.Child(i)
			if c.Kind() == "function_definition" {
				continue
			}
			switch c.Kind() {
			case "if_statement", "while_statement", "for_statement",
				"elif_clause", "except_clause", "boolean_operator":
				score++
			}
			visit(c)
		}
	}
	visit(fn)
	return score
}
