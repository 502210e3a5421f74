package server

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/codescout/codescout/internal/app"
	"github.com/codescout/codescout/internal/ports"
)

// Arguments structs

type ExploreProjectArgs struct{}

type ListFilesArgs struct {
	Directory string `json:"directory" jsonschema:"description:Directory to list, relative to the project root; defaults to the root"`
	Recursive bool   `json:"recursive" jsonschema:"description:Descend into subdirectories"`
	CodeOnly  bool   `json:"code_only" jsonschema:"description:Keep only recognized code files"`
}

type ReadFileArgs struct {
	FilePath  string `json:"file_path" jsonschema:"required,description:File to read, relative to the project root"`
	StartLine int    `json:"start_line" jsonschema:"description:First line to return, 1-based inclusive"`
	EndLine   int    `json:"end_line" jsonschema:"description:Last line to return, 1-based inclusive"`
}

type SearchFilesArgs struct {
	Query         string `json:"query" jsonschema:"required,description:Substring to search for"`
	FilePattern   string `json:"file_pattern" jsonschema:"description:Comma-separated extensions, e.g. py or *.py; * means the default set"`
	CaseSensitive bool   `json:"case_sensitive" jsonschema:"description:Match case exactly"`
}

type SearchCodeAdvancedArgs struct {
	Query         string `json:"query" jsonschema:"required,description:Pattern to search for"`
	FilePattern   string `json:"file_pattern" jsonschema:"description:Comma-separated extensions; * means the default language set"`
	CaseSensitive bool   `json:"case_sensitive" jsonschema:"description:Match case exactly"`
	WholeWord     bool   `json:"whole_word" jsonschema:"description:Match whole words only; ignored when regex is true"`
	Regex         bool   `json:"regex" jsonschema:"description:Treat query as a regular expression"`
	ContextLines  int    `json:"context_lines" jsonschema:"description:Lines of context around each match"`
}

type SearchSymbolArgs struct {
	Name string `json:"name" jsonschema:"required,description:Symbol name fragment to look up"`
	Kind string `json:"kind" jsonschema:"description:Restrict to one kind: class, function, or import"`
}

type FindReferencesArgs struct {
	Name string `json:"name" jsonschema:"required,description:Symbol name to find references of"`
}

type FindDefinitionArgs struct {
	Name string `json:"name" jsonschema:"required,description:Exact symbol name to locate the definition of"`
}

type AnalyzeImportsArgs struct {
	FilePath string `json:"file_path" jsonschema:"required,description:Python file to report imports for, relative to the project root"`
}

type AnalyzeFileArgs struct {
	FilePath string `json:"file_path" jsonschema:"required,description:Python file to analyze, relative to the project root"`
}

type FindCodePatternsArgs struct {
	FilePath string   `json:"file_path" jsonschema:"required,description:File to scan, relative to the project root"`
	Patterns []string `json:"patterns" jsonschema:"required,description:Regular expressions to match against the file content"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "explore_project",
		Description: "Returns the first-level project structure and aggregate file statistics",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ExploreProjectArgs) (*mcp.CallToolResult, any, error) {
		overview, err := s.engine.Explore()
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(overview), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_files",
		Description: "Lists files in a directory with size, extension, and modification time",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ListFilesArgs) (*mcp.CallToolResult, any, error) {
		files, err := s.engine.ListFiles(args.Directory, args.Recursive, args.CodeOnly)
		if err != nil {
			return errorResult(err), nil, nil
		}
		if len(files) == 0 {
			return textResult("No files found."), nil, nil
		}
		return jsonResult(files), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "read_file",
		Description: "Reads file content, optionally sliced to a 1-based inclusive line range",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args ReadFileArgs) (*mcp.CallToolResult, any, error) {
		content, err := s.engine.ReadFile(args.FilePath, args.StartLine, args.EndLine)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(content), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search_files",
		Description: "Substring search over code files, capped per file and overall with true totals",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args SearchFilesArgs) (*mcp.CallToolResult, any, error) {
		results, err := s.engine.SearchFiles(args.Query, args.FilePattern, args.CaseSensitive)
		if err != nil {
			return errorResult(err), nil, nil
		}
		if results.TotalFiles == 0 {
			return textResult("No matches found."), nil, nil
		}
		return jsonResult(results), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search_code_advanced",
		Description: "Pattern search with regex, whole-word, and case options; returns matches with context",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args SearchCodeAdvancedArgs) (*mcp.CallToolResult, any, error) {
		res, err := s.engine.Query(app.TextQuery{
			Query:         args.Query,
			FilePattern:   args.FilePattern,
			CaseSensitive: args.CaseSensitive,
			WholeWord:     args.WholeWord,
			Regex:         args.Regex,
			ContextLines:  args.ContextLines,
		})
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(res), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "search_symbol",
		Description: "Looks up indexed classes, functions, and imports by name fragment",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args SearchSymbolArgs) (*mcp.CallToolResult, any, error) {
		kind, err := parseKind(args.Kind)
		if err != nil {
			return errorResult(err), nil, nil
		}
		res, err := s.engine.Query(app.SymbolQuery{Fragment: args.Name, Kind: kind})
		if err != nil {
			return errorResult(err), nil, nil
		}
		if len(res.Symbols) == 0 {
			return textResult("No matching symbols."), nil, nil
		}
		return jsonResult(res.Symbols), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "find_references",
		Description: "Finds textual whole-word occurrences of a symbol name across the project",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args FindReferencesArgs) (*mcp.CallToolResult, any, error) {
		res, err := s.engine.Query(app.ReferenceQuery{Name: args.Name})
		if err != nil {
			return errorResult(err), nil, nil
		}
		if len(res.Matches) == 0 {
			return textResult("No references found."), nil, nil
		}
		return jsonResult(res), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "find_definition",
		Description: "Finds where a symbol is defined, classes taking priority over functions",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args FindDefinitionArgs) (*mcp.CallToolResult, any, error) {
		res, err := s.engine.Query(app.DefinitionQuery{Name: args.Name})
		if err != nil {
			return errorResult(err), nil, nil
		}
		if res.Definition == nil {
			return textResult("Definition not found."), nil, nil
		}
		return jsonResult(res.Definition), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "analyze_imports",
		Description: "Reports the imports and module dependencies of one Python file",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args AnalyzeImportsArgs) (*mcp.CallToolResult, any, error) {
		report, err := s.engine.Imports(args.FilePath)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(report), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "analyze_file",
		Description: "Computes line counts, function and class details, and complexity for a Python file",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args AnalyzeFileArgs) (*mcp.CallToolResult, any, error) {
		report, err := s.engine.AnalyzeFile(args.FilePath)
		if err != nil {
			return errorResult(err), nil, nil
		}
		return jsonResult(report), nil, nil
	})

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "find_code_patterns",
		Description: "Matches caller-supplied regex patterns against one file's content",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args FindCodePatternsArgs) (*mcp.CallToolResult, any, error) {
		matches, err := s.engine.FindCodePatterns(args.FilePath, args.Patterns)
		if err != nil {
			return errorResult(err), nil, nil
		}
		if len(matches) == 0 {
			return textResult("No pattern matches found."), nil, nil
		}
		return jsonResult(matches), nil, nil
	})
}

// parseKind validates the optional symbol-kind argument.
func parseKind(kind string) (ports.SymbolKind, error) {
	switch kind {
	case "":
		return "", nil
	case "class":
		return ports.KindClass, nil
	case "function":
		return ports.KindFunction, nil
	case "import":
		return ports.KindImport, nil
	default:
		return "", fmt.Errorf("unknown symbol kind %q: want class, function, or import", kind)
	}
}
