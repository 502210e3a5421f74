// codescout indexes and searches source trees: symbol lookup, text search,
// import analysis, and an MCP server exposing the same operations.
package main

import (
	"os"

	"github.com/codescout/codescout/cmd/codescout/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
