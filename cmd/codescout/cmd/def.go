package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codescout/codescout/internal/app"
	"github.com/codescout/codescout/internal/domain/index"
)

var defCmd = &cobra.Command{
	Use:   "def <name>",
	Short: "Find where a symbol is defined",
	Long:  "Exact-name definition lookup, classes taking priority over functions.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDef,
}

func runDef(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	res, err := engine.Query(app.DefinitionQuery{Name: args[0]})
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(res)
	}
	if res.Definition == nil {
		fmt.Printf("no definition found for %q\n", args[0])
		return nil
	}
	fmt.Print(formatSymbols([]index.SymbolRecord{*res.Definition}))
	return nil
}
