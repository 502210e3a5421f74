package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codescout/codescout/internal/app"
	"github.com/codescout/codescout/internal/ports"
)

var symbolKind string

var symbolCmd = &cobra.Command{
	Use:   "symbol <fragment>",
	Short: "Look up symbols by name fragment",
	Long:  "Case-insensitive substring lookup over indexed classes, functions, and imports.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSymbol,
}

func runSymbol(cmd *cobra.Command, args []string) error {
	var kind ports.SymbolKind
	switch symbolKind {
	case "":
	case "class":
		kind = ports.KindClass
	case "function":
		kind = ports.KindFunction
	case "import":
		kind = ports.KindImport
	default:
		return fmt.Errorf("unknown kind %q: want class, function, or import", symbolKind)
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	res, err := engine.Query(app.SymbolQuery{Fragment: args[0], Kind: kind})
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(res.Symbols)
	}
	fmt.Print(formatSymbols(res.Symbols))
	return nil
}

func init() {
	symbolCmd.Flags().StringVarP(&symbolKind, "kind", "k", "", "restrict to one kind: class, function, or import")
}
