package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codescout/codescout/internal/app"
)

var refsCmd = &cobra.Command{
	Use:   "refs <name>",
	Short: "Find references to a symbol",
	Long: "Whole-word, case-insensitive occurrences of a name across the default " +
		"language set. References are textual: a match inside a comment or string " +
		"counts the same as a genuine use.",
	Args: cobra.ExactArgs(1),
	RunE: runRefs,
}

func runRefs(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	res, err := engine.Query(app.ReferenceQuery{Name: args[0]})
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(res)
	}
	fmt.Print(formatMatches(res))
	return nil
}
