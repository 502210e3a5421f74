package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var importsCmd = &cobra.Command{
	Use:   "imports <file>",
	Short: "Show the imports and dependencies of a Python file",
	Long:  "Lists the file's import records and the modules it depends on through from-imports.",
	Args:  cobra.ExactArgs(1),
	RunE:  runImports,
}

func runImports(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	report, err := engine.Imports(args[0])
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(report)
	}

	fmt.Printf("%s%s%s\n", colorBold, report.File, colorReset)
	for _, rec := range report.Imports {
		fmt.Printf("  %d: %s\n", rec.Line, rec.Name)
	}
	if len(report.Dependencies) > 0 {
		fmt.Printf("depends on: %s\n", strings.Join(report.Dependencies, ", "))
	}
	return nil
}
