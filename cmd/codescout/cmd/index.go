package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codescout/codescout/internal/domain/index"
)

var indexVerbose bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the symbol index and report per-file results",
	Long:  "Walks the project, parses every eligible Python file, and reports which files were parsed and which were skipped (and why).",
	RunE:  runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	report, err := engine.BuildReport()
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(report)
	}

	fmt.Printf("%s%d parsed, %d skipped%s\n", colorBold, report.Parsed(), report.Skipped(), colorReset)
	for _, f := range report.Files {
		switch {
		case f.Status == index.StatusSkipped:
			fmt.Printf("  %sskip%s %s: %s\n", colorGray, colorReset, f.File, f.Reason)
		case indexVerbose:
			fmt.Printf("  %sok%s   %s (%d symbols)\n", colorGreen, colorReset, f.File, f.Symbols)
		}
	}
	return nil
}

func init() {
	indexCmd.Flags().BoolVarP(&indexVerbose, "verbose", "v", false, "also list successfully parsed files")
}
