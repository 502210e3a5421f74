package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Compute metrics for a Python file",
	Long:  "Line counts, function and class details, imports, and cyclomatic complexity.",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	report, err := engine.AnalyzeFile(args[0])
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(report)
	}

	fmt.Printf("%s%s%s\n", colorBold, args[0], colorReset)
	fmt.Printf("  %d lines (%d blank, %d comment), complexity %d\n",
		report.LinesOfCode, report.LinesBlank, report.LinesComment, report.Complexity)

	for _, cls := range report.Classes {
		fmt.Printf("  %sclass%s %s:%d", colorGreen, colorReset, cls.Name, cls.Line)
		if len(cls.Bases) > 0 {
			fmt.Printf("(%s)", strings.Join(cls.Bases, ", "))
		}
		if len(cls.Methods) > 0 {
			fmt.Printf("  %s%s%s", colorGray, strings.Join(cls.Methods, " "), colorReset)
		}
		fmt.Println()
	}
	for _, fn := range report.Functions {
		fmt.Printf("  %sdef%s %s(%s):%d  complexity %d\n",
			colorGreen, colorReset, fn.Name, strings.Join(fn.Args, ", "), fn.Line, fn.Complexity)
	}
	for _, imp := range report.Imports {
		fmt.Printf("  %simport%s %s:%d\n", colorGray, colorReset, imp.Name, imp.Line)
	}
	return nil
}
