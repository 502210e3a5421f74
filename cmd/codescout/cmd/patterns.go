package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns <file> <regex>...",
	Short: "Match regex patterns against one file",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runPatterns,
}

func runPatterns(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	matches, err := engine.FindCodePatterns(args[0], args[1:])
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(matches)
	}

	for _, m := range matches {
		fmt.Printf("  %s%s%s:%d: %s\n", colorCyan, args[0], colorReset, m.Line, m.Text)
	}
	if len(matches) == 0 {
		fmt.Println("no pattern matches")
	}
	return nil
}
