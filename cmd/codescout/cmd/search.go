package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codescout/codescout/internal/app"
)

var (
	searchPattern       string
	searchCaseSensitive bool
	searchWholeWord     bool
	searchRegex         bool
	searchContext       int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search file content for a pattern",
	Long:  "Literal or regex search across the project with context lines around each match.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	res, err := engine.Query(app.TextQuery{
		Query:         args[0],
		FilePattern:   searchPattern,
		CaseSensitive: searchCaseSensitive,
		WholeWord:     searchWholeWord,
		Regex:         searchRegex,
		ContextLines:  searchContext,
	})
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(res)
	}
	fmt.Print(formatMatches(res))
	return nil
}

func init() {
	searchCmd.Flags().StringVarP(&searchPattern, "pattern", "p", "*", "comma-separated extensions to search (e.g. py,go); * means the default set")
	searchCmd.Flags().BoolVarP(&searchCaseSensitive, "case-sensitive", "c", false, "match case exactly")
	searchCmd.Flags().BoolVarP(&searchWholeWord, "word", "w", false, "match whole words only (ignored with --regex)")
	searchCmd.Flags().BoolVarP(&searchRegex, "regex", "r", false, "treat query as a regular expression")
	searchCmd.Flags().IntVarP(&searchContext, "context", "C", 0, "context lines around each match (default from config)")
}
