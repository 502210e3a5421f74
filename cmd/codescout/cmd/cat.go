package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	catStart int
	catEnd   int
)

var catCmd = &cobra.Command{
	Use:   "cat <file>",
	Short: "Print file content, optionally a line range",
	Args:  cobra.ExactArgs(1),
	RunE:  runCat,
}

func runCat(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	content, err := engine.ReadFile(args[0], catStart, catEnd)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(content)
	}

	fmt.Println(content.Content)
	if content.StartLine > 1 || content.EndLine < content.TotalLines {
		fmt.Printf("%s(lines %d-%d of %d)%s\n",
			colorGray, content.StartLine, content.EndLine, content.TotalLines, colorReset)
	}
	return nil
}

func init() {
	catCmd.Flags().IntVar(&catStart, "start", 0, "first line, 1-based inclusive")
	catCmd.Flags().IntVar(&catEnd, "end", 0, "last line, 1-based inclusive")
}
