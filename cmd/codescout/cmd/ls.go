package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	lsRecursive bool
	lsCodeOnly  bool
)

var lsCmd = &cobra.Command{
	Use:   "ls [dir]",
	Short: "List files with size and modification time",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLs,
}

func runLs(cmd *cobra.Command, args []string) error {
	dir := ""
	if len(args) == 1 {
		dir = args[0]
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}

	files, err := engine.ListFiles(dir, lsRecursive, lsCodeOnly)
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(files)
	}

	for _, f := range files {
		fmt.Printf("  %8d  %s  %s%s%s\n",
			f.Size, f.Modified.Format("2006-01-02 15:04"), colorCyan, f.Path, colorReset)
	}
	return nil
}

func init() {
	lsCmd.Flags().BoolVarP(&lsRecursive, "recursive", "R", false, "descend into subdirectories")
	lsCmd.Flags().BoolVar(&lsCodeOnly, "code-only", false, "keep only recognized code files")
}
