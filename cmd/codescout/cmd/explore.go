package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Show project structure and statistics",
	RunE:  runExplore,
}

func runExplore(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	overview, err := engine.Explore()
	if err != nil {
		return err
	}

	if flagJSON {
		return printJSON(overview)
	}

	fmt.Printf("%s%s%s\n", colorBold, overview.Root, colorReset)
	for _, entry := range overview.Structure {
		if entry.Type == "directory" {
			fmt.Printf("  %s%s/%s\n", colorCyan, entry.Name, colorReset)
		} else {
			fmt.Printf("  %s\n", entry.Name)
		}
	}
	if overview.Truncated {
		fmt.Printf("  %s...%s\n", colorGray, colorReset)
	}

	stats := overview.Stats
	fmt.Printf("\n%d files (%d code), %d directories, %d bytes\n",
		stats.TotalFiles, stats.CodeFiles, stats.Directories, stats.TotalSize)

	exts := make([]string, 0, len(stats.ByExtension))
	for ext := range stats.ByExtension {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	for _, ext := range exts {
		fmt.Printf("  %s: %d\n", ext, stats.ByExtension[ext])
	}
	return nil
}
