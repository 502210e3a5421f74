package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/codescout/codescout/internal/adapters/treesitter"
	"github.com/codescout/codescout/internal/app"
	"github.com/codescout/codescout/internal/config"
)

var (
	flagRoot  string
	flagDebug bool
	flagJSON  bool
)

var rootCmd = &cobra.Command{
	Use:   "codescout",
	Short: "codescout — project indexing and code search",
	Long:  "Symbol lookup, text search, import analysis, and file metrics for source trees.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if flagDebug {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
	SilenceUsage: true,
}

// newEngine builds an engine for the selected project root, applying
// .codescout.toml when present.
func newEngine() (*app.Engine, error) {
	root := flagRoot
	if root == "" {
		dir, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		root = dir
	}

	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	return app.NewEngine(root, treesitter.NewParser(), app.Options{
		ContextLines:   cfg.ContextLines,
		ResultCap:      cfg.AdvancedResultCap,
		FileCap:        cfg.SearchFilesCap,
		MatchesPerFile: cfg.SearchFilesMatchCap,
		UseGitignore:   cfg.UseGitignore,
		ExtraIgnore:    cfg.ExtraIgnoreDirs,
	})
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagRoot, "root", "", "project root (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON instead of formatted output")

	rootCmd.AddCommand(exploreCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(catCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(symbolCmd)
	rootCmd.AddCommand(refsCmd)
	rootCmd.AddCommand(defCmd)
	rootCmd.AddCommand(importsCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(patternsCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(serveCmd)
}
