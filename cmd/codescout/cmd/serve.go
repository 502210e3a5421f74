package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/codescout/codescout/internal/adapters/fsnotify"
	"github.com/codescout/codescout/internal/app"
	"github.com/codescout/codescout/internal/config"
	"github.com/codescout/codescout/internal/server"
)

var serveCache bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: "Exposes every operation as an MCP tool on stdin/stdout. With --cache the " +
		"symbol index is reused across queries and invalidated on filesystem changes.",
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	cfg, err := config.Load(engine.Root())
	if err != nil {
		return err
	}

	if serveCache || cfg.CacheIndex {
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return err
		}
		session, err := app.NewSession(engine, watcher)
		if err != nil {
			return err
		}
		defer session.Close()
		slog.Info("index caching enabled", "root", engine.Root())
	}

	slog.Info("serving MCP over stdio", "root", engine.Root())
	return server.New(engine).Run(cmd.Context())
}

func init() {
	serveCmd.Flags().BoolVar(&serveCache, "cache", false, "reuse the symbol index across queries, invalidating on file changes")
}
