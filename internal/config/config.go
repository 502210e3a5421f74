// Package config loads per-project settings from .codescout.toml at the
// project root. A missing file is not an error; defaults apply.
package config

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the per-project configuration file looked up at the root.
const FileName = ".codescout.toml"

// Config holds the tunable knobs. Zero values in the file mean "keep the
// default" for the numeric caps.
type Config struct {
	ContextLines        int      `toml:"context_lines"`
	AdvancedResultCap   int      `toml:"advanced_result_cap"`
	SearchFilesCap      int      `toml:"search_files_cap"`
	SearchFilesMatchCap int      `toml:"search_files_match_cap"`
	ExtraIgnoreDirs     []string `toml:"extra_ignore_dirs"`
	UseGitignore        bool     `toml:"use_gitignore"`
	CacheIndex          bool     `toml:"cache_index"`
}

// Default returns the documented defaults: 2 context lines, 50 advanced
// results, 20 files x 5 matches for search-files.
func Default() Config {
	return Config{
		ContextLines:        2,
		AdvancedResultCap:   50,
		SearchFilesCap:      20,
		SearchFilesMatchCap: 5,
	}
}

// Load reads root/.codescout.toml over the defaults. A missing file
// returns the defaults; a malformed file is an error.
func Load(root string) (Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(filepath.Join(root, FileName), &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Config{}, err
	}
	if cfg.ContextLines <= 0 {
		cfg.ContextLines = Default().ContextLines
	}
	if cfg.AdvancedResultCap <= 0 {
		cfg.AdvancedResultCap = Default().AdvancedResultCap
	}
	if cfg.SearchFilesCap <= 0 {
		cfg.SearchFilesCap = Default().SearchFilesCap
	}
	if cfg.SearchFilesMatchCap <= 0 {
		cfg.SearchFilesMatchCap = Default().SearchFilesMatchCap
	}
	return cfg, nil
}
