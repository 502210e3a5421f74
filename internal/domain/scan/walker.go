package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	gitignore "github.com/sabhiram/go-gitignore"
)

// WalkOptions narrows which files the walker yields.
type WalkOptions struct {
	// Extensions restricts results to these leading-dot extensions.
	// Nil means no extension filtering.
	Extensions []string

	// UseGitignore additionally excludes paths matched by the project's
	// .gitignore, when one exists at the root. Off by default: the fixed
	// ignore set is the documented filter; this is an extra layer for
	// callers that ask for it.
	UseGitignore bool

	// ExtraIgnore lists additional directory names to prune, on top of the
	// fixed ignore set. Configured per project, empty by default.
	ExtraIgnore []string
}

// Walk enumerates eligible files under root and returns their paths
// relative to root. Ignored directories are pruned without descending.
// The order is the platform's directory-walk order; callers must not rely
// on it being identical across operating systems. Unreadable entries are
// skipped, never fatal.
func Walk(root string, opts WalkOptions) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	extraIgnore := make(map[string]bool, len(opts.ExtraIgnore))
	for _, name := range opts.ExtraIgnore {
		extraIgnore[name] = true
	}

	var ignoreMatcher *gitignore.GitIgnore
	if opts.UseGitignore {
		if m, err := gitignore.CompileIgnoreFile(filepath.Join(absRoot, ".gitignore")); err == nil {
			ignoreMatcher = m
		}
	}

	var files []string
	walkErr := filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entry: skip
		}
		name := d.Name()
		if d.IsDir() {
			if path != absRoot && (SkipName(name) || extraIgnore[name]) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}
		if ShouldSkip(rel) {
			return nil
		}
		if !HasExtension(rel, opts.Extensions) {
			return nil
		}
		if ignoreMatcher != nil && ignoreMatcher.MatchesPath(rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return files, nil
}

// ResolveRoot validates that root exists and is a directory, returning its
// absolute path.
func ResolveRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", abs)
	}
	return abs, nil
}
