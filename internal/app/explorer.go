package app

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/codescout/codescout/internal/domain/scan"
)

// exploreEntryCap bounds the first-level structure listing in Explore.
const exploreEntryCap = 20

// DirEntrySummary is one first-level entry in the project overview.
type DirEntrySummary struct {
	Name string `json:"name"`
	Type string `json:"type"` // "directory" or "file"
}

// ProjectStats aggregates whole-tree counts for the overview.
type ProjectStats struct {
	TotalFiles  int            `json:"total_files"`
	CodeFiles   int            `json:"code_files"`
	Directories int            `json:"directories"`
	TotalSize   int64          `json:"total_size"`
	ByExtension map[string]int `json:"by_extension"`
}

// ProjectOverview is the result of Explore.
type ProjectOverview struct {
	Root      string            `json:"root"`
	Structure []DirEntrySummary `json:"structure"`
	Truncated bool              `json:"truncated,omitempty"`
	Stats     ProjectStats      `json:"stats"`
}

// Explore returns the first-level structure of the project plus aggregate
// stats over the whole tree. The structure lists directories first, each
// group sorted by name, and is cut at 20 entries with the Truncated flag
// set.
func (e *Engine) Explore() (*ProjectOverview, error) {
	if e == nil || e.root == "" {
		return nil, ErrProjectNotInitialized
	}

	entries, err := os.ReadDir(e.root)
	if err != nil {
		return nil, opErr("explore_project", e.root, err)
	}

	var dirs, files []DirEntrySummary
	for _, entry := range entries {
		if scan.SkipName(entry.Name()) {
			continue
		}
		if entry.IsDir() {
			dirs = append(dirs, DirEntrySummary{Name: entry.Name(), Type: "directory"})
		} else {
			files = append(files, DirEntrySummary{Name: entry.Name(), Type: "file"})
		}
	}
	sort.Slice(dirs, func(i, j int) bool { return dirs[i].Name < dirs[j].Name })
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	overview := &ProjectOverview{
		Root:      e.root,
		Structure: append(dirs, files...),
		Stats:     ProjectStats{ByExtension: make(map[string]int)},
	}
	if len(overview.Structure) > exploreEntryCap {
		overview.Structure = overview.Structure[:exploreEntryCap]
		overview.Truncated = true
	}

	err = filepath.WalkDir(e.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if path != e.root && scan.SkipName(name) {
				return filepath.SkipDir
			}
			if path != e.root {
				overview.Stats.Directories++
			}
			return nil
		}
		if scan.SkipName(name) {
			return nil
		}
		overview.Stats.TotalFiles++
		if scan.IsCodeFile(name) {
			overview.Stats.CodeFiles++
			ext := strings.ToLower(filepath.Ext(name))
			overview.Stats.ByExtension[ext]++
		}
		if info, err := d.Info(); err == nil {
			overview.Stats.TotalSize += info.Size()
		}
		return nil
	})
	if err != nil {
		return nil, opErr("explore_project", e.root, err)
	}
	return overview, nil
}

// FileInfo is one entry in a directory listing.
type FileInfo struct {
	Path      string    `json:"path"` // relative to the project root
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	Extension string    `json:"extension"`
	Modified  time.Time `json:"modified"`
}

// ListFiles lists files under dir (relative to the root), sorted by
// extension then name. With recursive set it descends the whole subtree;
// with codeOnly set it keeps only recognized code files.
func (e *Engine) ListFiles(dir string, recursive, codeOnly bool) ([]FileInfo, error) {
	if e == nil || e.root == "" {
		return nil, ErrProjectNotInitialized
	}
	absDir, err := e.resolvePath(dir)
	if err != nil {
		return nil, err
	}

	var infos []FileInfo
	appendFile := func(path string, info fs.FileInfo) {
		rel, err := filepath.Rel(e.root, path)
		if err != nil {
			return
		}
		if scan.ShouldSkip(rel) {
			return
		}
		if codeOnly && !scan.IsCodeFile(rel) {
			return
		}
		infos = append(infos, FileInfo{
			Path:      filepath.ToSlash(rel),
			Name:      info.Name(),
			Size:      info.Size(),
			Extension: strings.ToLower(filepath.Ext(info.Name())),
			Modified:  info.ModTime(),
		})
	}

	if recursive {
		err = filepath.WalkDir(absDir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if d.IsDir() {
				if path != absDir && scan.SkipName(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			if info, err := d.Info(); err == nil {
				appendFile(path, info)
			}
			return nil
		})
		if err != nil {
			return nil, opErr("list_files", dir, err)
		}
	} else {
		entries, err := os.ReadDir(absDir)
		if err != nil {
			return nil, opErr("list_files", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if info, err := entry.Info(); err == nil {
				appendFile(filepath.Join(absDir, entry.Name()), info)
			}
		}
	}

	sort.Slice(infos, func(i, j int) bool {
		if infos[i].Extension != infos[j].Extension {
			return infos[i].Extension < infos[j].Extension
		}
		return infos[i].Name < infos[j].Name
	})
	return infos, nil
}

// FileContent is the result of ReadFile.
type FileContent struct {
	Path       string `json:"path"`
	Content    string `json:"content"`
	StartLine  int    `json:"start_line"`
	EndLine    int    `json:"end_line"`
	TotalLines int    `json:"total_lines"`
}

// ReadFile returns file content, optionally sliced to a 1-based inclusive
// line range clamped to the file. Content that is not valid UTF-8 is
// decoded as Latin-1 rather than rejected, so byte-for-byte legacy files
// stay readable.
func (e *Engine) ReadFile(path string, startLine, endLine int) (*FileContent, error) {
	if e == nil || e.root == "" {
		return nil, ErrProjectNotInitialized
	}
	abs, err := e.resolvePath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, opErr("read_file", path, err)
	}

	content := string(data)
	if !utf8.Valid(data) {
		content = decodeLatin1(data)
	}

	lines := strings.Split(content, "\n")
	total := len(lines)

	if startLine <= 0 {
		startLine = 1
	}
	if endLine <= 0 || endLine > total {
		endLine = total
	}
	if startLine > total {
		startLine = total
	}
	if startLine > endLine {
		startLine = endLine
	}

	return &FileContent{
		Path:       filepath.ToSlash(path),
		Content:    strings.Join(lines[startLine-1:endLine], "\n"),
		StartLine:  startLine,
		EndLine:    endLine,
		TotalLines: total,
	}, nil
}

// decodeLatin1 maps each byte to the equivalent rune. Never fails; every
// byte sequence is valid Latin-1.
func decodeLatin1(data []byte) string {
	runes := make([]rune, len(data))
	for i, b := range data {
		runes[i] = rune(b)
	}
	return string(runes)
}

// FileMatch is one matched line from SearchFiles.
type FileMatch struct {
	Line    int    `json:"line"`
	Content string `json:"content"`
}

// FileSearchResult groups the matches found in one file. TotalMatches is
// the true per-file count even when Matches was cut at the per-file cap.
type FileSearchResult struct {
	File         string      `json:"file"`
	Matches      []FileMatch `json:"matches"`
	TotalMatches int         `json:"total_matches"`
}

// FileSearchResults is the capped result set of SearchFiles. TotalFiles is
// the true number of files with at least one match.
type FileSearchResults struct {
	Results    []FileSearchResult `json:"results"`
	TotalFiles int                `json:"total_files"`
	Truncated  bool               `json:"truncated,omitempty"`
}

// SearchFiles runs a plain substring search over code files. It reports at
// most FileCap files and MatchesPerFile matches per file, with true totals
// alongside. For regex or word-boundary searches use a TextQuery instead.
func (e *Engine) SearchFiles(query, filePattern string, caseSensitive bool) (*FileSearchResults, error) {
	if e == nil || e.root == "" {
		return nil, ErrProjectNotInitialized
	}

	files, err := scan.Walk(e.root, scan.WalkOptions{
		Extensions:   scan.ParseFilePattern(filePattern),
		UseGitignore: e.opts.UseGitignore,
		ExtraIgnore:  e.opts.ExtraIgnore,
	})
	if err != nil {
		return nil, opErr("search_files", e.root, err)
	}

	needle := query
	if !caseSensitive {
		needle = strings.ToLower(query)
	}

	results := &FileSearchResults{}
	for _, rel := range files {
		if !scan.IsCodeFile(rel) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(e.root, rel))
		if err != nil || !utf8.Valid(data) {
			continue
		}

		var matches []FileMatch
		totalInFile := 0
		for i, line := range strings.Split(strings.TrimSuffix(string(data), "\n"), "\n") {
			haystack := line
			if !caseSensitive {
				haystack = strings.ToLower(line)
			}
			if !strings.Contains(haystack, needle) {
				continue
			}
			totalInFile++
			if len(matches) < e.opts.MatchesPerFile {
				matches = append(matches, FileMatch{Line: i + 1, Content: strings.TrimSuffix(line, "\r")})
			}
		}
		if totalInFile == 0 {
			continue
		}

		results.TotalFiles++
		if len(results.Results) < e.opts.FileCap {
			results.Results = append(results.Results, FileSearchResult{
				File:         filepath.ToSlash(rel),
				Matches:      matches,
				TotalMatches: totalInFile,
			})
		} else {
			results.Truncated = true
		}
	}
	return results, nil
}
