package metrics

import (
	"fmt"
	"regexp"
	"strings"
)

// PatternMatch is one occurrence of a named pattern. Line is 1-based;
// Start and End are byte offsets into the file content.
type PatternMatch struct {
	Pattern string `json:"pattern"`
	Line    int    `json:"line"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Text    string `json:"text"`
}

// FindPatterns matches each regex in patterns against content and returns
// the occurrences in (pattern, position) order. Patterns compile in
// multiline mode so ^ and $ anchor per line. A pattern that fails to
// compile aborts the whole call: the caller supplied it and should hear
// about the mistake rather than get partial results.
func FindPatterns(content string, patterns []string) ([]PatternMatch, error) {
	var matches []PatternMatch
	for _, pat := range patterns {
		re, err := regexp.Compile("(?m)" + pat)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pat, err)
		}
		for _, loc := range re.FindAllStringIndex(content, -1) {
			matches = append(matches, PatternMatch{
				Pattern: pat,
				Line:    strings.Count(content[:loc[0]], "\n") + 1,
				Start:   loc[0],
				End:     loc[1],
				Text:    content[loc[0]:loc[1]],
			})
		}
	}
	return matches, nil
}
