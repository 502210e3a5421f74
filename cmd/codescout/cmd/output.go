package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/codescout/codescout/internal/app"
	"github.com/codescout/codescout/internal/domain/index"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorCyan  = "\033[36m"
	colorGreen = "\033[32m"
	colorGray  = "\033[90m"
)

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatMatches renders text/reference matches grep-style:
//
//	file:line:col: content
//	      context lines in gray, prefixed by their line numbers
func formatMatches(res *app.Result) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s%d matches%s", colorBold, res.TotalMatches, colorReset))
	if res.Truncated {
		sb.WriteString(fmt.Sprintf(" (showing first %d)", len(res.Matches)))
	}
	sb.WriteString("\n")

	for _, m := range res.Matches {
		writeContext(&sb, m.ContextBefore, m.Line-len(m.ContextBefore))
		sb.WriteString(fmt.Sprintf("  %s%s%s:%d:%d: %s\n",
			colorCyan, m.File, colorReset, m.Line, m.Column, m.Content))
		writeContext(&sb, m.ContextAfter, m.Line+1)
	}
	return sb.String()
}

func writeContext(sb *strings.Builder, lines []string, startLine int) {
	for i, line := range lines {
		sb.WriteString(fmt.Sprintf("  %s%d│ %s%s\n", colorGray, startLine+i, line, colorReset))
	}
}

// formatSymbols renders symbol records one per line.
func formatSymbols(records []index.SymbolRecord) string {
	if len(records) == 0 {
		return "no matching symbols\n"
	}
	var sb strings.Builder
	for _, rec := range records {
		sb.WriteString(fmt.Sprintf("  %s%s%s:%d  %s%s%s %s",
			colorCyan, rec.File, colorReset, rec.Line,
			colorGreen, rec.Kind, colorReset, rec.Name))
		if rec.FromModule != "" {
			sb.WriteString(fmt.Sprintf("  %sfrom %s%s", colorGray, rec.FromModule, colorReset))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
