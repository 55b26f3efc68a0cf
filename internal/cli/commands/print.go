package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/rcpassos/rasalint/internal/rules"
	"github.com/rcpassos/rasalint/internal/validator"
)

var (
	fileStyle    = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func severityLabel(s rules.Severity) string {
	switch s {
	case rules.SeverityError:
		return errorStyle.Render("error  ")
	case rules.SeverityWarning:
		return warningStyle.Render("warning")
	default:
		return infoStyle.Render("info   ")
	}
}

// printReport writes the routed issues grouped by file, then a summary line.
func printReport(w io.Writer, root string, report *validator.Report) {
	paths := make([]string, 0, len(report.ByFile))
	for p := range report.ByFile {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		fmt.Fprintln(w, fileStyle.Render(rel))
		for _, issue := range report.ByFile[path] {
			fmt.Fprintf(w, "  %s %s %s\n",
				severityLabel(issue.Severity),
				mutedStyle.Render(string(issue.Kind)),
				issue.Message)
		}
	}

	for _, skipped := range report.Skipped {
		rel, err := filepath.Rel(root, skipped.Path)
		if err != nil {
			rel = skipped.Path
		}
		fmt.Fprintf(w, "%s %s: %v\n", warningStyle.Render("skipped"), rel, skipped.Err)
	}

	fmt.Fprintf(w, "%d issues (%d errors) in %d files\n",
		len(report.Issues), report.ErrorCount(), len(report.ByFile))
}
