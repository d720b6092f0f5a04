// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/job-radar/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a human-readable summary of the candidate profile
// being matched.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	if profile.FullName != "" {
		sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.FullName))
	}
	if profile.Location != "" {
		sb.WriteString(fmt.Sprintf("Location: %s\n", profile.Location))
	}
	if len(profile.DesiredRoles) > 0 {
		sb.WriteString(fmt.Sprintf("Roles:    %s\n", strings.Join(profile.DesiredRoles, ", ")))
	}
	if profile.SalaryMin != nil || profile.SalaryMax != nil {
		sb.WriteString(fmt.Sprintf("Salary:   %s\n", formatSalaryRange(profile.SalaryMin, profile.SalaryMax)))
	}

	if len(profile.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		sb.WriteString(formatList(profile.Skills))
	}
	if len(profile.Languages) > 0 {
		sb.WriteString("\nLanguages:\n")
		for code, level := range profile.Languages {
			sb.WriteString(fmt.Sprintf("  • %s: %s\n", code, level))
		}
	}

	p.printBox("CANDIDATE PROFILE", sb.String())
}

// PrintMatch outputs one ranked match with its score breakdown.
func (p *Printer) PrintMatch(rank int, vacancy *types.Vacancy, match types.Match) {
	var sb strings.Builder

	title := "(unknown vacancy)"
	if vacancy != nil {
		title = vacancy.Title
		if vacancy.Company != "" {
			title = fmt.Sprintf("%s — %s", vacancy.Title, vacancy.Company)
		}
	}
	sb.WriteString(fmt.Sprintf("%s\n", title))
	sb.WriteString(fmt.Sprintf("Score: %.1f\n", match.Score))

	if len(match.Reasons) > 0 {
		sb.WriteString("\nReasons:\n")
		sb.WriteString(formatList(match.Reasons))
	}
	if len(match.MatchedSkills) > 0 {
		sb.WriteString("\nMatched skills:\n")
		sb.WriteString(formatList(match.MatchedSkills))
	}
	if len(match.MissingSkills) > 0 {
		sb.WriteString("\nMissing skills:\n")
		sb.WriteString(formatList(match.MissingSkills))
	}

	p.printBox(fmt.Sprintf("MATCH #%d", rank), sb.String())
}

// PrintImportRun outputs the outcome of one ingestion pass.
func (p *Printer) PrintImportRun(source types.SourceConfig, run *types.ImportRun) {
	if run == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Source:   %s (%s)\n", source.Name, source.Type))
	if source.URL != "" {
		sb.WriteString(fmt.Sprintf("URL:      %s\n", source.URL))
	}
	sb.WriteString(fmt.Sprintf("Status:   %s\n", run.Status))
	sb.WriteString(fmt.Sprintf("Inserted: %d\n", run.InsertedCount))
	sb.WriteString(fmt.Sprintf("Updated:  %d\n", run.UpdatedCount))
	if run.FinishedAt != nil {
		sb.WriteString(fmt.Sprintf("Duration: %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond)))
	}
	if run.Error != "" {
		sb.WriteString(fmt.Sprintf("Error:    %s\n", run.Error))
	}

	p.printBox("IMPORT RUN", sb.String())
}

// formatList renders items as bullets, truncating after maxItemsToShow.
func formatList(items []string) string {
	var sb strings.Builder
	for i, item := range items {
		if i >= maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-maxItemsToShow))
			break
		}
		sb.WriteString(fmt.Sprintf("  • %s\n", item))
	}
	return sb.String()
}

func formatSalaryRange(min, max *float64) string {
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("%.0f – %.0f", *min, *max)
	case min != nil:
		return fmt.Sprintf("from %.0f", *min)
	case max != nil:
		return fmt.Sprintf("up to %.0f", *max)
	default:
		return ""
	}
}
