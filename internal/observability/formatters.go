// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/optihire/internal/api"
	"github.com/jonathan/optihire/internal/poller"
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

// PrintResume outputs a human-readable summary of a fully parsed resume.
func (p *Printer) PrintResume(resume *api.ResumeComplete) {
	if resume == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Version:  %s\n", resume.VersionName))
	if resume.FullName != nil {
		sb.WriteString(fmt.Sprintf("Name:     %s\n", *resume.FullName))
	}
	if resume.Email != nil {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", *resume.Email))
	}
	sb.WriteString(fmt.Sprintf("Status:   %s\n", resume.ProcessingStatus))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("Experiences:    %d\n", len(resume.Experiences)))
	sb.WriteString(fmt.Sprintf("Education:      %d\n", len(resume.Education)))
	sb.WriteString(fmt.Sprintf("Skills:         %d\n", len(resume.Skills)))
	sb.WriteString(fmt.Sprintf("Projects:       %d\n", len(resume.Projects)))
	sb.WriteString(fmt.Sprintf("Certifications: %d", len(resume.Certifications)))

	if len(resume.Experiences) > 0 {
		sb.WriteString("\n\nRecent Experience:\n")
		count := min(len(resume.Experiences), maxItemsToShow)
		for i := 0; i < count; i++ {
			exp := resume.Experiences[i]
			sb.WriteString(fmt.Sprintf("  • %s, %s\n", exp.JobTitle, exp.CompanyName))
		}
		if len(resume.Experiences) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(resume.Experiences)-maxItemsToShow))
		}
	}

	p.printBox("RESUME "+resume.ID.String(), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResumeList outputs a compact table of the user's resume versions.
func (p *Printer) PrintResumeList(items []api.ResumeListItem) {
	if len(items) == 0 {
		fmt.Fprintln(p.out, "No resumes found.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total: %d\n\n", len(items)))

	for i, item := range items {
		marker := " "
		if item.IsPrimary {
			marker = "*"
		}
		name := item.VersionName
		if len(name) > 28 {
			name = name[:25] + "..."
		}
		sb.WriteString(fmt.Sprintf("%s %-28s %s\n", marker, name, item.ProcessingStatus))
		if i >= maxItemsToShow*4 {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(items)-i-1))
			break
		}
	}

	p.printBox("RESUME VERSIONS (* = primary)", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintParseProgress outputs a single status-check line during polling.
func (p *Printer) PrintParseProgress(state poller.State, maxAttempts int) {
	fmt.Fprintf(p.out, "Parse check %d/%d: %s\n", state.Attempt, maxAttempts, state.Status)
}

// PrintParseStatus outputs a one-shot status report for a resume parse.
func (p *Printer) PrintParseStatus(status *api.ParseStatus) {
	if status == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Status:   %s\n", status.Status))
	if status.Message != "" {
		sb.WriteString(fmt.Sprintf("Message:  %s\n", status.Message))
	}
	if status.ErrorDetails != nil && *status.ErrorDetails != "" {
		sb.WriteString(fmt.Sprintf("Error:    %s\n", *status.ErrorDetails))
	}
	sb.WriteString(fmt.Sprintf("Updated:  %s", status.UpdatedAt.Format(time.RFC3339)))

	p.printBox("PARSE STATUS "+status.ID.String(), sb.String())
}

// PrintDraft outputs a summary of the locally persisted draft.
func (p *Printer) PrintDraft(versionName string, lastSaved time.Time, autoSave bool) {
	var sb strings.Builder
	name := versionName
	if name == "" {
		name = "(unnamed)"
	}
	sb.WriteString(fmt.Sprintf("Version:    %s\n", name))
	sb.WriteString(fmt.Sprintf("Last saved: %s\n", lastSaved.Local().Format("2006-01-02 15:04:05")))
	kind := "manual save"
	if autoSave {
		kind = "autosave"
	}
	sb.WriteString(fmt.Sprintf("Saved by:   %s", kind))

	p.printBox("UNSAVED DRAFT", sb.String())
}
