// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
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

// PrintResume outputs a human-readable summary of a saved resume.
func (p *Printer) PrintResume(saved *types.SavedResume) {
	if saved == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:   %s\n", saved.Title))
	sb.WriteString(fmt.Sprintf("Status:  %s\n", saved.Status))
	sb.WriteString(fmt.Sprintf("Updated: %s", saved.UpdatedAt))

	p.printBox("SAVED RESUME", sb.String())

	data := saved.Data()
	p.PrintPersonalInfo(data.PersonalInfo)
	p.PrintWorkExperience(data.WorkExperience)
	p.PrintSkills(data.Skills)
	p.PrintSummary(data.Summary)
}

// PrintPersonalInfo outputs the contact section.
func (p *Printer) PrintPersonalInfo(info types.PersonalInfo) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s %s\n", info.FirstName, info.LastName))
	sb.WriteString(fmt.Sprintf("Email:    %s\n", info.Email))
	sb.WriteString(fmt.Sprintf("Phone:    %s\n", info.Phone))
	sb.WriteString(fmt.Sprintf("Location: %s", info.Location))
	if info.Website != "" {
		sb.WriteString(fmt.Sprintf("\nWebsite:  %s", info.Website))
	}

	p.printBox("CONTACT", sb.String())
}

// PrintWorkExperience outputs the top work experience entries.
func (p *Printer) PrintWorkExperience(entries []types.WorkExperience) {
	if len(entries) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total entries: %d\n\n", len(entries)))

	count := min(len(entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		entry := entries[i]
		sb.WriteString(fmt.Sprintf("• %s at %s\n", entry.Position, entry.Company))

		end := validation.FormatDate(entry.EndDate)
		if entry.Current {
			end = "Present"
		}
		sb.WriteString(fmt.Sprintf("  %s - %s\n", validation.FormatDate(entry.StartDate), end))

		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more entries", len(entries)-maxItemsToShow))
	}

	p.printBox("WORK EXPERIENCE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSkills outputs skills grouped by category.
func (p *Printer) PrintSkills(skills []types.Skill) {
	if len(skills) == 0 {
		return
	}

	grouped := make(map[string][]string)
	for _, skill := range skills {
		grouped[skill.Category] = append(grouped[skill.Category], fmt.Sprintf("%s (%s)", skill.Name, skill.Level))
	}

	var sb strings.Builder
	first := true
	for _, category := range types.SkillCategories {
		names, ok := grouped[category]
		if !ok {
			continue
		}
		if !first {
			sb.WriteString("\n")
		}
		first = false

		joined := strings.Join(names, ", ")
		if len(joined) > 40 {
			joined = joined[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("%s:\n  %s", category, joined))
	}

	p.printBox("SKILLS", sb.String())
}

// PrintSummary outputs the professional summary.
func (p *Printer) PrintSummary(summary types.Summary) {
	if summary.Content == "" {
		return
	}

	p.printBox("PROFESSIONAL SUMMARY", wrap(summary.Content, boxWidth-6))
}

// wrap breaks text into lines no longer than width
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	lineLen := 0
	for i, word := range words {
		if i > 0 {
			if lineLen+1+len(word) > width {
				sb.WriteString("\n")
				lineLen = 0
			} else {
				sb.WriteString(" ")
				lineLen++
			}
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}
