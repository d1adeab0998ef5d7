// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/resumeforge/tailor/internal/types"
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

// PrintJDData outputs a human-readable summary of the interpreted job description.
func (p *Printer) PrintJDData(jd *types.JDData) {
	if jd == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:       %s\n", jd.RoleTitle))
	sb.WriteString(fmt.Sprintf("Category:   %s\n", jd.RoleCategory))
	sb.WriteString(fmt.Sprintf("Level:      %s\n", jd.ExperienceLevel))
	sb.WriteString("\n")

	if len(jd.MustHaveSkills) > 0 {
		sb.WriteString("Must-have skills:\n")
		count := min(len(jd.MustHaveSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", jd.MustHaveSkills[i]))
		}
		if len(jd.MustHaveSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(jd.MustHaveSkills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(jd.NiceToHaveSkills) > 0 {
		sb.WriteString("Nice-to-have skills:\n")
		count := min(len(jd.NiceToHaveSkills), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", jd.NiceToHaveSkills[i]))
		}
		if len(jd.NiceToHaveSkills) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(jd.NiceToHaveSkills)-3))
		}
	}

	p.printBox("JD INTERPRETATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResumeDraft outputs the selected sections and skills before rewrite.
func (p *Printer) PrintResumeDraft(draft *types.ResumeDraft) {
	if draft == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Experience sections: %d\n", len(draft.ExperienceSections)))
	sb.WriteString(fmt.Sprintf("Project sections:    %d\n", len(draft.ProjectSections)))
	sb.WriteString(fmt.Sprintf("Selected skills:     %d\n", len(draft.SelectedSkills)))
	sb.WriteString("\n")

	totalBullets := 0
	for _, section := range draft.ExperienceSections {
		totalBullets += len(section.Bullets)
	}
	for _, section := range draft.ProjectSections {
		totalBullets += len(section.Bullets)
	}

	count := min(len(draft.ExperienceSections), maxItemsToShow)
	for i := 0; i < count; i++ {
		section := draft.ExperienceSections[i]
		sb.WriteString(fmt.Sprintf("#%d %s — %d bullet(s), score %.2f\n", i+1, section.Title, len(section.Bullets), section.Score))
	}

	if len(draft.SelectedSkills) > 0 {
		sb.WriteString("\n")
		skills := strings.Join(draft.SelectedSkills, ", ")
		if len(skills) > 45 {
			skills = skills[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("Skills: %s\n", skills))
	}

	p.printBox("SELECTED RESUME DRAFT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResumeDocument outputs the final assembled document, post-rewrite and ATS pass.
func (p *Printer) PrintResumeDocument(doc *types.ResumeDocument) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	count := min(len(doc.ExperienceSections), maxItemsToShow)
	for i := 0; i < count; i++ {
		section := doc.ExperienceSections[i]
		sb.WriteString(fmt.Sprintf("%s\n", section.Title))
		bulletCount := min(len(section.Bullets), 2)
		for j := 0; j < bulletCount; j++ {
			text := section.Bullets[j]
			if len(text) > 50 {
				text = text[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", text))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(doc.ExperienceSections) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more sections", len(doc.ExperienceSections)-maxItemsToShow))
	}

	p.printBox("ASSEMBLED RESUME DOCUMENT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintKeywordCoverage outputs which JD keywords landed in the final document.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintKeywordCoverage(coverage map[string]bool) {
	if len(coverage) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO KEYWORDS TO COVER")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	hit, miss := 0, 0
	for _, covered := range coverage {
		if covered {
			hit++
		} else {
			miss++
		}
	}
	sb.WriteString(fmt.Sprintf("Covered %d/%d keywords\n\n", hit, hit+miss))

	shown := 0
	for kw, covered := range coverage {
		if shown >= maxItemsToShow {
			break
		}
		mark := "✓"
		if !covered {
			mark = "✗"
		}
		sb.WriteString(fmt.Sprintf("%s %s\n", mark, kw))
		shown++
	}
	if len(coverage) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(coverage)-maxItemsToShow))
	}

	p.printBox("KEYWORD COVERAGE", strings.TrimSuffix(sb.String(), "\n"))
}
