// Package generator renders career material — personal website pages, GitHub
// READMEs, profile improvement notes — from a structured profile via the
// completion service.
package generator

import (
	"fmt"
	"strings"

	"github.com/kmorales/careerforge/internal/models"
	"github.com/kmorales/careerforge/internal/types"
)

type Generator struct {
	completer types.Completer
	outputDir string
}

func New(completer types.Completer, outputDir string) *Generator {
	if outputDir == "" {
		outputDir = "site"
	}
	return &Generator{
		completer: completer,
		outputDir: outputDir,
	}
}

// ProfileSummary renders the structured profile as plain text for embedding
// into generation prompts.
func ProfileSummary(p *models.StructuredProfile) string {
	var b strings.Builder

	if len(p.Education) > 0 {
		b.WriteString("Education:\n")
		for _, e := range p.Education {
			fmt.Fprintf(&b, "- %s, %s, %s (%s - %s)\n",
				e.Degree, e.School, e.Location, e.StartDate, e.EndDate)
		}
	}
	if len(p.Experience) > 0 {
		b.WriteString("Experience:\n")
		for _, e := range p.Experience {
			fmt.Fprintf(&b, "- %s at %s, %s (%s - %s)\n",
				e.Title, e.Company, e.Location, e.StartDate, e.EndDate)
		}
	}
	if len(p.Skills) > 0 {
		fmt.Fprintf(&b, "Skills: %s\n", strings.Join(p.Skills, ", "))
	}
	if len(p.Projects) > 0 {
		b.WriteString("Projects:\n")
		for _, pr := range p.Projects {
			fmt.Fprintf(&b, "- %s: %s (%s - %s)\n",
				pr.Name, pr.Description, pr.StartDate, pr.EndDate)
		}
	}
	if len(p.Languages) > 0 {
		fmt.Fprintf(&b, "Languages: %s\n", strings.Join(p.Languages, ", "))
	}

	return b.String()
}

// sectionFileName converts a navigation section name into its on-disk base
// name, e.g. "About Me" -> "about_me".
func sectionFileName(section string) string {
	return strings.ReplaceAll(strings.ToLower(section), " ", "_")
}
