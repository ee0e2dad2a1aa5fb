package generator_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmorales/careerforge/internal/models"
	"github.com/kmorales/careerforge/pkg/generator"
)

// scriptedCompleter returns canned responses in order and records the prompts
// it was asked.
type scriptedCompleter struct {
	responses []string
	prompts   []string
}

func (s *scriptedCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.prompts = append(s.prompts, prompt)
	if len(s.responses) == 0 {
		return "", nil
	}
	next := s.responses[0]
	s.responses = s.responses[1:]
	return next, nil
}

func sampleProfile() *models.StructuredProfile {
	p := models.NewStructuredProfile()
	p.Experience = []models.ExperienceEntry{
		{Company: "Acme", Title: "Backend Engineer", Location: "Remote", StartDate: "2021", EndDate: "Present"},
	}
	p.Skills = []string{"Go", "PostgreSQL"}
	p.Projects = []models.ProjectEntry{
		{Name: "pipeline", Description: "Streaming ETL toolkit", StartDate: "2022", EndDate: "2023"},
	}
	return p
}

func TestProfileSummary(t *testing.T) {
	text := generator.ProfileSummary(sampleProfile())

	assert.Contains(t, text, "Backend Engineer at Acme")
	assert.Contains(t, text, "Skills: Go, PostgreSQL")
	assert.Contains(t, text, "pipeline: Streaming ETL toolkit")
	assert.NotContains(t, text, "Education:")
}

func TestGenerateSiteWritesFiles(t *testing.T) {
	plan := `{
		"sections": ["Home", "Projects"],
		"section_content": {
			"Home": {"name": "Test User", "title": "Engineer"},
			"Projects": {"relevant_content": "pipeline"}
		},
		"design_theme": {"style": "minimal"}
	}`
	page := "Here you go:\n```html\n<!DOCTYPE html><html></html>\n```\n" +
		"```css\nbody { margin: 0; }\n```\n" +
		"```javascript\nconsole.log('hi');\n```"

	completer := &scriptedCompleter{responses: []string{
		"```json\n" + plan + "\n```",
		"```css\nnav { position: fixed; }\n```",
		"```javascript\nfunction buildNavigation() {}\n```",
		page,
		page,
	}}

	dir := t.TempDir()
	g := generator.New(completer, dir)

	result, err := g.GenerateSite(context.Background(), generator.ProfileSummary(sampleProfile()), "dark theme")
	require.NoError(t, err)

	assert.Contains(t, completer.prompts[0], "dark theme")

	assert.Equal(t, []string{"Home", "Projects"}, result.Sections)
	assert.Contains(t, result.Files, "shared.css")
	assert.Contains(t, result.Files, "shared.js")
	assert.Contains(t, result.Files, "home.html")
	assert.Contains(t, result.Files, "projects.html")
	assert.Contains(t, result.Files, "projects.css")
	assert.Contains(t, result.Files, "projects.js")

	// Page prompts carry the section content and design theme.
	pagePrompt := completer.prompts[len(completer.prompts)-1]
	assert.Contains(t, pagePrompt, "Projects")
	assert.Contains(t, pagePrompt, "minimal")
}

func TestGeneratePageRequiresHTMLBlock(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{"no code here"}}
	g := generator.New(completer, t.TempDir())

	_, err := g.GeneratePage(context.Background(), "Home", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no html block")
}

func TestGenerateReadmeStripsFences(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{
		"```markdown\n# Test User\n\nBackend engineer.\n```",
	}}
	g := generator.New(completer, t.TempDir())

	readme, err := g.GenerateReadme(context.Background(), generator.ProfileSummary(sampleProfile()), "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(readme, "# Test User"))
	assert.NotContains(t, readme, "```")
}

func TestOptimizeProfile(t *testing.T) {
	completer := &scriptedCompleter{responses: []string{"Rewrite your headline."}}
	g := generator.New(completer, t.TempDir())

	suggestions, err := g.OptimizeProfile(context.Background(), "linkedin", "Headline: engineer")
	require.NoError(t, err)
	assert.Equal(t, "Rewrite your headline.", suggestions)

	require.Len(t, completer.prompts, 1)
	assert.Contains(t, completer.prompts[0], "Headline optimization")

	_, err = g.OptimizeProfile(context.Background(), "myspace", "data")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported profile type")
}
