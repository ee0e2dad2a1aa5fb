package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const sitePlanPrompt = `You are a JSON generator. Analyze the candidate profile below and plan a personal website.

Output a JSON object with:
1. Recommended sections (always include Home)
2. Key information for each section
3. A single, consistent design theme

Required JSON structure:
{
    "sections": ["Home", "..."],
    "section_content": {
        "Home": {"name": "...", "title": "...", "brief_intro": "..."},
        "additional_section": {"relevant_content": "..."}
    },
    "design_theme": {
        "color_scheme": ["primary", "secondary", "accent"],
        "typography": {"heading_font": "...", "body_font": "..."},
        "style": "minimal/modern/etc"
    }
}

Return ONLY the JSON object. No additional text or markdown formatting.

Candidate profile:
%s

Styling preferences from the candidate (may be empty):
%s`

const pagePrompt = `Create a "%s" page for a personal website that uses a shared navigation structure.
Use this content: %s
Follow these design guidelines: %s

The HTML must:
1. Link shared.css and %s.css in <head>
2. Include <header id="main-header"><nav id="main-nav"></nav></header>
3. Load shared.js and %s.js at the end of <body>
4. Use clean, semantic markup

Respond with exactly three fenced code blocks tagged html, css and javascript.`

const sharedCSSPrompt = `Create a shared CSS file for a personal website: fixed top navigation with a
mobile dropdown, header/main/footer layout, CSS custom properties for colors,
a typography scale and responsive breakpoints.
Design theme: %s

Respond with a single fenced code block tagged css.`

const sharedJSPrompt = `Create a shared JavaScript file that builds the site navigation on page load
from these sections: %s. Create nav links dynamically, highlight the current
page and handle the mobile menu toggle.

Respond with a single fenced code block tagged javascript.`

// SitePlan is the layout the model proposes for the generated website.
type SitePlan struct {
	Sections       []string                   `json:"sections"`
	SectionContent map[string]json.RawMessage `json:"section_content"`
	DesignTheme    json.RawMessage            `json:"design_theme"`
}

// PageCode holds the three generated source files of one page.
type PageCode struct {
	HTML string
	CSS  string
	JS   string
}

// SiteResult reports what GenerateSite wrote to disk.
type SiteResult struct {
	Sections []string
	Files    []string
}

// PlanSite asks the model for a section layout and design theme derived from
// the profile and the candidate's styling preferences.
func (g *Generator) PlanSite(ctx context.Context, profileText, preferences string) (*SitePlan, error) {
	if strings.TrimSpace(profileText) == "" {
		return nil, fmt.Errorf("empty profile")
	}

	response, err := g.completer.Complete(ctx, fmt.Sprintf(sitePlanPrompt, profileText, preferences))
	if err != nil {
		return nil, err
	}

	var plan SitePlan
	if err := json.Unmarshal([]byte(cleanCodeBlock(response)), &plan); err != nil {
		return nil, fmt.Errorf("site plan is not valid JSON: %w", err)
	}
	if len(plan.Sections) == 0 {
		plan.Sections = []string{"Home"}
	}
	return &plan, nil
}

// GeneratePage produces the HTML, CSS and JS for one section.
func (g *Generator) GeneratePage(ctx context.Context, section string, content, theme json.RawMessage) (*PageCode, error) {
	base := sectionFileName(section)
	prompt := fmt.Sprintf(pagePrompt, section, rawOrEmpty(content), rawOrEmpty(theme), base, base)

	response, err := g.completer.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	page := &PageCode{
		HTML: extractCodeBlock(response, "html"),
		CSS:  extractCodeBlock(response, "css"),
		JS:   extractCodeBlock(response, "javascript"),
	}
	if page.HTML == "" {
		return nil, fmt.Errorf("page %q: response has no html block", section)
	}
	return page, nil
}

// GenerateSite plans the site, generates shared assets and every page, and
// writes the files under the output directory.
func (g *Generator) GenerateSite(ctx context.Context, profileText, preferences string) (*SiteResult, error) {
	plan, err := g.PlanSite(ctx, profileText, preferences)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(g.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	result := &SiteResult{Sections: plan.Sections}

	shared, err := g.generateSharedAssets(ctx, plan)
	if err != nil {
		return nil, err
	}
	result.Files = append(result.Files, shared...)

	for _, section := range plan.Sections {
		page, err := g.GeneratePage(ctx, section, plan.SectionContent[section], plan.DesignTheme)
		if err != nil {
			return nil, err
		}
		files, err := g.savePage(section, page)
		if err != nil {
			return nil, err
		}
		result.Files = append(result.Files, files...)
	}

	return result, nil
}

func (g *Generator) generateSharedAssets(ctx context.Context, plan *SitePlan) ([]string, error) {
	sections, _ := json.Marshal(plan.Sections)

	cssResp, err := g.completer.Complete(ctx, fmt.Sprintf(sharedCSSPrompt, rawOrEmpty(plan.DesignTheme)))
	if err != nil {
		return nil, err
	}
	jsResp, err := g.completer.Complete(ctx, fmt.Sprintf(sharedJSPrompt, sections))
	if err != nil {
		return nil, err
	}

	var files []string
	for _, asset := range []struct {
		name, body string
	}{
		{"shared.css", firstNonEmpty(extractCodeBlock(cssResp, "css"), cleanCodeBlock(cssResp))},
		{"shared.js", firstNonEmpty(extractCodeBlock(jsResp, "javascript"), cleanCodeBlock(jsResp))},
	} {
		path := filepath.Join(g.outputDir, asset.name)
		if err := os.WriteFile(path, []byte(asset.body), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", asset.name, err)
		}
		files = append(files, asset.name)
	}
	return files, nil
}

func (g *Generator) savePage(section string, page *PageCode) ([]string, error) {
	base := sectionFileName(section)

	var files []string
	for _, f := range []struct {
		ext, body string
	}{
		{".html", page.HTML},
		{".css", page.CSS},
		{".js", page.JS},
	} {
		name := base + f.ext
		if err := os.WriteFile(filepath.Join(g.outputDir, name), []byte(f.body), 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		files = append(files, name)
	}
	return files, nil
}

func rawOrEmpty(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "{}"
	}
	return string(raw)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
