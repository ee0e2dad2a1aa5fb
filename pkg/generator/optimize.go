package generator

import (
	"context"
	"fmt"
	"strings"
)

const linkedinFocus = `1. Headline optimization
2. About section enhancement
3. Experience descriptions
4. Skills section
5. Keywords for visibility`

const githubFocus = `1. Repository descriptions
2. README.md improvements
3. Profile README enhancement
4. Contribution patterns
5. Project documentation`

const optimizePrompt = `Analyze the following %s profile and provide specific improvements.

Profile data:
%s

Focus on:
%s`

// OptimizeProfile reviews a scraped LinkedIn or GitHub profile and returns
// concrete improvement suggestions. profileType is "linkedin" or "github".
func (g *Generator) OptimizeProfile(ctx context.Context, profileType, profileData string) (string, error) {
	var focus string
	switch strings.ToLower(profileType) {
	case "linkedin":
		focus = linkedinFocus
	case "github":
		focus = githubFocus
	default:
		return "", fmt.Errorf("unsupported profile type %q", profileType)
	}

	if strings.TrimSpace(profileData) == "" {
		return "", fmt.Errorf("empty profile data")
	}

	return g.completer.Complete(ctx, fmt.Sprintf(optimizePrompt, profileType, profileData, focus))
}
