package generator

import (
	"context"
	"fmt"
	"strings"
)

const readmePrompt = `Write a GitHub profile README in Markdown for the candidate below.

Include:
1. A short headline and introduction
2. A "What I work with" section built from the listed skills
3. Highlighted projects with one-line descriptions
4. A closing section on how to get in touch

Only use information present in the profile. Do not invent links, statistics
or badges for services the profile does not mention.

Respond with the Markdown document only.

Candidate profile:
%s

Additional instructions from the candidate (may be empty):
%s`

// GenerateReadme produces a GitHub profile README from the profile text.
// Extra carries free-form instructions from the user, such as tone or
// sections to emphasize.
func (g *Generator) GenerateReadme(ctx context.Context, profileText, extra string) (string, error) {
	if strings.TrimSpace(profileText) == "" {
		return "", fmt.Errorf("empty profile")
	}

	response, err := g.completer.Complete(ctx, fmt.Sprintf(readmePrompt, profileText, extra))
	if err != nil {
		return "", err
	}
	return cleanCodeBlock(response), nil
}
