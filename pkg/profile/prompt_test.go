package profile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kmorales/careerforge/pkg/profile"
)

func TestBuildExtractionPrompt(t *testing.T) {
	rawText := "Jane Doe\nStanford University, MS Statistics, 2023-2025"

	prompt := profile.BuildExtractionPrompt(rawText)

	// Embeds the document verbatim and names all five fields.
	assert.Contains(t, prompt, rawText)
	for _, field := range []string{"education", "experience", "skills", "projects", "languages"} {
		assert.Contains(t, prompt, field)
	}
	assert.Contains(t, prompt, "empty")
	assert.Contains(t, prompt, "JSON object")
}

func TestBuildExtractionPromptDeterministic(t *testing.T) {
	first := profile.BuildExtractionPrompt("some resume text")
	second := profile.BuildExtractionPrompt("some resume text")
	assert.Equal(t, first, second)
}

func TestBuildExtractionPromptEmptyInput(t *testing.T) {
	// A zero-page document reaches the builder as an empty string; the full
	// instruction set still goes out so the model answers with empty lists.
	prompt := profile.BuildExtractionPrompt("")

	assert.Contains(t, prompt, "Never invent")
	assert.Contains(t, prompt, "empty")
	for _, field := range []string{"education", "experience", "skills", "projects", "languages"} {
		assert.Contains(t, prompt, field)
	}
}
