package profile_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmorales/careerforge/internal/models"
	"github.com/kmorales/careerforge/pkg/profile"
	"github.com/kmorales/careerforge/pkg/resume"
)

type stubReader struct {
	text string
	err  error
}

func (s *stubReader) ExtractText(_ string) (string, error) {
	return s.text, s.err
}

type stubCompleter struct {
	completion string
	err        error
	gotPrompt  string
}

func (s *stubCompleter) Complete(_ context.Context, prompt string) (string, error) {
	s.gotPrompt = prompt
	return s.completion, s.err
}

func TestExtractEndToEnd(t *testing.T) {
	reader := &stubReader{text: "Stanford University, MS Statistics, 2023-2025"}
	completer := &stubCompleter{
		completion: `{"education": [("MS Statistics","Stanford University","","2023","2025")], "experience": [], "skills": [], "projects": [], "languages": []}`,
	}

	extractor := profile.NewExtractor(reader, completer)
	got, err := extractor.Extract(context.Background(), "resume.pdf")
	require.NoError(t, err)

	assert.Equal(t, []models.EducationEntry{{
		Degree:    "MS Statistics",
		School:    "Stanford University",
		Location:  "",
		StartDate: "2023",
		EndDate:   "2025",
	}}, got.Education)
	assert.Empty(t, got.Experience)
	assert.Empty(t, got.Skills)
	assert.Empty(t, got.Projects)
	assert.Empty(t, got.Languages)

	// The document text travels into the prompt.
	assert.True(t, strings.Contains(completer.gotPrompt, reader.text))
}

func TestExtractEmptyDocument(t *testing.T) {
	// A zero-page PDF yields empty text; the pipeline still runs and comes
	// back with an all-empty profile rather than an error.
	reader := &stubReader{text: ""}
	completer := &stubCompleter{
		completion: `{"education": [], "experience": [], "skills": [], "projects": [], "languages": []}`,
	}

	extractor := profile.NewExtractor(reader, completer)
	got, err := extractor.Extract(context.Background(), "blank.pdf")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestExtractPropagatesReadError(t *testing.T) {
	reader := &stubReader{err: resume.ErrDocumentRead}
	extractor := profile.NewExtractor(reader, &stubCompleter{})

	_, err := extractor.Extract(context.Background(), "missing.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, resume.ErrDocumentRead)
}

func TestExtractPropagatesCompletionError(t *testing.T) {
	wantErr := errors.New("service exploded")
	extractor := profile.NewExtractor(
		&stubReader{text: "some resume"},
		&stubCompleter{err: wantErr},
	)

	_, err := extractor.Extract(context.Background(), "resume.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, wantErr)
}

func TestExtractPropagatesParseError(t *testing.T) {
	extractor := profile.NewExtractor(
		&stubReader{text: "some resume"},
		&stubCompleter{completion: "no structured data here"},
	)

	_, err := extractor.Extract(context.Background(), "resume.pdf")
	require.Error(t, err)
	assert.ErrorIs(t, err, profile.ErrUnparsableResponse)
}
