package profile

import (
	"context"

	"github.com/kmorales/careerforge/internal/models"
	"github.com/kmorales/careerforge/internal/types"
)

// Extractor runs the resume-to-profile pipeline: read the document, build the
// extraction prompt, call the completion service, parse the reply. Stateless;
// each call runs to completion independently.
type Extractor struct {
	reader types.TextExtractor
	client types.Completer
}

func NewExtractor(reader types.TextExtractor, client types.Completer) *Extractor {
	return &Extractor{
		reader: reader,
		client: client,
	}
}

// Extract produces a StructuredProfile from the document at path. Every
// failure comes back typed from the stage that produced it; nothing is
// swallowed into an empty profile.
func (e *Extractor) Extract(ctx context.Context, path string) (*models.StructuredProfile, error) {
	rawText, err := e.reader.ExtractText(path)
	if err != nil {
		return nil, err
	}

	completion, err := e.client.Complete(ctx, BuildExtractionPrompt(rawText))
	if err != nil {
		return nil, err
	}

	return ParseProfile(completion)
}
