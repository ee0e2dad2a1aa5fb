package types

import (
	"context"
	"time"

	"github.com/kmorales/careerforge/internal/models"
)

// Core interfaces

// TextExtractor reads a document from disk and returns its concatenated
// per-page plain text.
type TextExtractor interface {
	ExtractText(path string) (string, error)
}

// Completer sends one prompt to the remote completion service and returns the
// first choice's content.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ProfileExtractor runs the full resume-to-profile pipeline.
type ProfileExtractor interface {
	Extract(ctx context.Context, path string) (*models.StructuredProfile, error)
}

// ContextStore holds the documents and profile for the current session.
type ContextStore interface {
	Store(docs []models.ProcessedDocument) error
	Query(query string, limit int) ([]models.Document, error)
	SetProfile(profile *models.StructuredProfile)
	Profile() *models.StructuredProfile
}

type Processor interface {
	Process(docs []models.Document) ([]models.ProcessedDocument, error)
}

type ProcessorConfig struct {
	ChunkSize          int
	ChunkOverlap       int
	MinChunkLength     int
	RemoveStopwords    bool
	CustomStopwords    []string
	PreserveLineBreaks bool
}

type Config struct {
	LLM     LLMConfig
	Scraper ScraperConfig
	UI      UIConfig
}

type LLMConfig struct {
	APIKey          string
	BaseURL         string
	Model           string
	MaxTokens       int
	Temperature     float64
	Timeout         time.Duration
	SystemTemplate  string
	ContextTemplate string
}

type ScraperConfig struct {
	MaxDepth          int
	RateLimit         float64
	IgnorePatterns    []string
	AllowedExtensions []string
	Timeout           time.Duration
	OnProgress        func(url string)
}

type UIConfig struct {
	Streaming bool
}
