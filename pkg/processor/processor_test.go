package processor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kmorales/careerforge/internal/models"
	"github.com/kmorales/careerforge/pkg/processor"
)

func TestProcessorProcess(t *testing.T) {
	config := processor.ProcessorConfig{
		ChunkSize:      50,
		ChunkOverlap:   10,
		MinChunkLength: 20,
	}
	p := processor.NewWithConfig(config)

	documents := []models.Document{
		{
			URL:     "https://github.com/testuser",
			Content: "Test User builds developer tools. Maintains a Go scraper. Writes about data pipelines.",
		},
	}

	processedDocs, err := p.Process(documents)
	require.NoError(t, err)
	require.Len(t, processedDocs, 1)

	// Casing is preserved, whitespace collapsed.
	assert.NotEmpty(t, processedDocs[0].Chunks)
	assert.Contains(t, processedDocs[0].Chunks[0], "Test User")
}

func TestProcessorRemovesStopwords(t *testing.T) {
	config := processor.ProcessorConfig{
		ChunkSize:       200,
		ChunkOverlap:    10,
		MinChunkLength:  5,
		RemoveStopwords: true,
		CustomStopwords: []string{"portfolio"},
	}
	p := processor.NewWithConfig(config)

	docs := []models.Document{
		{Content: "The portfolio of a engineer with projects."},
	}

	processed, err := p.Process(docs)
	require.NoError(t, err)
	require.Len(t, processed, 1)
	require.NotEmpty(t, processed[0].Chunks)

	chunk := processed[0].Chunks[0]
	assert.NotContains(t, chunk, "portfolio")
	assert.Contains(t, chunk, "engineer")
}

func TestProcessorChunkSizeBound(t *testing.T) {
	config := processor.ProcessorConfig{
		ChunkSize:      40,
		ChunkOverlap:   5,
		MinChunkLength: 10,
	}
	p := processor.NewWithConfig(config)

	docs := []models.Document{
		{Content: "One short sentence here. Another short sentence there. A third sentence follows. And one more to close."},
	}

	processed, err := p.Process(docs)
	require.NoError(t, err)
	require.Len(t, processed, 1)
	assert.Greater(t, len(processed[0].Chunks), 1)
}
