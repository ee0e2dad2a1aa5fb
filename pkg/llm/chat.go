package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/kmorales/careerforge/internal/models"
)

const defaultSystemTemplate = "You are an AI assistant specialized in helping users " +
	"optimize their job applications and professional profiles. You can help with " +
	"personal website content, GitHub READMEs, and career-material text. Provide " +
	"clear, actionable advice and generate appropriate content when requested."

// ChatConfig represents the configuration for a chat engine.
type ChatConfig struct {
	APIKey          string
	Model           string
	BaseURL         string
	Temperature     float64
	MaxTokens       int
	SystemTemplate  string
	ContextTemplate string
}

// ChatEngine generates conversational responses. It keeps an in-memory
// transcript for the current session; nothing survives the process.
type ChatEngine struct {
	config ChatConfig
	llm    llms.Model

	mu      sync.Mutex
	history []llms.MessageContent
}

// NewWithConfig creates a new ChatEngine with the given configuration.
func NewWithConfig(config ChatConfig) (*ChatEngine, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", ErrAuthentication)
	}
	if config.Model == "" {
		config.Model = "meta-llama/Meta-Llama-3.1-70B-Instruct-Turbo"
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://api.together.xyz/v1"
	}

	model, err := openai.New(
		openai.WithToken(config.APIKey),
		openai.WithModel(config.Model),
		openai.WithBaseURL(config.BaseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize LLM: %w", err)
	}

	return NewWithModel(config, model), nil
}

// NewWithModel creates a ChatEngine on an already-built model.
func NewWithModel(config ChatConfig, model llms.Model) *ChatEngine {
	if config.Temperature <= 0 || config.Temperature > 2 {
		config.Temperature = 0.7
	}
	if config.MaxTokens <= 0 {
		config.MaxTokens = 2000
	}
	if config.SystemTemplate == "" {
		config.SystemTemplate = defaultSystemTemplate
	}
	if config.ContextTemplate == "" {
		config.ContextTemplate = "Relevant background:\n%s"
	}

	return &ChatEngine{
		config: config,
		llm:    model,
	}
}

// Chat generates a response to the query, folding in the session transcript
// and any context documents.
func (ce *ChatEngine) Chat(ctx context.Context, query string, docs []models.Document) (string, error) {
	content := ce.buildMessages(query, docs)

	response, err := ce.llm.GenerateContent(ctx, content,
		llms.WithTemperature(ce.config.Temperature),
		llms.WithMaxTokens(ce.config.MaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("chat error: %w", classifyErr(err))
	}
	if response == nil || len(response.Choices) == 0 {
		return "", fmt.Errorf("chat error: %w", ErrMalformedResponse)
	}

	reply := response.Choices[0].Content
	ce.remember(query, reply)
	return reply, nil
}

// ChatStream generates a response as a stream of chunks. Chunk content is
// passed through verbatim. The chunk channel closes when the response is
// complete; the error channel carries at most one classified failure and is
// closed either way, so callers drain the chunks and then receive from it
// once.
func (ce *ChatEngine) ChatStream(ctx context.Context, query string, docs []models.Document) (<-chan string, <-chan error) {
	content := ce.buildMessages(query, docs)
	chunks := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(chunks)
		defer close(errc)

		var reply strings.Builder
		_, err := ce.llm.GenerateContent(ctx, content,
			llms.WithTemperature(ce.config.Temperature),
			llms.WithMaxTokens(ce.config.MaxTokens),
			llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
				reply.Write(chunk)
				select {
				case chunks <- string(chunk):
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			}),
		)
		if err != nil {
			errc <- classifyErr(err)
			return
		}

		ce.remember(query, reply.String())
	}()

	return chunks, errc
}

// Reset drops the session transcript.
func (ce *ChatEngine) Reset() {
	ce.mu.Lock()
	defer ce.mu.Unlock()
	ce.history = nil
}

// History returns a copy of the session transcript.
func (ce *ChatEngine) History() []llms.MessageContent {
	ce.mu.Lock()
	defer ce.mu.Unlock()
	return append([]llms.MessageContent(nil), ce.history...)
}

func (ce *ChatEngine) buildMessages(query string, docs []models.Document) []llms.MessageContent {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, ce.config.SystemTemplate),
	}

	if len(docs) > 0 {
		var contextBuilder strings.Builder
		for _, doc := range docs {
			contextBuilder.WriteString(fmt.Sprintf("Source: %s\n%s\n\n", doc.URL, doc.Content))
		}
		content = append(content, llms.TextParts(llms.ChatMessageTypeSystem,
			fmt.Sprintf(ce.config.ContextTemplate, contextBuilder.String())))
	}

	ce.mu.Lock()
	content = append(content, ce.history...)
	ce.mu.Unlock()

	content = append(content, llms.TextParts(llms.ChatMessageTypeHuman, query))
	return content
}

func (ce *ChatEngine) remember(query, reply string) {
	ce.mu.Lock()
	defer ce.mu.Unlock()
	ce.history = append(ce.history,
		llms.TextParts(llms.ChatMessageTypeHuman, query),
		llms.TextParts(llms.ChatMessageTypeAI, reply),
	)
}
