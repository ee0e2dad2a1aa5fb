package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// ClientConfig holds everything a completion call needs. The credential is
// handed in explicitly at construction; the client never reads the
// environment.
type ClientConfig struct {
	APIKey      string
	Model       string
	BaseURL     string // OpenAI-compatible endpoint, e.g. Together
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration // bounds the blocking call
}

// Client sends single synchronous requests to a remote chat-completion
// service. It keeps no state between calls.
type Client struct {
	config ClientConfig
	model  llms.Model
}

// NewClient validates the configuration and builds the underlying model. A
// missing credential fails here, before any call is attempted.
func NewClient(config ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", ErrAuthentication)
	}
	if config.Model == "" {
		config.Model = "meta-llama/Meta-Llama-3.1-70B-Instruct-Turbo"
	}
	if config.BaseURL == "" {
		config.BaseURL = "https://api.together.xyz/v1"
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 2000
	}
	if config.Timeout == 0 {
		config.Timeout = 2 * time.Minute
	}

	model, err := openai.New(
		openai.WithToken(config.APIKey),
		openai.WithModel(config.Model),
		openai.WithBaseURL(config.BaseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize completion client: %w", err)
	}

	return &Client{config: config, model: model}, nil
}

// NewClientWithModel wires an already-built model, bypassing endpoint setup.
func NewClientWithModel(config ClientConfig, model llms.Model) *Client {
	if config.Timeout == 0 {
		config.Timeout = 2 * time.Minute
	}
	return &Client{config: config, model: model}
}

// Complete sends the prompt as the sole user message, streaming disabled, and
// returns the first choice's content. Failures come back classified; see
// errors.go.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	response, err := c.model.GenerateContent(ctx, content,
		llms.WithTemperature(c.config.Temperature),
		llms.WithMaxTokens(c.config.MaxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("completion call: %w", classifyErr(err))
	}

	if response == nil || len(response.Choices) == 0 {
		return "", fmt.Errorf("completion call: %w", ErrMalformedResponse)
	}

	return response.Choices[0].Content, nil
}

// Model returns the configured model identifier.
func (c *Client) Model() string {
	return c.config.Model
}
