package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configData := `
llm:
  api_key: "test-key"
  base_url: "https://api.together.xyz/v1"
  model: "meta-llama/Meta-Llama-3.1-70B-Instruct-Turbo"
  max_tokens: 1000
  temperature: 0.5
  timeout_seconds: 30

scraper:
  max_depth: 5
  rate_limit: 1.5
  ignore_patterns:
    - "/test/"
  allowed_extensions:
    - ".html"
    - "/"

processor:
  chunk_size: 500
  chunk_overlap: 100
  remove_stopwords: true

generator:
  output_dir: "out"

ui:
  streaming: false
  theme: "dark"
`
	err := os.WriteFile(configPath, []byte(configData), 0644)
	require.NoError(t, err)

	// Test loading config
	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	// Verify loaded values
	assert.Equal(t, "test-key", config.LLM.APIKey)
	assert.Equal(t, "https://api.together.xyz/v1", config.LLM.BaseURL)
	assert.Equal(t, "meta-llama/Meta-Llama-3.1-70B-Instruct-Turbo", config.LLM.Model)
	assert.Equal(t, 1000, config.LLM.MaxTokens)
	assert.Equal(t, 0.5, config.LLM.Temperature)
	assert.Equal(t, 30*time.Second, config.Timeout())
	assert.Equal(t, 5, config.Scraper.MaxDepth)
	assert.Equal(t, 500, config.Processor.ChunkSize)
	assert.Equal(t, "out", config.Generator.OutputDir)
	assert.False(t, config.UI.Streaming)
}

func TestLoadConfigDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, []byte("llm:\n  api_key: \"k\"\n"), 0644)
	require.NoError(t, err)

	config, err := LoadConfig(configPath)
	require.NoError(t, err)

	assert.Equal(t, "https://api.together.xyz/v1", config.LLM.BaseURL)
	assert.Equal(t, 2000, config.LLM.MaxTokens)
	assert.Equal(t, 2*time.Minute, config.Timeout())
	assert.Equal(t, 2, config.Scraper.MaxDepth)
	assert.Equal(t, 1000, config.Processor.ChunkSize)
	assert.Equal(t, "site", config.Generator.OutputDir)
}

func TestConfigValidation(t *testing.T) {
	valid, err := getDefaultConfig()
	require.NoError(t, err)
	valid.LLM.APIKey = "test-key"

	assert.Empty(t, valid.Validate())

	invalid, err := getDefaultConfig()
	require.NoError(t, err)
	invalid.LLM.APIKey = ""
	invalid.LLM.MaxTokens = 100000
	invalid.LLM.Temperature = 3.0
	invalid.Scraper.MaxDepth = 0
	invalid.Scraper.RateLimit = -1

	errs := invalid.Validate()
	assert.Len(t, errs, 5)

	messages := []string{
		"llm.api_key: API key is required",
		"llm.max_tokens: max_tokens must be between 1 and 8192",
		"llm.temperature: temperature must be between 0 and 2",
		"scraper.max_depth: max_depth must be positive",
		"scraper.rate_limit: rate_limit must be positive",
	}
	for i, msg := range messages {
		assert.Contains(t, errs[i].Error(), msg)
	}
}

func TestEnvironmentOverrides(t *testing.T) {
	// Set environment variables
	os.Setenv("TOGETHER_API_KEY", "env-key")
	os.Setenv("TOGETHER_BASE_URL", "https://env.example.com/v1")
	defer func() {
		os.Unsetenv("TOGETHER_API_KEY")
		os.Unsetenv("TOGETHER_BASE_URL")
	}()

	config := &Config{}
	mergeWithEnv(config)

	assert.Equal(t, "env-key", config.LLM.APIKey)
	assert.Equal(t, "https://env.example.com/v1", config.LLM.BaseURL)
}
