package llm

import (
	"fmt"
	"strings"

	"github.com/truthpulse/truthpulse/internal/model"
)

// NewProvider creates a reasoning provider based on configuration.
// An empty provider name returns (nil, nil): the reasoning service is
// entirely absent and callers must degrade rather than crash.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "groq":
		return NewGroqProvider(config)

	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: groq, openai, ollama)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig, http model.HTTPConfig) Config {
	return Config{
		Provider:   modelConfig.Provider,
		Model:      modelConfig.Model,
		APIKey:     modelConfig.APIKey,
		BaseURL:    modelConfig.BaseURL,
		Timeout:    modelConfig.Timeout,
		MaxTokens:  modelConfig.MaxTokens,
		HTTPProxy:  http.HTTPProxy,
		HTTPSProxy: http.HTTPSProxy,
		NoProxy:    http.NoProxy,
	}
}
