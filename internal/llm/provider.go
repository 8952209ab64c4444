package llm

import (
	"context"
)

// Provider defines the interface for reasoning-service backends.
// Implementations must be safe for concurrent use by multiple requests.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Complete sends a prompt and returns the raw text response.
	// Decoding is deterministic (zero sampling temperature).
	Complete(ctx context.Context, prompt string) (string, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// Config holds reasoning-service configuration
type Config struct {
	// Provider name: "groq", "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for Groq/OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, OpenAI-compatible gateways)
	BaseURL string

	// Timeout for API requests, seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults. The verdict response is three
// short lines, so the token budget is small.
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   20,
		MaxTokens: 130,
	}
}
