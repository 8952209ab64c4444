package llm

import (
	"strings"
	"testing"
)

func TestNewProvider_EmptyMeansAbsent(t *testing.T) {
	provider, err := NewProvider(Config{Provider: ""})
	if err != nil {
		t.Fatalf("empty provider should not error: %v", err)
	}
	if provider != nil {
		t.Fatal("empty provider should return nil (reasoning service absent)")
	}
}

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(Config{Provider: "frobnicator"})
	if err == nil {
		t.Fatal("expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), "frobnicator") {
		t.Errorf("error should name the bad provider, got %v", err)
	}
}

func TestNewProvider_RequiresKey(t *testing.T) {
	for _, name := range []string{"groq", "openai"} {
		if _, err := NewProvider(Config{Provider: name}); err == nil {
			t.Errorf("%s without API key should error", name)
		}
	}
}

func TestNewProvider_Groq(t *testing.T) {
	provider, err := NewProvider(Config{Provider: "groq", APIKey: "gsk-test"})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if provider.Name() != "groq" {
		t.Errorf("expected name groq, got %s", provider.Name())
	}
}

func TestNewProvider_OllamaNeedsNoKey(t *testing.T) {
	provider, err := NewProvider(Config{Provider: "ollama"})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if provider.Name() != "ollama" {
		t.Errorf("expected name ollama, got %s", provider.Name())
	}
}
