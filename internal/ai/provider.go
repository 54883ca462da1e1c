// Package ai provides the model backends that power URL analysis.
// It supports multiple providers (OpenAI-compatible, AWS Bedrock) through a
// unified chat interface.
package ai

import (
	"context"
	"errors"
	"fmt"
	"log"

	"deepguard/internal/config"
)

// ChatMessage represents a single message in a chat conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest represents a request to a chat completion endpoint.
type ChatRequest struct {
	Model       string        `json:"model"`
	Messages    []ChatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
	TopP        float64       `json:"top_p,omitempty"`
	// Extra holds provider-specific fields that should be passed through.
	Extra map[string]interface{} `json:"-"`
}

// ChatChoice represents a single choice in a chat completion response.
type ChatChoice struct {
	Index        int         `json:"index"`
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// ChatUsage represents token usage information.
type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// ChatResponse represents a response from a chat completion endpoint.
type ChatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Created int64        `json:"created"`
	Model   string       `json:"model"`
	Choices []ChatChoice `json:"choices"`
	Usage   ChatUsage    `json:"usage"`
}

// ChatProvider defines the interface for AI chat providers. The analyzer
// issues single request/response completions, so that is the whole surface.
type ChatProvider interface {
	// Name returns the provider name for logging and identification.
	Name() string

	// Chat sends a chat completion request and returns the response.
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// ProviderType represents the type of AI provider.
type ProviderType string

const (
	// ProviderOpenAICompatible represents OpenAI-compatible endpoints (OpenAI, Ollama, etc.)
	ProviderOpenAICompatible ProviderType = "OPENAI_COMPATIBLE"
	// ProviderBedrock represents AWS Bedrock native integration.
	ProviderBedrock ProviderType = "BEDROCK"
)

// ErrProviderNotConfigured is returned when the requested provider is not properly configured.
var ErrProviderNotConfigured = errors.New("AI provider not configured")

// NewProvider builds a ChatProvider from configuration. Callers own the
// instance; nothing global is set.
func NewProvider(cfg *config.Config) (ChatProvider, error) {
	if cfg == nil {
		return nil, ErrProviderNotConfigured
	}

	providerType := ProviderType(cfg.AIProvider)
	log.Printf("[ai] Initializing AI provider: %s", providerType)

	switch providerType {
	case ProviderBedrock:
		provider, err := NewBedrockProvider(BedrockConfig{
			Region:           cfg.BedrockRegion,
			EndpointOverride: cfg.BedrockEndpointOverride,
			ModelID:          cfg.BedrockModelID,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Bedrock provider: %w", err)
		}
		log.Printf("[ai] Bedrock provider initialized: region=%s model=%s", cfg.BedrockRegion, cfg.BedrockModelID)
		return provider, nil

	case ProviderOpenAICompatible:
		fallthrough
	default:
		// Default to OpenAI-compatible provider
		provider := NewOpenAIProvider(OpenAIConfig{
			BaseURL: cfg.AIModelURL,
			APIKey:  cfg.AIAPIKey,
			Model:   cfg.AIModelName,
		})
		log.Printf("[ai] OpenAI-compatible provider initialized: url=%s model=%s", cfg.AIModelURL, cfg.AIModelName)
		return provider, nil
	}
}
