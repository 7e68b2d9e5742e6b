package services

import (
	"context"
	"fmt"
	"log"

	"resumate/backend/internal/config"
)

// LLMClient abstracts a chat-completion provider. The analyzer only ever
// sees this interface; concrete clients live in gemini.go and openai.go.
type LLMClient interface {
	Complete(ctx context.Context, prompt string, temperature float32) (string, error)
	Provider() string
	Model() string
}

// Embedder produces dense vectors for resume chunks. Only the Gemini client
// implements it; embedding support is optional and probed with a type
// assertion.
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// LLMFactory builds provider clients from per-user settings, falling back
// to keys configured in the environment.
type LLMFactory struct {
	cfg config.LLMConfig
}

func NewLLMFactory(cfg config.LLMConfig) *LLMFactory {
	return &LLMFactory{cfg: cfg}
}

// ClientFor resolves (provider, apiKey, model) to a concrete client. Empty
// provider selects the configured default; empty apiKey falls back to the
// environment key for that provider.
func (f *LLMFactory) ClientFor(provider, apiKey, model string) (LLMClient, error) {
	if provider == "" {
		provider = f.cfg.DefaultProvider
	}

	switch provider {
	case "gemini":
		if apiKey == "" {
			apiKey = f.cfg.GeminiAPIKey
		}
		if apiKey == "" {
			return nil, fmt.Errorf("%w: GEMINI_API_KEY not configured", ErrInvalidConfiguration)
		}
		return NewGeminiClient(apiKey, model)
	case "openai":
		if apiKey == "" {
			apiKey = f.cfg.OpenAIAPIKey
		}
		if apiKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY not configured", ErrInvalidConfiguration)
		}
		return NewOpenAIClient(apiKey, "", model), nil
	case "groq":
		if apiKey == "" {
			apiKey = f.cfg.GroqAPIKey
		}
		if apiKey == "" {
			return nil, fmt.Errorf("%w: GROQ_API_KEY not configured", ErrInvalidConfiguration)
		}
		return NewOpenAIClient(apiKey, f.cfg.GroqBaseURL, model), nil
	default:
		return nil, fmt.Errorf("%w: unknown LLM provider %q", ErrInvalidConfiguration, provider)
	}
}

// Embedder returns an embedding client when a Gemini key is configured.
// Callers treat a nil result as "indexing disabled".
func (f *LLMFactory) Embedder() Embedder {
	if f.cfg.GeminiAPIKey == "" {
		return nil
	}
	client, err := NewGeminiClient(f.cfg.GeminiAPIKey, "")
	if err != nil {
		log.Printf("⚠️  Failed to create embedding client: %v\n", err)
		return nil
	}
	embedder, ok := client.(Embedder)
	if !ok {
		return nil
	}
	return embedder
}

// CompleteWithRetry retries transient completion failures up to maxRetries
// attempts. Context cancellation stops the loop early.
func CompleteWithRetry(ctx context.Context, client LLMClient, prompt string, temperature float32, maxRetries int) (string, error) {
	if maxRetries < 1 {
		maxRetries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		result, err := client.Complete(ctx, prompt, temperature)
		if err == nil {
			return result, nil
		}

		lastErr = err

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if attempt < maxRetries {
			log.Printf("⚠️ Attempt %d failed: %v. Retrying...\n", attempt, err)
		}
	}

	return "", fmt.Errorf("failed after %d attempts: %w", maxRetries, lastErr)
}
