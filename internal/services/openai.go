package services

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultOpenAIModel = "gpt-4o-mini"
	defaultGroqModel   = "llama-3.3-70b-versatile"
)

// openaiClient talks to any OpenAI-compatible chat completion API. Groq
// exposes the same wire format, so a non-empty baseURL turns this into a
// Groq client.
type openaiClient struct {
	client   *openai.Client
	provider string
	model    string
}

func NewOpenAIClient(apiKey, baseURL, model string) LLMClient {
	cfg := openai.DefaultConfig(apiKey)

	provider := "openai"
	if baseURL != "" {
		cfg.BaseURL = baseURL
		provider = "groq"
	}

	if model == "" {
		if provider == "groq" {
			model = defaultGroqModel
		} else {
			model = defaultOpenAIModel
		}
	}

	return &openaiClient{
		client:   openai.NewClientWithConfig(cfg),
		provider: provider,
		model:    model,
	}
}

func (o *openaiClient) Provider() string { return o.provider }

func (o *openaiClient) Model() string { return o.model }

// Complete implements LLMClient.
func (o *openaiClient) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	resp, err := o.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: o.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Temperature: temperature,
			MaxTokens:   4096,
		},
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}

	return resp.Choices[0].Message.Content, nil
}
