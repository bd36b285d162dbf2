package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

type openAIProvider struct {
	apiKey  string
	model   string
	baseURL string
}

// NewOpenAI creates the paid-tier provider. baseURL may be empty.
func NewOpenAI(apiKey, model, baseURL string) Provider {
	return &openAIProvider{
		apiKey:  strings.TrimSpace(apiKey),
		model:   model,
		baseURL: baseURL,
	}
}

func (o *openAIProvider) Name() string {
	return "openai"
}

func (o *openAIProvider) Extract(ctx context.Context, prompt string) (string, error) {
	if o.apiKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set: %w", ErrMissingCredential)
	}

	opts := []openai.Option{
		openai.WithToken(o.apiKey),
		openai.WithModel(o.model),
	}
	if o.baseURL != "" {
		opts = append(opts, openai.WithBaseURL(o.baseURL))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, llm, prompt,
		llms.WithTemperature(0),
		llms.WithMaxTokens(2000),
	)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	return out, nil
}

func (o *openAIProvider) Hint(err error) string {
	if errors.Is(err, ErrMissingCredential) {
		return "set OPENAI_API_KEY (https://platform.openai.com/account/api-keys)"
	}
	if !strings.HasPrefix(o.apiKey, "sk-") {
		return "OPENAI_API_KEY does not start with 'sk-' and may be invalid"
	}
	return ""
}
