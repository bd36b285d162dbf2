package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

type geminiProvider struct {
	name   string
	apiKey string
	model  string
}

// NewGemini creates a Gemini provider for one API key. index distinguishes
// several keys in the chain ("gemini", "gemini#2", ...).
func NewGemini(apiKey, model string, index int) Provider {
	name := "gemini"
	if index > 0 {
		name = fmt.Sprintf("gemini#%d", index+1)
	}
	return &geminiProvider{
		name:   name,
		apiKey: strings.TrimSpace(apiKey),
		model:  model,
	}
}

func (g *geminiProvider) Name() string {
	return g.name
}

// Extract sends the prompt to Gemini and returns the concatenated text parts.
func (g *geminiProvider) Extract(ctx context.Context, prompt string) (string, error) {
	if g.apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not set: %w", ErrMissingCredential)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	temperature := float32(0)
	result, err := client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	})
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	if result != nil && len(result.Candidates) > 0 && result.Candidates[0].Content != nil {
		var text strings.Builder
		for _, part := range result.Candidates[0].Content.Parts {
			if part.Text != "" {
				text.WriteString(part.Text)
			}
		}
		return text.String(), nil
	}

	return "", ErrEmptyResponse
}

func (g *geminiProvider) Hint(err error) string {
	if errors.Is(err, ErrMissingCredential) {
		return "set GEMINI_API_KEY or GOOGLE_API_KEY (free key at https://aistudio.google.com/app/apikey)"
	}
	if isQuotaError(err) {
		return "Gemini free-tier quota exhausted; add another key to GEMINI_API_KEY or wait for the quota window"
	}
	return ""
}

func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}
