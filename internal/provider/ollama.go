package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

type ollamaProvider struct {
	serverURL string
	model     string
}

// NewOllama creates the offline provider talking to a local Ollama server.
func NewOllama(serverURL, model string) Provider {
	return &ollamaProvider{
		serverURL: serverURL,
		model:     model,
	}
}

func (o *ollamaProvider) Name() string {
	return "ollama"
}

func (o *ollamaProvider) Extract(ctx context.Context, prompt string) (string, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(o.serverURL),
		ollama.WithModel(o.model),
	)
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}

	out, err := llms.GenerateFromSinglePrompt(ctx, llm, prompt, llms.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}
	return out, nil
}

func (o *ollamaProvider) Hint(err error) string {
	if isModelMissing(err) {
		return fmt.Sprintf("run: ollama pull %s", o.model)
	}
	return fmt.Sprintf("start Ollama at %s (https://ollama.ai) and run: ollama pull %s", o.serverURL, o.model)
}

// isModelMissing matches the error a running server returns for a model
// that was never pulled.
func isModelMissing(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not found") && (strings.Contains(msg, "model") || strings.Contains(msg, "pull"))
}

// OllamaModels lists the models pulled on the server, as a reachability
// probe. langchaingo has no listing call, so this hits /api/tags directly.
func OllamaModels(ctx context.Context, serverURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(serverURL, "/")+"/api/tags", nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama not reachable at %s: %w", serverURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama responded with status %d", resp.StatusCode)
	}

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("decode ollama tags: %w", err)
	}
	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}
