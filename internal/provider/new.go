package provider

import (
	"github.com/nguyentantai21042004/meeting-flow/internal/config"
	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
)

// FromConfig builds the chain in its fixed priority order: every Gemini key,
// then OpenAI, then Ollama unless disabled. Unconfigured cloud providers are
// still included so their missing credential shows up in the error list.
func FromConfig(cfg config.ProvidersConfig, log logger.Logger, rec Recorder) *Chain {
	var providers []Provider

	keys := cfg.Gemini.APIKeys
	if len(keys) == 0 {
		keys = []string{""}
	}
	for i, key := range keys {
		providers = append(providers, NewGemini(key, cfg.Gemini.Model, i))
	}

	providers = append(providers, NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.OpenAI.BaseURL))

	if !cfg.Ollama.Disabled {
		providers = append(providers, NewOllama(cfg.Ollama.ServerURL, cfg.Ollama.Model))
	}

	return NewChain(log, rec, providers...)
}
