package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/meeting-flow/internal/logger"
)

// AttemptError is the recorded failure of one provider.
type AttemptError struct {
	Provider string `json:"provider"`
	Err      error  `json:"-"`
	Message  string `json:"error"`
	Hint     string `json:"hint,omitempty"`
}

func (e AttemptError) Error() string {
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e AttemptError) Unwrap() error {
	return e.Err
}

// ChainError is returned when every provider failed.
type ChainError struct {
	Attempts []AttemptError
}

func (e *ChainError) Error() string {
	if len(e.Attempts) == 0 {
		return "all providers failed: no providers configured"
	}
	parts := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		parts = append(parts, a.Error())
	}
	return "all providers failed: " + strings.Join(parts, "; ")
}

func (e *ChainError) Unwrap() error {
	return ErrAllFailed
}

// Result is the raw text of the first provider that answered.
type Result struct {
	Text     string
	Provider string
	Errors   []AttemptError
}

// Chain tries providers strictly in the order given.
type Chain struct {
	providers []Provider
	logger    logger.Logger
	recorder  Recorder
}

// NewChain creates a Chain. rec may be nil.
func NewChain(log logger.Logger, rec Recorder, providers ...Provider) *Chain {
	return &Chain{
		providers: providers,
		logger:    log,
		recorder:  rec,
	}
}

// Providers returns the provider names in priority order.
func (c *Chain) Providers() []string {
	names := make([]string, 0, len(c.providers))
	for _, p := range c.providers {
		names = append(names, p.Name())
	}
	return names
}

// Extract returns the first non-empty provider response. Failures of
// earlier providers are carried in Result.Errors. When all fail the error is
// a *ChainError listing every attempt.
func (c *Chain) Extract(ctx context.Context, prompt string) (Result, error) {
	var attempts []AttemptError

	for _, p := range c.providers {
		if err := ctx.Err(); err != nil {
			attempts = append(attempts, newAttemptError(p, err))
			break
		}

		text, err := p.Extract(ctx, prompt)
		if err == nil && strings.TrimSpace(text) == "" {
			err = ErrEmptyResponse
		}
		if err != nil {
			c.observe(p.Name(), "failure")
			attempt := newAttemptError(p, err)
			c.logger.Warn(ctx, "Provider %s failed: %v", p.Name(), err)
			if attempt.Hint != "" {
				c.logger.Info(ctx, "Hint for %s: %s", p.Name(), attempt.Hint)
			}
			attempts = append(attempts, attempt)
			continue
		}

		c.observe(p.Name(), "success")
		c.logger.Info(ctx, "Provider %s responded (%d chars)", p.Name(), len(text))
		return Result{Text: text, Provider: p.Name(), Errors: attempts}, nil
	}

	return Result{Errors: attempts}, &ChainError{Attempts: attempts}
}

func (c *Chain) observe(name, outcome string) {
	if c.recorder != nil {
		c.recorder.ObserveAttempt(name, outcome)
	}
}

func newAttemptError(p Provider, err error) AttemptError {
	a := AttemptError{Provider: p.Name(), Err: err, Message: err.Error()}
	if h, ok := p.(Hinter); ok {
		a.Hint = h.Hint(err)
	}
	return a
}
