package ai

import (
	"context"
	"errors"
)

// ErrMissingAPIKey signals a configuration problem: the selected provider has
// no credential. Callers must not retry or degrade on this error.
var ErrMissingAPIKey = errors.New("ai: missing api key")

// TextCompleter defines the contract for text-completion services.
// This interface allows swapping providers (Groq, Gemini, ...) without
// touching the extraction pipeline.
type TextCompleter interface {
	// Complete sends one system+user exchange and returns the raw assistant
	// text. model overrides the provider default when non-empty.
	Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error)
}
