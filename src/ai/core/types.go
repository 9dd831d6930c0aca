package core

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the provider answered with no visible text.
var ErrEmptyResponse = errors.New("ai: empty response")

// Options controls model behavior; zero values fall back to the client defaults.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int
	SystemPrompt        string
}

// Client is a provider-agnostic single-turn text completion interface.
type Client interface {
	// Name returns the registry key the client was built from.
	Name() string
	// Respond sends one prompt and returns the generated text.
	Respond(ctx context.Context, input string, opts Options) (string, error)
}
