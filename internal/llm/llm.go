package llm

import (
	"context"
	"errors"
)

// Generator is the external text-generation service: one prompt in, one
// complete text response out, against a named model.
type Generator interface {
	Generate(ctx context.Context, model string, prompt string) (string, error)
}

// DefaultModel is used when no model name is configured.
const DefaultModel = "models/gemini-flash-latest"

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub used when no provider is configured.
type PlaceholderClient struct{}

// Generate returns ErrNotImplemented.
func (PlaceholderClient) Generate(ctx context.Context, model string, prompt string) (string, error) {
	_ = ctx
	_ = model
	_ = prompt
	return "", ErrNotImplemented
}

var _ Generator = PlaceholderClient{}
