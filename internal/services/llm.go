package services

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when a provider answers with no usable text.
var ErrEmptyResponse = errors.New("llm returned an empty response")

// LLMService defines the interface for the text generator.
type LLMService interface {
	// InitModel prepares the named model on startup
	InitModel(ctx context.Context, modelName string) error

	// GenerateText returns a single completion for prompt. systemPrompt may be empty.
	GenerateText(ctx context.Context, systemPrompt, prompt string) (string, error)
}
