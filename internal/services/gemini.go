package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultGeminiTemperature = 0.9

// GeminiService implements LLMService on the Gemini API.
type GeminiService struct {
	client    *genai.Client
	modelName string
	logger    *slog.Logger
}

var _ LLMService = (*GeminiService)(nil)

func NewGeminiService(ctx context.Context, apiKey, modelName string, logger *slog.Logger) (*GeminiService, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiService{
		client:    client,
		modelName: modelName,
		logger:    logger,
	}, nil
}

func (g *GeminiService) InitModel(ctx context.Context, modelName string) error {
	if modelName != "" {
		g.modelName = modelName
	}
	info, err := g.client.GenerativeModel(g.modelName).Info(ctx)
	if err != nil {
		return fmt.Errorf("failed to look up gemini model %s: %w", g.modelName, err)
	}
	g.logger.Info("Gemini model ready", "model", info.Name, "input_token_limit", info.InputTokenLimit)
	return nil
}

func (g *GeminiService) GenerateText(ctx context.Context, systemPrompt, prompt string) (string, error) {
	// A model handle per call keeps SystemInstruction out of shared state.
	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(DefaultGeminiTemperature)
	if systemPrompt != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		return "", ErrEmptyResponse
	}
	g.logger.Debug("Gemini generation complete", "model", g.modelName, "length", len(text))
	return text, nil
}

func (g *GeminiService) Close() error {
	return g.client.Close()
}

func responseText(resp *genai.GenerateContentResponse) string {
	var text strings.Builder
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				text.WriteString(string(txt))
			}
		}
	}
	return text.String()
}
