// Package ai wraps the generative model behind the pantry features:
// recipe suggestion, recipe refinement, food image analysis and bill
// scanning. Responses are free text; the extract helpers turn them into
// typed values at this boundary so nothing downstream handles raw maps.
package ai

import (
	"context"
	"fmt"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// Generator produces text from a prompt and, optionally, an attached image.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
	GenerateWithImage(ctx context.Context, prompt, imageB64, mimeType string) (string, error)
}

// GeminiProvider implements Generator against Gemini's OpenAI-compatible
// endpoint.
type GeminiProvider struct {
	client      llms.Model
	temperature float64
	maxTokens   int
}

const geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

// NewGeminiProvider creates a Gemini-backed generator. The API key comes
// from GEMINI_API_KEY when not configured explicitly.
func NewGeminiProvider(apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key not configured: set GEMINI_API_KEY")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := openai.New(
		openai.WithToken(apiKey),
		openai.WithBaseURL(geminiBaseURL),
		openai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiProvider{
		client:      client,
		temperature: 0.5,
		maxTokens:   4096,
	}, nil
}

// Generate produces a completion for a text-only prompt.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	return p.generate(ctx, []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	})
}

// GenerateWithImage produces a completion for a prompt plus a base64 image.
func (p *GeminiProvider) GenerateWithImage(ctx context.Context, prompt, imageB64, mimeType string) (string, error) {
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	return p.generate(ctx, []llms.MessageContent{
		{
			Role: schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
				llms.ImageURLPart(fmt.Sprintf("data:%s;base64,%s", mimeType, imageB64)),
			},
		},
	})
}

func (p *GeminiProvider) generate(ctx context.Context, messages []llms.MessageContent) (string, error) {
	response, err := p.client.GenerateContent(ctx, messages,
		llms.WithTemperature(p.temperature),
		llms.WithMaxTokens(p.maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}

	if response == nil || len(response.Choices) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	return response.Choices[0].Content, nil
}

// SetTemperature sets the sampling temperature for completions.
func (p *GeminiProvider) SetTemperature(temp float64) {
	p.temperature = temp
}

// SetMaxTokens sets the completion token limit.
func (p *GeminiProvider) SetMaxTokens(tokens int) {
	p.maxTokens = tokens
}
