package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements TextCompleter using Google's Gemini models.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider initializes a new Gemini client.
// apiKey should be provided from environment variables.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, ErrMissingAPIKey
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiProvider{client: client, model: model}, nil
}

// Close cleans up the Gemini client resources.
func (p *GeminiProvider) Close() {
	p.client.Close()
}

func (p *GeminiProvider) Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error) {
	name := model
	if name == "" {
		name = p.model
	}
	m := p.client.GenerativeModel(name)
	// Force JSON responses; the recovery layer still handles stray prose.
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.1)

	fullPrompt := fmt.Sprintf("%s\n\n%s", systemPrompt, userMessage)
	resp, err := m.GenerateContent(ctx, genai.Text(fullPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: API returned empty candidates")
	}

	var parts []string
	for _, part := range resp.Candidates[0].Content.Parts {
		txt, ok := part.(genai.Text)
		if !ok || strings.TrimSpace(string(txt)) == "" {
			continue
		}
		parts = append(parts, string(txt))
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("gemini: API returned empty text parts")
	}
	return strings.Join(parts, "\n"), nil
}
