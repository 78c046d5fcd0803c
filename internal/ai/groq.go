package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	groqCanonicalURL = "https://api.groq.com/openai/v1/chat/completions"
	defaultGroqModel = "mixtral-8x7b-32768"
)

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// GroqProvider implements TextCompleter against Groq's OpenAI-compatible
// chat completions endpoint.
type GroqProvider struct {
	apiKey string
	url    string
	model  string
	client *http.Client
}

// NewGroqProvider builds a provider. baseURL and model may be empty; the
// canonical endpoint and default model are used then. A missing apiKey is
// only reported when Complete is called.
func NewGroqProvider(apiKey, baseURL, model string) *GroqProvider {
	if model == "" {
		model = defaultGroqModel
	}
	return &GroqProvider{
		apiKey: apiKey,
		url:    buildGroqURL(baseURL),
		model:  model,
		// The 20s timeout guards against stalled connections while context
		// cancellation is still honoured via NewRequestWithContext.
		client: &http.Client{Timeout: 20 * time.Second},
	}
}

func (p *GroqProvider) Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error) {
	if strings.TrimSpace(p.apiKey) == "" {
		return "", ErrMissingAPIKey
	}
	if model == "" {
		model = p.model
	}

	reqBody, err := json.Marshal(chatRequest{
		Model:       model,
		Temperature: 0.1,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userMessage},
		},
	})
	if err != nil {
		return "", fmt.Errorf("groq: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(reqBody))
	if err != nil {
		return "", fmt.Errorf("groq: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("groq: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("groq: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("groq: status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	var cr chatResponse
	if err := json.Unmarshal(body, &cr); err != nil {
		return "", fmt.Errorf("groq: unmarshal response: %w", err)
	}
	if cr.Error != nil {
		return "", fmt.Errorf("groq: api error: %s", cr.Error.Message)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("groq: API returned empty choices array (raw: %s)", truncate(string(body), 200))
	}
	return cr.Choices[0].Message.Content, nil
}

// buildGroqURL accepts several base URL forms:
//   - https://api.groq.com
//   - https://api.groq.com/openai/v1
//   - https://api.groq.com/openai/v1/chat/completions
func buildGroqURL(base string) string {
	if base == "" {
		return groqCanonicalURL
	}
	cleaned := strings.TrimRight(strings.TrimSpace(base), "/")
	switch {
	case strings.HasSuffix(cleaned, "/chat/completions"):
		return cleaned
	case strings.HasSuffix(cleaned, "/openai/v1"), strings.HasSuffix(cleaned, "/v1"):
		return cleaned + "/chat/completions"
	case strings.HasSuffix(cleaned, "/openai"):
		return cleaned + "/v1/chat/completions"
	}
	return cleaned + "/openai/v1/chat/completions"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
