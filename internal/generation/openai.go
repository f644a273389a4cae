// Package generation talks to the downstream text and image models.
package generation

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
	"github.com/stemkit/kitbot/pkg/models"
)

const defaultOpenAIEndpoint = "https://api.openai.com/v1"

// excerptLen bounds the provider body quoted in errors.
const excerptLen = 300

// StatusError is a non-success response from a generation provider.
type StatusError struct {
	Provider string
	Status   int
	Excerpt  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Status, e.Excerpt)
}

// ChatClient is an OpenAI-compatible chat-completions client.
type ChatClient struct {
	apiKey      string
	model       string
	endpoint    string
	temperature float64
	client      *http.Client
}

// ChatOption configures a ChatClient.
type ChatOption func(*ChatClient)

// WithEndpoint sets a custom API base URL (proxies, compatible servers).
func WithEndpoint(endpoint string) ChatOption {
	return func(c *ChatClient) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) ChatOption {
	return func(c *ChatClient) { c.client = hc }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) ChatOption {
	return func(c *ChatClient) { c.temperature = t }
}

// NewChatClient creates a chat client for model.
func NewChatClient(apiKey, model string, opts ...ChatOption) *ChatClient {
	c := &ChatClient{
		apiKey:      apiKey,
		model:       model,
		endpoint:    defaultOpenAIEndpoint,
		temperature: 0.4,
		client:      &http.Client{Timeout: 120 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
}

// openAIMessage content is a string, or a list of parts for images.
type openAIMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type openAIPart struct {
	Type     string          `json:"type"`
	Text     string          `json:"text,omitempty"`
	ImageURL *openAIImageURL `json:"image_url,omitempty"`
}

type openAIImageURL struct {
	URL string `json:"url"`
}

type openAIResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int64 `json:"prompt_tokens"`
		CompletionTokens int64 `json:"completion_tokens"`
	} `json:"usage"`
}

// Generate sends messages to the chat-completions endpoint and returns the
// first choice's content.
func (c *ChatClient) Generate(ctx context.Context, messages []models.ChatMessage) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("openai: api key not configured")
	}

	body, err := json.Marshal(openAIRequest{
		Model:       c.model,
		Messages:    toOpenAIMessages(messages),
		Temperature: c.temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openai: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	start := time.Now()
	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("openai: request failed: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(httpResp.Body, 4096))
		return "", &StatusError{Provider: "openai", Status: httpResp.StatusCode, Excerpt: Excerpt(string(respBody), excerptLen)}
	}

	var oaiResp openAIResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&oaiResp); err != nil {
		return "", fmt.Errorf("openai: decode response: %w", err)
	}
	if len(oaiResp.Choices) == 0 {
		return "", fmt.Errorf("openai: response had no choices")
	}

	log.Debug().
		Str("model", c.model).
		Int64("prompt_tokens", oaiResp.Usage.PromptTokens).
		Int64("completion_tokens", oaiResp.Usage.CompletionTokens).
		Dur("latency", time.Since(start)).
		Msg("Chat completion done")

	return oaiResp.Choices[0].Message.Content, nil
}

func toOpenAIMessages(messages []models.ChatMessage) []openAIMessage {
	out := make([]openAIMessage, 0, len(messages))
	for _, m := range messages {
		if len(m.ContentParts) == 0 {
			out = append(out, openAIMessage{Role: m.Role, Content: m.Content})
			continue
		}
		parts := make([]openAIPart, 0, len(m.ContentParts))
		for _, p := range m.ContentParts {
			switch p.Type {
			case "image":
				url := "data:" + p.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
				parts = append(parts, openAIPart{Type: "image_url", ImageURL: &openAIImageURL{URL: url}})
			default:
				parts = append(parts, openAIPart{Type: "text", Text: p.Text})
			}
		}
		out = append(out, openAIMessage{Role: m.Role, Content: parts})
	}
	return out
}

// Excerpt trims s to at most n characters for diagnostics. Cuts land on
// rune boundaries so the result stays valid UTF-8.
func Excerpt(s string, n int) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
