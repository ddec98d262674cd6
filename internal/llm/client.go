package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cognicore/wortschatz/pkg/wortschatz/lexical"
)

// ErrTransport wraps every failure to obtain a reply: network, HTTP status,
// API error payloads and undecodable envelopes.
var ErrTransport = errors.New("llm transport failure")

// Provider selects the wire dialect.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// DefaultGeminiBaseURL is used when BaseURL is empty and Provider is gemini.
const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

const systemPrompt = "You are a German vocabulary assistant. Reply with JSON only."

// Client calls a generative model and returns its raw text reply.
type Client struct {
	Provider Provider
	BaseURL  string
	APIKey   string
	Model    string

	HTTPClient *http.Client
}

// Complete sends prompt and returns the model's text. An empty string with a
// nil error means the model answered without any text.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.Model == "" {
		return "", fmt.Errorf("llm: model required")
	}
	switch c.provider() {
	case ProviderGemini:
		return c.generate(ctx, prompt)
	case ProviderOpenAI:
		return c.chat(ctx, prompt)
	default:
		return "", fmt.Errorf("llm: unknown provider %q", c.Provider)
	}
}

func (c *Client) provider() Provider {
	if c.Provider == "" {
		return ProviderGemini
	}
	return c.Provider
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultGeminiBaseURL
	}
	url := strings.TrimRight(base, "/") + "/models/" + c.Model + ":generateContent"

	body := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   ResponseSchema(),
		},
	}
	headers := map[string]string{}
	if c.APIKey != "" {
		headers["x-goog-api-key"] = c.APIKey
	}

	var payload geminiResponse
	if err := c.post(ctx, url, headers, body, &payload); err != nil {
		return "", err
	}
	if payload.Error != nil {
		return "", fmt.Errorf("%w: gemini: %s", ErrTransport, payload.Error.Message)
	}
	if len(payload.Candidates) == 0 {
		return "", nil
	}
	var text strings.Builder
	for _, part := range payload.Candidates[0].Content.Parts {
		text.WriteString(part.Text)
	}
	return text.String(), nil
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error"`
}

func (c *Client) chat(ctx context.Context, prompt string) (string, error) {
	if c.BaseURL == "" {
		return "", fmt.Errorf("llm: base URL required for %s", ProviderOpenAI)
	}
	body := chatRequest{
		Model:    c.Model,
		Messages: []chatMessage{{Role: "system", Content: systemPrompt}, {Role: "user", Content: prompt}},
	}
	headers := map[string]string{}
	if c.APIKey != "" {
		headers["Authorization"] = "Bearer " + c.APIKey
	}

	var payload chatResponse
	if err := c.post(ctx, c.BaseURL, headers, body, &payload); err != nil {
		return "", err
	}
	if payload.Error != nil {
		return "", fmt.Errorf("%w: %s", ErrTransport, payload.Error.Message)
	}
	if len(payload.Choices) == 0 {
		return "", nil
	}
	return payload.Choices[0].Message.Content, nil
}

func (c *Client) post(ctx context.Context, url string, headers map[string]string, body, out any) error {
	reqBody, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", ErrTransport, err)
	}
	if resp.StatusCode >= 400 {
		var envelope struct {
			Error *apiError `json:"error"`
		}
		if json.Unmarshal(data, &envelope) == nil && envelope.Error != nil && envelope.Error.Message != "" {
			return fmt.Errorf("%w: http %d: %s", ErrTransport, resp.StatusCode, envelope.Error.Message)
		}
		return fmt.Errorf("%w: http %d", ErrTransport, resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: decode reply: %v", ErrTransport, err)
	}
	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 60 * time.Second}
}

// ResponseSchema is the entry list schema in the OpenAPI subset Gemini accepts
// for structured output.
func ResponseSchema() map[string]any {
	str := map[string]any{"type": "STRING"}
	nullable := map[string]any{"type": "STRING", "nullable": true}
	return map[string]any{
		"type": "ARRAY",
		"items": map[string]any{
			"type": "OBJECT",
			"properties": map[string]any{
				lexical.FieldDe:           str,
				lexical.FieldDePlural:     nullable,
				lexical.FieldDePrateritum: nullable,
				lexical.FieldDePartizip2:  nullable,
				lexical.FieldEn:           str,
				lexical.FieldRu:           str,
			},
			"required":         []string{lexical.FieldDe, lexical.FieldDePlural, lexical.FieldDePrateritum, lexical.FieldDePartizip2, lexical.FieldEn, lexical.FieldRu},
			"propertyOrdering": lexical.Fields(),
		},
	}
}
