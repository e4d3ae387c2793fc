package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultMaxResponseBytes = 1 << 20

// openAIProvider implements Provider for the OpenAI Chat Completions API
// (and compatible services).
type openAIProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewOpenAI creates a chat-completions provider. A non-positive timeout
// defaults to 30s; the timeout surfaces as a transport error to callers.
func NewOpenAI(baseURL, apiKey string, timeout time.Duration) Provider {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &openAIProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	Model          string          `json:"model"`
	Temperature    float64         `json:"temperature"`
	Messages       []Message       `json:"messages"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (p *openAIProvider) ChatCompletion(ctx context.Context, req *Request) (*Response, error) {
	payload := chatRequest{
		Model:       req.Model,
		Temperature: req.Temperature,
		Messages:    req.Messages,
	}
	if req.JSONOnly {
		payload.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call grader: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, defaultMaxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read grader response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var e apiError
		if json.Unmarshal(respBody, &e) == nil && e.Error.Message != "" {
			return nil, fmt.Errorf("grader error: %s (type=%s)", e.Error.Message, e.Error.Type)
		}
		return nil, fmt.Errorf("grader error: status %d", resp.StatusCode)
	}

	var cr chatResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return nil, fmt.Errorf("decode grader response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("grader response had no choices")
	}
	return &Response{Content: cr.Choices[0].Message.Content}, nil
}
