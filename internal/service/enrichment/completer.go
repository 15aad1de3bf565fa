// Package enrichment реализует обогащение слов: поиск в публичном словаре,
// fallback на LLM-вызов и шаблонный fallback, когда оба источника недоступны.
package enrichment

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

// CompletionOptions задает параметры одного LLM-вызова
type CompletionOptions struct {
	Temperature float64
	MaxTokens   int
}

// Completer — способность получить текстовое завершение от LLM.
// Реализации не интерпретируют ответ: разбор и валидация JSON выполняются
// отдельной чистой функцией на стороне вызывающего кода.
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts CompletionOptions) (string, error)
}

// OpenRouterConfig содержит настройки клиента OpenRouter
type OpenRouterConfig struct {
	APIKey  string
	APIURL  string
	Model   string
	Timeout time.Duration
}

const (
	defaultOpenRouterURL = "https://openrouter.ai/api/v1/chat/completions"
	defaultModel         = "mistralai/mistral-7b-instruct:free"
	defaultTimeout       = 10 * time.Second
)

// OpenRouterClient реализует Completer поверх chat-completions API OpenRouter
type OpenRouterClient struct {
	apiKey     string
	apiURL     string
	model      string
	httpClient *http.Client
}

// NewOpenRouterClient создает клиент OpenRouter. APIKey обязателен.
func NewOpenRouterClient(cfg OpenRouterConfig) (*OpenRouterClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenRouter API key is required")
	}
	if cfg.APIURL == "" {
		cfg.APIURL = defaultOpenRouterURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &OpenRouterClient{
		apiKey:     cfg.APIKey,
		apiURL:     cfg.APIURL,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete выполняет один chat-completions вызов и возвращает текст первого ответа
func (c *OpenRouterClient) Complete(ctx context.Context, systemPrompt, userPrompt string, opts CompletionOptions) (string, error) {
	request := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}

	body, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("HTTP-Referer", "http://localhost:5000")
	req.Header.Set("X-Title", "GRE Vocab Builder")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("completion request returned status %d: %s", resp.StatusCode, string(payload))
	}

	var response chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}
	if response.Error != nil {
		return "", fmt.Errorf("completion API error: %s", response.Error.Message)
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("completion response contains no choices")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}
