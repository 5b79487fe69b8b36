package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Message is one turn of a chat conversation in wire order.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatClient calls an OpenAI-compatible /v1/chat/completions endpoint.
// baseURL should include the /v1 prefix; apiKey can be empty for local
// models that do not require authentication.
type ChatClient struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewChatClient(baseURL string, apiKey string, model string) *ChatClient {
	return &ChatClient{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  strings.TrimSpace(apiKey),
		model:   strings.TrimSpace(model),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type chatRequest struct {
	Model    string            `json:"model"`
	Messages []Message         `json:"messages"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// Complete sends one ordered conversation and returns the first
// non-empty text segment of the response. An empty string with a nil
// error means the call succeeded but produced no usable text.
func (client *ChatClient) Complete(ctx context.Context, messages []Message, metadata map[string]string) (string, error) {
	if client.model == "" {
		return "", fmt.Errorf("chat model required")
	}

	body, err := json.Marshal(chatRequest{
		Model:    client.model,
		Messages: messages,
		Metadata: metadata,
	})
	if err != nil {
		return "", err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, client.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	request.Header.Set("Content-Type", "application/json")
	if client.apiKey != "" {
		request.Header.Set("Authorization", "Bearer "+client.apiKey)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return "", fmt.Errorf("chat request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode >= 400 {
		var apiError chatErrorResponse
		_ = json.NewDecoder(response.Body).Decode(&apiError)
		if apiError.Error.Message != "" {
			return "", fmt.Errorf("chat api error: %s", apiError.Error.Message)
		}
		return "", fmt.Errorf("chat api error: %s", response.Status)
	}

	var parsed chatResponse
	if err := json.NewDecoder(response.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("chat decode: %w", err)
	}

	for _, choice := range parsed.Choices {
		if text := strings.TrimSpace(choice.Message.Content); text != "" {
			return text, nil
		}
	}
	return "", nil
}
