package anthropic

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

const (
	defaultBaseURL = "https://api.anthropic.com"
	apiVersion     = "2023-06-01"
	maxTokens      = 1024
)

// Client is a chat transport backed by the Anthropic messages API.
type Client struct {
	httpClient *resty.Client
	model      string
}

// NewClient creates a configured Anthropic client. An empty baseURL uses the public API.
func NewClient(apiKey, model, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", apiVersion).
		SetHeader("content-type", "application/json").
		SetTimeout(60 * time.Second)

	return &Client{httpClient: client, model: model}
}

type messageRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []message `json:"messages"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messageResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete sends the prompt, preceded by the conversation history, and returns the text reply.
func (c *Client) Complete(ctx context.Context, prompt models.ChatPrompt) (models.ChatReply, error) {
	messages := make([]message, 0, len(prompt.History)+1)
	for _, turn := range prompt.History {
		role := "user"
		if turn.Role == models.RoleModel {
			role = "assistant"
		}
		messages = append(messages, message{Role: role, Content: turn.Text})
	}
	messages = append(messages, message{Role: "user", Content: prompt.Prompt})

	var respBody messageResponse
	var apiErr errorResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(messageRequest{
			Model:     c.model,
			MaxTokens: maxTokens,
			System:    prompt.System,
			Messages:  messages,
		}).
		SetResult(&respBody).
		SetError(&apiErr).
		Post("/v1/messages")
	if err != nil {
		return models.ChatReply{}, fmt.Errorf("anthropic api call: %w", err)
	}
	if resp.IsError() {
		return models.ChatReply{}, fmt.Errorf("anthropic api error: status=%d, message=%s", resp.StatusCode(), apiErr.Error.Message)
	}

	var b strings.Builder
	for _, block := range respBody.Content {
		if block.Type == "" || block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return models.ChatReply{}, errors.New("empty response from anthropic")
	}
	return models.ChatReply{Text: b.String()}, nil
}
