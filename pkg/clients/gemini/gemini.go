package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/mamadbah2/eggmonitor/internal/domain/models"
)

const defaultModel = "gemini-2.5-flash"

// Client is a chat transport backed by the Gemini API with Google Search grounding.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client for apiKey.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

// Complete sends the prompt with the conversation history and returns the
// answer together with any web sources used for grounding.
func (c *Client) Complete(ctx context.Context, prompt models.ChatPrompt) (models.ChatReply, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, buildContents(prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(prompt.System, genai.RoleUser),
		Tools:             []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		return models.ChatReply{}, fmt.Errorf("gemini generate content: %w", err)
	}
	return toReply(resp), nil
}

func buildContents(prompt models.ChatPrompt) []*genai.Content {
	contents := make([]*genai.Content, 0, len(prompt.History)+1)
	for _, turn := range prompt.History {
		role := genai.Role(genai.RoleUser)
		if turn.Role == models.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(turn.Text, role))
	}
	return append(contents, genai.NewContentFromText(prompt.Prompt, genai.RoleUser))
}

func toReply(resp *genai.GenerateContentResponse) models.ChatReply {
	if resp == nil {
		return models.ChatReply{}
	}
	reply := models.ChatReply{Text: resp.Text()}
	if len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return reply
	}
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" || chunk.Web.Title == "" {
			continue
		}
		reply.Sources = append(reply.Sources, models.ChatSource{URI: chunk.Web.URI, Title: chunk.Web.Title})
	}
	return reply
}
