package advisor

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Model is the text generation backend of an Advisor.
type Model interface {
	GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	NewChat(ctx context.Context, config *genai.GenerateContentConfig) (Chat, error)
}

// Chat is a conversation that keeps its history.
type Chat interface {
	Send(ctx context.Context, parts ...*genai.Part) (*genai.GenerateContentResponse, error)
}

// Gemini is a Model backed by the Gemini API.
type Gemini struct {
	client *genai.Client
	model  string
}

// NewGemini creates a Gemini client using apiKey.
func NewGemini(ctx context.Context, apiKey, model string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &Gemini{client: client, model: model}, nil
}

// Name returns the model name.
func (g *Gemini) Name() string { return g.model }

func (g *Gemini) GenerateContent(ctx context.Context, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.client.Models.GenerateContent(ctx, g.model, contents, config)
}

func (g *Gemini) NewChat(ctx context.Context, config *genai.GenerateContentConfig) (Chat, error) {
	return g.client.Chats.Create(ctx, g.model, config, nil)
}
