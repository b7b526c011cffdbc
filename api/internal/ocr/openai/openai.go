package openai

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	goopenai "github.com/sashabaranov/go-openai"

	"cardscan/api/internal/prompt"
)

// Engine talks to the OpenAI chat completions API. The underlying client is
// created once and shared by all requests.
type Engine struct {
	Model  string
	client *goopenai.Client
}

// New builds an engine; baseURL may be empty to use the public API.
func New(key, model, baseURL string) *Engine {
	cfg := goopenai.DefaultConfig(strings.TrimSpace(key))
	if u := strings.TrimSpace(baseURL); u != "" {
		cfg.BaseURL = strings.TrimRight(u, "/")
	}
	return &Engine{
		Model:  strings.TrimSpace(model),
		client: goopenai.NewClientWithConfig(cfg),
	}
}

func (e *Engine) Name() string     { return "gpt" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Complete(ctx context.Context, p prompt.Payload) (string, error) {
	req := goopenai.ChatCompletionRequest{
		Model: e.Model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: p.System},
			{
				Role: goopenai.ChatMessageRoleUser,
				MultiContent: []goopenai.ChatMessagePart{
					{Type: goopenai.ChatMessagePartTypeText, Text: p.Text},
					{
						Type: goopenai.ChatMessagePartTypeImageURL,
						ImageURL: &goopenai.ChatMessageImageURL{
							URL:    p.Image.DataURL(),
							Detail: goopenai.ImageURLDetailHigh,
						},
					},
				},
			},
		},
		Temperature: temperature(p.Temperature),
	}

	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai %s: %w", p.Name, err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai " + p.Name + ": empty response")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// temperature works around omitempty on the request field: a literal 0 would be
// dropped and the API default (1) used instead.
func temperature(t float32) float32 {
	if t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return t
}
