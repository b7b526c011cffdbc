package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"cardscan/api/internal/prompt"
)

type Engine struct {
	Model  string
	client *genai.Client
}

// New opens the Gemini client. Close must be called on shutdown.
func New(ctx context.Context, apiKey, model string) (*Engine, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY is empty")
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Engine{
		Model:  strings.TrimSpace(model),
		client: cl,
	}, nil
}

func (e *Engine) Name() string     { return "gemini" }
func (e *Engine) GetModel() string { return e.Model }

func (e *Engine) Close() error {
	return e.client.Close()
}

func (e *Engine) Complete(ctx context.Context, p prompt.Payload) (string, error) {
	m := e.client.GenerativeModel(e.Model)
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	m.GenerationConfig = genai.GenerationConfig{
		Temperature: ptrFloat32(p.Temperature),
	}
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(p.System)},
	}

	resp, err := m.GenerateContent(ctx,
		genai.Text(p.Text),
		genai.Blob{MIMEType: p.Image.MIME, Data: p.Image.Data},
	)
	if err != nil {
		return "", fmt.Errorf("gemini %s: %w", p.Name, err)
	}
	txt := firstText(resp)
	if txt == "" {
		return "", fmt.Errorf("gemini %s: empty response", p.Name)
	}
	return strings.TrimSpace(txt), nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
