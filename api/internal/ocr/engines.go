package ocr

import (
	"context"

	"cardscan/api/internal/config"
	"cardscan/api/internal/ocr/gemini"
	"cardscan/api/internal/ocr/openai"
)

// NewEngines builds every engine whose credentials are configured.
func NewEngines(ctx context.Context, cfg *config.Config) (*Engines, error) {
	engs := &Engines{}
	if cfg.OpenAIAPIKey != "" {
		engs.OpenAI = openai.New(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL)
	}
	if cfg.GeminiAPIKey != "" {
		g, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		engs.Gemini = g
	}
	return engs, nil
}

// Close releases provider clients that hold connections.
func (e *Engines) Close() error {
	if c, ok := e.Gemini.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
