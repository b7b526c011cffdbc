package ocr

import (
	"context"
	"fmt"
	"strings"

	"cardscan/api/internal/prompt"
)

// Engine is a multimodal model that answers a prompt payload with plain text.
// Implementations must be safe for concurrent use.
type Engine interface {
	Name() string
	GetModel() string
	Complete(ctx context.Context, p prompt.Payload) (string, error)
}

type Engines struct {
	OpenAI Engine
	Gemini Engine
}

func (e *Engines) GetEngine(llmName string) (Engine, error) {
	var eng Engine
	switch strings.ToLower(strings.TrimSpace(llmName)) {
	case "gpt", "openai":
		eng = e.OpenAI
	case "gemini":
		eng = e.Gemini
	default:
		return nil, fmt.Errorf("unknown llm_name %q; use 'gpt' or 'gemini'", llmName)
	}
	if eng == nil {
		return nil, fmt.Errorf("llm %q is not configured", llmName)
	}
	return eng, nil
}
