package ocr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpretClassification(t *testing.T) {
	tests := map[string]Classification{
		"Yes, clearly a card": IsCard,
		"yes":                 IsCard,
		"  YES\n":             IsCard,
		"no":                  NotCard,
		"maybe":               NotCard,
		"":                    NotCard,
		"I think yes":         NotCard,
	}
	for in, want := range tests {
		assert.Equal(t, want, InterpretClassification(in), "%q", in)
	}
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("scan: %w", &Error{Kind: KindExtraction, Message: "boom"})
	assert.Equal(t, KindExtraction, KindOf(wrapped))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, ErrNotBusinessCard.Message, ErrNotBusinessCard.Error())
}

func TestEnginesGetEngine(t *testing.T) {
	gpt := new(MockEngine)
	engs := &Engines{OpenAI: gpt}

	e, err := engs.GetEngine("gpt")
	assert.NoError(t, err)
	assert.Same(t, gpt, e)

	e, err = engs.GetEngine("OpenAI")
	assert.NoError(t, err)
	assert.Same(t, gpt, e)

	_, err = engs.GetEngine("gemini")
	assert.ErrorContains(t, err, "not configured")

	_, err = engs.GetEngine("yandex")
	assert.ErrorContains(t, err, "unknown llm_name")
}
