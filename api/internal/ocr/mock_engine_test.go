package ocr

import (
	"context"

	"github.com/stretchr/testify/mock"

	"cardscan/api/internal/prompt"
)

type MockEngine struct {
	mock.Mock
}

func (m *MockEngine) Name() string     { return "mock" }
func (m *MockEngine) GetModel() string { return "mock-1" }

func (m *MockEngine) Complete(ctx context.Context, p prompt.Payload) (string, error) {
	args := m.Called(ctx, p.Name)
	return args.String(0), args.Error(1)
}
