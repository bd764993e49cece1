package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockLLMClient is a mock implementation of port.LLMClient.
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

// MockImageTranscriber is a mock implementation of port.ImageTranscriber.
type MockImageTranscriber struct {
	mock.Mock
}

func (m *MockImageTranscriber) Transcribe(ctx context.Context, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, data, contentType)
	return args.String(0), args.Error(1)
}
