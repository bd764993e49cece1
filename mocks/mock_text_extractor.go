package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"medclaim/internal/domain"
)

// MockTextExtractor is a mock implementation of port.TextExtractor.
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(ctx context.Context, doc domain.RawDocument) (domain.ExtractedText, error) {
	args := m.Called(ctx, doc)
	return args.Get(0).(domain.ExtractedText), args.Error(1)
}
