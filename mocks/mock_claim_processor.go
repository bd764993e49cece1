package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"medclaim/internal/domain"
)

// MockClaimProcessor is a mock implementation of port.ClaimProcessor.
type MockClaimProcessor struct {
	mock.Mock
}

func (m *MockClaimProcessor) Process(ctx context.Context, docs []domain.RawDocument) (*domain.ProcessedClaim, error) {
	args := m.Called(ctx, docs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ProcessedClaim), args.Error(1)
}
