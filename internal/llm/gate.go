package llm

import (
	"context"

	"medclaim/internal/port"
)

// Gate bounds the number of concurrent backend calls process-wide. Additional
// callers queue on the semaphore until a slot frees or their context ends.
type Gate struct {
	inner port.LLMClient
	sem   chan struct{}
}

// NewGate wraps inner so that at most maxConcurrent calls run at once.
func NewGate(inner port.LLMClient, maxConcurrent int) *Gate {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Gate{
		inner: inner,
		sem:   make(chan struct{}, maxConcurrent),
	}
}

func (g *Gate) Complete(ctx context.Context, prompt string) (string, error) {
	select {
	case g.sem <- struct{}{}:
	case <-ctx.Done():
		return "", ctx.Err()
	}
	defer func() { <-g.sem }()

	return g.inner.Complete(ctx, prompt)
}
