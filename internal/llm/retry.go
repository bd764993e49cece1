package llm

import (
	"context"
	"errors"
	"log"
	"time"

	"medclaim/internal/port"
)

const (
	defaultBaseDelay = 500 * time.Millisecond
	maxRetryDelay    = 30 * time.Second
)

// RetryClient wraps an LLMClient with bounded exponential-backoff retries.
// Rate-limit errors wait for the server-advised interval when one is given;
// other transient errors back off exponentially. Exhausted retries surface
// the last error to the caller.
type RetryClient struct {
	inner       port.LLMClient
	maxAttempts int
	baseDelay   time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// NewRetryClient wraps inner with up to maxRetries retries after the first attempt.
func NewRetryClient(inner port.LLMClient, maxRetries int) *RetryClient {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &RetryClient{
		inner:       inner,
		maxAttempts: maxRetries + 1,
		baseDelay:   defaultBaseDelay,
		sleep:       sleepCtx,
	}
}

func (c *RetryClient) Complete(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	delay := c.baseDelay

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		out, err := c.inner.Complete(ctx, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err

		if attempt == c.maxAttempts || ctx.Err() != nil {
			break
		}

		wait := delay
		var rlErr *RateLimitError
		if errors.As(err, &rlErr) && rlErr.RetryAfter > 0 {
			wait = rlErr.RetryAfter
		}
		if wait > maxRetryDelay {
			wait = maxRetryDelay
		}

		log.Printf("llm.RetryClient: attempt %d/%d failed, retrying in %s: %v",
			attempt, c.maxAttempts, wait, err)

		if err := c.sleep(ctx, wait); err != nil {
			return "", err
		}
		delay *= 2
	}

	return "", lastErr
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
