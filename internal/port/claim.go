package port

import (
	"context"

	"medclaim/internal/domain"
)

// ClaimProcessor runs the full pipeline for one submission: text extraction,
// classification, per-kind extraction, validation, and decision.
type ClaimProcessor interface {
	Process(ctx context.Context, docs []domain.RawDocument) (*domain.ProcessedClaim, error)
}
