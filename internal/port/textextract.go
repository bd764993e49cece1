package port

import (
	"context"

	"medclaim/internal/domain"
)

// TextExtractor turns a raw document into plain text.
type TextExtractor interface {
	Extract(ctx context.Context, doc domain.RawDocument) (domain.ExtractedText, error)
}
