package textextract

import (
	"context"
	"fmt"
	"strings"

	"medclaim/internal/domain"
	"medclaim/internal/port"
)

// Extractor dispatches text extraction by declared content type: PDF text
// layer for PDFs, backend transcription for images, passthrough for plain
// text. It implements port.TextExtractor.
type Extractor struct {
	transcriber port.ImageTranscriber
}

// New creates an Extractor. transcriber may be nil, in which case image
// documents fail with ErrUnsupportedFormat.
func New(transcriber port.ImageTranscriber) *Extractor {
	return &Extractor{transcriber: transcriber}
}

func (e *Extractor) Extract(ctx context.Context, doc domain.RawDocument) (domain.ExtractedText, error) {
	contentType := normalizeContentType(doc.ContentType)

	switch contentType {
	case "application/pdf":
		text, err := extractPDFText(doc.Content)
		if err != nil {
			return domain.ExtractedText{}, fmt.Errorf("%w: %s: %v", domain.ErrExtractionError, doc.FileName, err)
		}
		return domain.ExtractedText{
			SourceFileName: doc.FileName,
			Text:           text,
			Method:         domain.MethodPDFText,
		}, nil

	case "image/jpeg", "image/png":
		if e.transcriber == nil {
			return domain.ExtractedText{}, fmt.Errorf("%w: no transcriber configured for %s", domain.ErrUnsupportedFormat, contentType)
		}
		text, err := e.transcriber.Transcribe(ctx, doc.Content, contentType)
		if err != nil {
			return domain.ExtractedText{}, fmt.Errorf("%w: %s: %v", domain.ErrExtractionError, doc.FileName, err)
		}
		return domain.ExtractedText{
			SourceFileName: doc.FileName,
			Text:           text,
			Method:         domain.MethodOCR,
		}, nil

	case "text/plain":
		return domain.ExtractedText{
			SourceFileName: doc.FileName,
			Text:           string(doc.Content),
			Method:         domain.MethodPlainText,
		}, nil

	default:
		return domain.ExtractedText{}, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, doc.ContentType)
	}
}

// normalizeContentType strips parameters like "; charset=utf-8".
func normalizeContentType(ct string) string {
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
