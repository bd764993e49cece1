package port

import "context"

// LLMClient abstracts the language-understanding backend used for
// classification and extraction.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ImageTranscriber abstracts multimodal transcription of image bytes into
// plain text, used as the OCR path for image documents.
type ImageTranscriber interface {
	Transcribe(ctx context.Context, data []byte, contentType string) (string, error)
}
