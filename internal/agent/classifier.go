package agent

import (
	"context"
	"log"

	"medclaim/internal/domain"
	"medclaim/internal/port"
)

// Classifier assigns a DocumentKind to extracted text using the backend.
type Classifier struct {
	client port.LLMClient
}

// NewClassifier creates a Classifier.
func NewClassifier(client port.LLMClient) *Classifier {
	return &Classifier{client: client}
}

// Classify returns the document kind for the given filename and text. Only a
// bounded prefix of the text is sent to the backend. A backend failure
// resolves to unknown with the error returned for diagnostics; it never
// aborts the caller's batch. A reply outside the known label set also maps to
// unknown, with no error.
func (c *Classifier) Classify(ctx context.Context, filename, text string) (domain.DocumentKind, error) {
	prompt := buildClassificationPrompt(filename, text)

	response, err := c.client.Complete(ctx, prompt)
	if err != nil {
		log.Printf("agent.Classifier: classification of %s failed: %v", filename, err)
		return domain.KindUnknown, err
	}

	kind := parseClassification(response)
	log.Printf("agent.Classifier: classified %s as %s", filename, kind)
	return kind, nil
}
