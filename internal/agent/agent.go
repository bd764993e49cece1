package agent

import (
	"context"

	"medclaim/internal/domain"
	"medclaim/internal/port"
)

// ExtractionAgent parses free document text into one kind's structured record.
// Implementations never return an error: failures are encoded in the record's
// ExtractionFailed flag so a bad document cannot abort a batch.
type ExtractionAgent interface {
	Kind() domain.DocumentKind
	Extract(ctx context.Context, text string) domain.StructuredRecord
}

// Registry maps each DocumentKind to its extraction agent. Kinds without an
// agent (including unknown) resolve to an empty record tagged with the kind.
type Registry struct {
	agents map[domain.DocumentKind]ExtractionAgent
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{agents: make(map[domain.DocumentKind]ExtractionAgent)}
}

// Register adds an agent to the registry.
func (r *Registry) Register(a ExtractionAgent) {
	r.agents[a.Kind()] = a
}

// Get returns the agent for a kind, or nil if none is registered.
func (r *Registry) Get(kind domain.DocumentKind) ExtractionAgent {
	return r.agents[kind]
}

// Extract dispatches to the agent registered for kind.
func (r *Registry) Extract(ctx context.Context, kind domain.DocumentKind, text string) domain.StructuredRecord {
	a := r.agents[kind]
	if a == nil {
		return domain.StructuredRecord{Kind: kind}
	}
	return a.Extract(ctx, text)
}

// DefaultRegistry returns a registry with all five document-kind agents wired
// to the given backend client.
func DefaultRegistry(client port.LLMClient) *Registry {
	r := NewRegistry()
	r.Register(NewBillAgent(client))
	r.Register(NewDischargeAgent(client))
	r.Register(NewIDCardAgent(client))
	r.Register(NewPrescriptionAgent(client))
	r.Register(NewLabReportAgent(client))
	return r
}

func failedRecord(kind domain.DocumentKind, err error) domain.StructuredRecord {
	return domain.StructuredRecord{
		Kind:             kind,
		ExtractionFailed: true,
		Error:            err.Error(),
	}
}
