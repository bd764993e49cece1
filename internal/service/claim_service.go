package service

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"medclaim/internal/agent"
	"medclaim/internal/domain"
	"medclaim/internal/port"
)

// ClaimServiceConfig holds orchestration settings.
type ClaimServiceConfig struct {
	Workers int
}

// claimService drives the pipeline for a batch of documents: text extraction,
// classification, per-kind extraction, validation, and decision. It implements
// port.ClaimProcessor.
type claimService struct {
	extractor  port.TextExtractor
	classifier *agent.Classifier
	registry   *agent.Registry
	validator  *Validator
	engine     *DecisionEngine
	archive    *ArchiveService
	workers    int
}

// NewClaimService creates the claim pipeline orchestrator. archive may be nil
// to disable raw-submission archiving.
func NewClaimService(
	extractor port.TextExtractor,
	classifier *agent.Classifier,
	registry *agent.Registry,
	validator *Validator,
	engine *DecisionEngine,
	archive *ArchiveService,
	cfg ClaimServiceConfig,
) port.ClaimProcessor {
	workers := cfg.Workers
	if workers < 1 {
		workers = 4
	}
	return &claimService{
		extractor:  extractor,
		classifier: classifier,
		registry:   registry,
		validator:  validator,
		engine:     engine,
		archive:    archive,
		workers:    workers,
	}
}

// Process runs each document's pipeline independently over a bounded worker
// pool and assembles the bundle in submission order regardless of completion
// order. Per-document failures degrade that document only; cancellation
// aborts the whole request with no partial result.
func (s *claimService) Process(ctx context.Context, docs []domain.RawDocument) (*domain.ProcessedClaim, error) {
	if len(docs) == 0 {
		return nil, domain.ErrEmptySubmission
	}

	start := time.Now()
	log.Printf("claimService: processing %d documents", len(docs))

	// Results are indexed by submission position, not appended on
	// completion, so bundle order always matches input order.
	records := make([]domain.StructuredRecord, len(docs))
	diags := make([]string, len(docs))

	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup

	for i := range docs {
		wg.Add(1)
		go func(i int, doc domain.RawDocument) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				return
			}

			records[i], diags[i] = s.processOne(ctx, doc)
		}(i, docs[i])
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bundle := domain.ClaimBundle(records)
	report := s.validator.Validate(bundle)
	decision := s.engine.Decide(bundle, report)

	var errors []string
	processed := 0
	for i, rec := range records {
		if diags[i] != "" {
			errors = append(errors, diags[i])
		}
		if !rec.ExtractionFailed {
			processed++
		}
	}

	if s.archive != nil {
		s.archive.ArchiveAsync(docs)
	}

	elapsed := time.Since(start)
	log.Printf("claimService: completed in %s, decision: %s (%s)", elapsed, decision.Status, decision.Reason)

	return &domain.ProcessedClaim{
		Documents:  bundle,
		Validation: report,
		Decision:   decision,
		Metadata: domain.ClaimMetadata{
			ProcessingTimeSeconds: elapsed.Seconds(),
			ProcessedAt:           time.Now().UTC().Format(time.RFC3339),
			DocumentsReceived:     len(docs),
			DocumentsProcessed:    processed,
			ProcessingErrors:      errors,
		},
	}, nil
}

// processOne runs the per-document pipeline: extract text, classify, extract
// the structured record. Every failure mode yields a degraded record plus a
// diagnostic string; nothing propagates as an error.
func (s *claimService) processOne(ctx context.Context, doc domain.RawDocument) (domain.StructuredRecord, string) {
	text, err := s.extractor.Extract(ctx, doc)
	if err != nil {
		log.Printf("claimService: text extraction failed for %s: %v", doc.FileName, err)
		return domain.StructuredRecord{
			Kind:             domain.KindUnknown,
			FileName:         doc.FileName,
			ExtractionFailed: true,
			Error:            err.Error(),
		}, fmt.Sprintf("%s: %v", doc.FileName, err)
	}

	kind, classifyErr := s.classifier.Classify(ctx, doc.FileName, text.Text)

	rec := s.registry.Extract(ctx, kind, text.Text)
	rec.FileName = doc.FileName

	var diag string
	switch {
	case classifyErr != nil:
		diag = fmt.Sprintf("%s: classification failed: %v", doc.FileName, classifyErr)
	case rec.ExtractionFailed:
		diag = fmt.Sprintf("%s: extraction failed: %s", doc.FileName, rec.Error)
	}
	return rec, diag
}
