package main

import (
	"fmt"
	"log"

	"medclaim/internal/agent"
	"medclaim/internal/config"
	"medclaim/internal/domain"
	"medclaim/internal/handler"
	"medclaim/internal/llm"
	"medclaim/internal/llm/gemini"
	"medclaim/internal/port"
	"medclaim/internal/router"
	"medclaim/internal/service"
	s3storage "medclaim/internal/storage/s3"
	"medclaim/internal/textextract"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Backend client with retry and a process-wide concurrency gate in front.
	geminiClient := gemini.NewClient(&cfg.LLM)
	var backend port.LLMClient = llm.NewGate(
		llm.NewRetryClient(geminiClient, cfg.LLM.MaxRetries),
		cfg.LLM.MaxConcurrent,
	)

	extractor := textextract.New(geminiClient)
	classifier := agent.NewClassifier(backend)
	registry := agent.DefaultRegistry(backend)
	validator := service.NewValidator(requiredKinds(cfg.Claim.RequiredDocuments))
	engine := service.NewDecisionEngine(service.PolicyFromConfig(&cfg.Claim))

	var archive *service.ArchiveService
	if cfg.Archive.Bucket != "" {
		storage, err := s3storage.NewS3Client(&cfg.Archive)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
		archive = service.NewArchiveService(storage, cfg.Archive.Bucket)
	}

	claimSvc := service.NewClaimService(
		extractor, classifier, registry, validator, engine, archive,
		service.ClaimServiceConfig{Workers: cfg.Claim.Workers},
	)

	claimH := handler.NewClaimHandler(claimSvc)
	healthH := handler.NewHealthHandler()

	r := router.Setup(claimH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func requiredKinds(names []string) []domain.DocumentKind {
	var kinds []domain.DocumentKind
	for _, name := range names {
		if kind := domain.ParseDocumentKind(name); kind != domain.KindUnknown {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}
