package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"medclaim/internal/domain"
	"medclaim/internal/port"
)

// ArchiveService stores raw submissions in object storage for audit. It is
// best-effort: failures are logged and never affect the claim decision.
type ArchiveService struct {
	storage port.ObjectStorage
	bucket  string
}

// NewArchiveService creates an ArchiveService, or nil when no bucket is
// configured.
func NewArchiveService(storage port.ObjectStorage, bucket string) *ArchiveService {
	if storage == nil || bucket == "" {
		return nil
	}
	return &ArchiveService{storage: storage, bucket: bucket}
}

// ArchiveAsync uploads the documents under a fresh claim prefix in the
// background. A detached context is used so archiving survives the request.
func (s *ArchiveService) ArchiveAsync(docs []domain.RawDocument) {
	claimID := uuid.New()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		s.archive(ctx, claimID, docs)
	}()
}

func (s *ArchiveService) archive(ctx context.Context, claimID uuid.UUID, docs []domain.RawDocument) {
	for i, doc := range docs {
		key := fmt.Sprintf("claims/%s/%02d-%s", claimID, i, doc.FileName)
		_, err := s.storage.Upload(ctx, port.UploadInput{
			Bucket:      s.bucket,
			Key:         key,
			Body:        bytes.NewReader(doc.Content),
			ContentType: doc.ContentType,
		})
		if err != nil {
			log.Printf("archiveService: upload of %s failed: %v", key, err)
			continue
		}
	}
	log.Printf("archiveService: archived %d documents under claims/%s", len(docs), claimID)
}
