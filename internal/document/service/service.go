package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/geomark/geomark/internal/document"
	"github.com/geomark/geomark/internal/document/repository"
	"github.com/geomark/geomark/pkg/logger"
	"github.com/geomark/geomark/pkg/metrics"
)

// maxGenerateAttempts caps the id uniqueness loop. The 52^10 keyspace is far
// from saturation in any realistic deployment, so hitting the cap means
// something is wrong with the store, not the generator.
const maxGenerateAttempts = 1000

var (
	ErrGenerationExhausted = errors.New("document id generation exhausted")
	ErrNotFound            = repository.ErrNotFound
)

// QREncoder renders and persists a document's QR image.
type QREncoder interface {
	Encode(ctx context.Context, d *document.Document) error
}

// Service owns document business operations: id generation, the create/QR
// coupling, and the read/update/delete paths used by the handlers.
type Service struct {
	repo repository.Repository
	qr   QREncoder
}

func New(repo repository.Repository, qr QREncoder) *Service {
	return &Service{repo: repo, qr: qr}
}

func (s *Service) List(ctx context.Context) ([]document.Document, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByCategory(ctx context.Context, category string) ([]document.Document, error) {
	return s.repo.ListByCategory(ctx, category)
}

func (s *Service) Search(ctx context.Context, term string) ([]document.Document, error) {
	return s.repo.SearchDescription(ctx, term)
}

// Create validates the document, assigns a unique 10-letter id and persists
// the row, then renders the QR image. Image persistence is strict: on failure
// the inserted row is removed and the create fails.
func (s *Service) Create(ctx context.Context, d *document.Document) error {
	if err := d.Validate(); err != nil {
		return err
	}

	// check-then-insert is best effort; a concurrent create can win the same
	// candidate id, in which case the unique index rejects the insert and we
	// draw again.
	inserted := false
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		id, err := s.generateDocumentID(ctx)
		if err != nil {
			return err
		}
		d.DocumentID = id
		err = s.repo.Create(ctx, d)
		if err == nil {
			inserted = true
			break
		}
		if errors.Is(err, repository.ErrDuplicateID) {
			metrics.DocIDRetries.Inc()
			continue
		}
		return err
	}
	if !inserted {
		return ErrGenerationExhausted
	}

	if err := s.qr.Encode(ctx, d); err != nil {
		logger.Errorf("qr encode failed for %s, rolling back create: %v", d.DocumentID, err)
		if delErr := s.repo.DeleteByDocumentID(ctx, d.DocumentID); delErr != nil {
			logger.Errorf("rollback of %s failed: %v", d.DocumentID, delErr)
		}
		return fmt.Errorf("qr image persistence: %w", err)
	}
	return nil
}

// Update replaces the mutable fields of the document keyed by document_id.
// Existence is checked before field validation so an unknown key is reported
// as not-found even when the submitted fields are also bad.
func (s *Service) Update(ctx context.Context, d *document.Document) error {
	if _, err := s.repo.GetByDocumentID(ctx, d.DocumentID); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}
	return s.repo.Update(ctx, d)
}

func (s *Service) Delete(ctx context.Context, docID string) error {
	return s.repo.DeleteByDocumentID(ctx, docID)
}

func (s *Service) generateDocumentID(ctx context.Context) (string, error) {
	for i := 0; i < maxGenerateAttempts; i++ {
		id := document.NewDocumentID()
		exists, err := s.repo.ExistsDocumentID(ctx, id)
		if err != nil {
			return "", err
		}
		if !exists {
			return id, nil
		}
		metrics.DocIDRetries.Inc()
	}
	return "", ErrGenerationExhausted
}
