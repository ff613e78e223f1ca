package repository

import (
	"context"
	"errors"

	"github.com/geomark/geomark/internal/document"
)

var (
	ErrNotFound    = errors.New("document not found")
	ErrDuplicateID = errors.New("document_id already in use")
)

// Repository defines persistence operations for documents. All operations
// are single-row or single-table scans; the store serializes conflicting
// writes itself.
type Repository interface {
	List(ctx context.Context) ([]document.Document, error)
	ListByCategory(ctx context.Context, category string) ([]document.Document, error)
	SearchDescription(ctx context.Context, term string) ([]document.Document, error)
	GetByDocumentID(ctx context.Context, docID string) (*document.Document, error)
	ExistsDocumentID(ctx context.Context, docID string) (bool, error)
	Create(ctx context.Context, d *document.Document) error
	Update(ctx context.Context, d *document.Document) error
	DeleteByDocumentID(ctx context.Context, docID string) error
}
