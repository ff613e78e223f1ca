package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/geomark/geomark/internal/document"
)

// GormRepo implements Repository against the relational store. The unique
// index on document_id makes persistence-time duplicates surface as
// ErrDuplicateID so callers can regenerate and retry.
type GormRepo struct {
	db *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

func (r *GormRepo) List(ctx context.Context) ([]document.Document, error) {
	var out []document.Document
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) ListByCategory(ctx context.Context, category string) ([]document.Document, error) {
	var out []document.Document
	if err := r.db.WithContext(ctx).Where("category = ?", category).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) SearchDescription(ctx context.Context, term string) ([]document.Document, error) {
	var out []document.Document
	needle := "%" + strings.ToLower(term) + "%"
	if err := r.db.WithContext(ctx).Where("LOWER(description) LIKE ?", needle).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) GetByDocumentID(ctx context.Context, docID string) (*document.Document, error) {
	var d document.Document
	err := r.db.WithContext(ctx).Where("document_id = ?", docID).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *GormRepo) ExistsDocumentID(ctx context.Context, docID string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&document.Document{}).Where("document_id = ?", docID).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormRepo) Create(ctx context.Context, d *document.Document) error {
	if err := r.db.WithContext(ctx).Create(d).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateID
		}
		return err
	}
	return nil
}

func (r *GormRepo) Update(ctx context.Context, d *document.Document) error {
	res := r.db.WithContext(ctx).Model(&document.Document{}).
		Where("document_id = ?", d.DocumentID).
		Updates(map[string]interface{}{
			"name":        d.Name,
			"description": d.Description,
			"category":    d.Category,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	cur, err := r.GetByDocumentID(ctx, d.DocumentID)
	if err != nil {
		return err
	}
	*d = *cur
	return nil
}

func (r *GormRepo) DeleteByDocumentID(ctx context.Context, docID string) error {
	res := r.db.WithContext(ctx).Where("document_id = ?", docID).Delete(&document.Document{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
