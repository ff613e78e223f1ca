package service

import (
	"context"

	"github.com/geomark/geomark/internal/project"
	"github.com/geomark/geomark/internal/project/repository"
)

var ErrNotFound = repository.ErrNotFound

// Service owns project business operations.
type Service struct {
	repo repository.Repository
}

func New(repo repository.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]project.Project, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByManager(ctx context.Context, manager string) ([]project.Project, error) {
	return s.repo.ListByManager(ctx, manager)
}

func (s *Service) Create(ctx context.Context, p *project.Project) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return s.repo.Create(ctx, p)
}

// Update replaces all mutable fields of the project keyed by numeric id.
// Existence is checked before field validation so an unknown id is reported
// as not-found even when the submitted fields are also bad.
func (s *Service) Update(ctx context.Context, p *project.Project) error {
	if _, err := s.repo.GetByID(ctx, p.ID); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	return s.repo.Update(ctx, p)
}

func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.repo.DeleteByID(ctx, id)
}
