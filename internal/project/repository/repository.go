package repository

import (
	"context"
	"errors"

	"github.com/geomark/geomark/internal/project"
)

var ErrNotFound = errors.New("project not found")

// Repository defines persistence operations for projects.
type Repository interface {
	List(ctx context.Context) ([]project.Project, error)
	ListByManager(ctx context.Context, manager string) ([]project.Project, error)
	GetByID(ctx context.Context, id uint) (*project.Project, error)
	Create(ctx context.Context, p *project.Project) error
	Update(ctx context.Context, p *project.Project) error
	DeleteByID(ctx context.Context, id uint) error
}
