package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/geomark/geomark/internal/project"
)

// GormRepo implements Repository against the relational store.
type GormRepo struct {
	db *gorm.DB
}

func NewGormRepo(db *gorm.DB) *GormRepo {
	return &GormRepo{db: db}
}

func (r *GormRepo) List(ctx context.Context) ([]project.Project, error) {
	var out []project.Project
	if err := r.db.WithContext(ctx).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) ListByManager(ctx context.Context, manager string) ([]project.Project, error) {
	var out []project.Project
	if err := r.db.WithContext(ctx).Where("project_manager = ?", manager).Order("id").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *GormRepo) GetByID(ctx context.Context, id uint) (*project.Project, error) {
	var p project.Project
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *GormRepo) Create(ctx context.Context, p *project.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *GormRepo) Update(ctx context.Context, p *project.Project) error {
	res := r.db.WithContext(ctx).Model(&project.Project{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"project_name":    p.ProjectName,
			"description":     p.Description,
			"project_manager": p.ProjectManager,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	cur, err := r.GetByID(ctx, p.ID)
	if err != nil {
		return err
	}
	*p = *cur
	return nil
}

func (r *GormRepo) DeleteByID(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&project.Project{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
