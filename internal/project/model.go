package project

import (
	"errors"
	"fmt"
)

const (
	MaxNameLen        = 100
	MaxDescriptionLen = 500
	MaxManagerLen     = 50
)

var ErrInvalid = errors.New("invalid project")

// Project is a named work item. The numeric ID is assigned by the store and
// is the update/delete key.
type Project struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	ProjectName    string `json:"project_name" gorm:"column:project_name;size:100;not null"`
	Description    string `json:"description" gorm:"size:500;not null"`
	ProjectManager string `json:"project_manager" gorm:"column:project_manager;size:50;not null"`
}

func (Project) TableName() string { return "projects" }

func (p *Project) Validate() error {
	if p.ProjectName == "" {
		return fmt.Errorf("%w: project_name is required", ErrInvalid)
	}
	if len(p.ProjectName) > MaxNameLen {
		return fmt.Errorf("%w: project_name exceeds %d characters", ErrInvalid, MaxNameLen)
	}
	if p.Description == "" {
		return fmt.Errorf("%w: description is required", ErrInvalid)
	}
	if len(p.Description) > MaxDescriptionLen {
		return fmt.Errorf("%w: description exceeds %d characters", ErrInvalid, MaxDescriptionLen)
	}
	if p.ProjectManager == "" {
		return fmt.Errorf("%w: project_manager is required", ErrInvalid)
	}
	if len(p.ProjectManager) > MaxManagerLen {
		return fmt.Errorf("%w: project_manager exceeds %d characters", ErrInvalid, MaxManagerLen)
	}
	return nil
}
