package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/geomark/geomark/internal/project"
	projservice "github.com/geomark/geomark/internal/project/service"
	"github.com/geomark/geomark/pkg/middleware"
)

// ProjectHandler exposes the project endpoints.
type ProjectHandler struct {
	svc *projservice.Service
}

func NewProjectHandler(svc *projservice.Service) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

// Register wires the project routes behind their required scopes.
// The full listing requires get:documents, not get:projects — that asymmetry
// is inherited from the deployed API and kept for client compatibility.
func (h *ProjectHandler) Register(r *gin.Engine, ver middleware.Verifier, after ...gin.HandlerFunc) {
	chain := func(scope string, final gin.HandlerFunc) []gin.HandlerFunc {
		hs := append([]gin.HandlerFunc{middleware.RequireScope(ver, scope)}, after...)
		return append(hs, final)
	}
	r.GET("/projects", chain("get:documents", h.List)...)
	r.GET("/projects/:project_manager", chain("get:projects", h.ListByManager)...)
	r.POST("/projects", chain("post:projects", h.Create)...)
	r.PATCH("/projects", chain("patch:projects", h.Update)...)
	r.DELETE("/projects", chain("delete:projects", h.Delete)...)
}

// List returns all projects with a count.
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.svc.List(c.Request.Context())
	if err != nil {
		Fail(c, KindNotFound)
		return
	}
	OK(c, gin.H{"projects": projects, "total_projects": len(projects)})
}

// ListByManager filters projects by manager. Empty result is 404.
func (h *ProjectHandler) ListByManager(c *gin.Context) {
	manager := c.Param("project_manager")
	projects, err := h.svc.ListByManager(c.Request.Context(), manager)
	if err != nil || len(projects) == 0 {
		Fail(c, KindNotFound)
		return
	}
	OK(c, gin.H{"projects": projects, "project_manager": manager})
}

// Create adds a project. The response echoes the submitted fields without
// the store-assigned id.
func (h *ProjectHandler) Create(c *gin.Context) {
	var req struct {
		ProjectName    string `json:"project_name"`
		Description    string `json:"description"`
		ProjectManager string `json:"project_manager"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, KindBadRequest)
		return
	}

	p := &project.Project{
		ProjectName:    req.ProjectName,
		Description:    req.Description,
		ProjectManager: req.ProjectManager,
	}
	if err := h.svc.Create(c.Request.Context(), p); err != nil {
		Fail(c, KindBadRequest)
		return
	}
	OK(c, gin.H{"new_project": gin.H{
		"project_name":    p.ProjectName,
		"description":     p.Description,
		"project_manager": p.ProjectManager,
	}})
}

// Update replaces a project's fields, keyed by project_id in the body.
func (h *ProjectHandler) Update(c *gin.Context) {
	var req struct {
		ProjectID      *uint  `json:"project_id"`
		ProjectName    string `json:"project_name"`
		Description    string `json:"description"`
		ProjectManager string `json:"project_manager"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, KindBadRequest)
		return
	}
	if req.ProjectID == nil {
		Fail(c, KindNotFound)
		return
	}

	p := &project.Project{
		ID:             *req.ProjectID,
		ProjectName:    req.ProjectName,
		Description:    req.Description,
		ProjectManager: req.ProjectManager,
	}
	if err := h.svc.Update(c.Request.Context(), p); err != nil {
		if errors.Is(err, projservice.ErrNotFound) {
			Fail(c, KindNotFound)
			return
		}
		Fail(c, KindBadRequest)
		return
	}
	OK(c, gin.H{"updated_project": p, "message": "Project updated"})
}

// Delete removes a project keyed by project_id in the body.
func (h *ProjectHandler) Delete(c *gin.Context) {
	var req struct {
		ProjectID *uint `json:"project_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, KindBadRequest)
		return
	}
	if req.ProjectID == nil {
		Fail(c, KindNotFound)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), *req.ProjectID); err != nil {
		if errors.Is(err, projservice.ErrNotFound) {
			Fail(c, KindNotFound)
			return
		}
		Fail(c, KindBadRequest)
		return
	}
	// same verbatim confirmation string contract as document deletion
	OK(c, gin.H{"deleted_project": "Project was deleted fromt the database!"})
}
