package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/geomark/geomark/internal/document"
	docservice "github.com/geomark/geomark/internal/document/service"
	"github.com/geomark/geomark/pkg/middleware"
)

// DocumentHandler exposes the document endpoints. The store handle comes in
// through the service; nothing here is process-global.
type DocumentHandler struct {
	svc *docservice.Service
}

func NewDocumentHandler(svc *docservice.Service) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// Register wires the document routes, each behind its required scope.
// /documents/search must be registered alongside /documents/:category; gin
// gives the static segment priority. Middleware in after runs between scope
// enforcement and the handler, so it sees the verified claims (the rate
// limiter keys on them).
func (h *DocumentHandler) Register(r *gin.Engine, ver middleware.Verifier, after ...gin.HandlerFunc) {
	chain := func(scope string, final gin.HandlerFunc) []gin.HandlerFunc {
		hs := append([]gin.HandlerFunc{middleware.RequireScope(ver, scope)}, after...)
		return append(hs, final)
	}
	r.GET("/documents", chain("get:documents", h.List)...)
	r.GET("/documents/search", chain("get:documents", h.Search)...)
	r.GET("/documents/:category", chain("get:documents", h.ListByCategory)...)
	r.POST("/documents", chain("post:documents", h.Create)...)
	r.PATCH("/documents", chain("patch:document", h.Update)...)
	r.DELETE("/documents", chain("delete:documents", h.Delete)...)
}

// List returns lat/lon and document_id of all documents.
func (h *DocumentHandler) List(c *gin.Context) {
	docs, err := h.svc.List(c.Request.Context())
	if err != nil {
		Fail(c, KindNotFound)
		return
	}
	points := make([]document.Point, 0, len(docs))
	for _, d := range docs {
		points = append(points, d.Point())
	}
	OK(c, gin.H{"all_documents": points})
}

// ListByCategory returns all documents in a category. An empty result is
// 404, not an empty list; clients treat an unknown category and an empty one
// the same way.
func (h *DocumentHandler) ListByCategory(c *gin.Context) {
	category := c.Param("category")
	docs, err := h.svc.ListByCategory(c.Request.Context(), category)
	if err != nil || len(docs) == 0 {
		Fail(c, KindNotFound)
		return
	}
	OK(c, gin.H{"documents_from_category": docs, "category": category})
}

// Search matches the search term against document descriptions,
// case-insensitively. Empty result is 404.
func (h *DocumentHandler) Search(c *gin.Context) {
	var req struct {
		SearchTerm *string `json:"search_term"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.SearchTerm == nil {
		Fail(c, KindBadRequest)
		return
	}
	docs, err := h.svc.Search(c.Request.Context(), *req.SearchTerm)
	if err != nil || len(docs) == 0 {
		Fail(c, KindNotFound)
		return
	}
	OK(c, gin.H{"matched_documents": docs, "search_term": *req.SearchTerm})
}

// Create adds a document, generating its unique id and QR image.
func (h *DocumentHandler) Create(c *gin.Context) {
	var req struct {
		Lat         *float64 `json:"lat"`
		Lon         *float64 `json:"lon"`
		Category    string   `json:"category"`
		Name        string   `json:"name"`
		Description string   `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Lat == nil || req.Lon == nil {
		Fail(c, KindBadRequest)
		return
	}

	d := &document.Document{
		Lat:         *req.Lat,
		Lon:         *req.Lon,
		Category:    req.Category,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.svc.Create(c.Request.Context(), d); err != nil {
		Fail(c, KindBadRequest)
		return
	}
	OK(c, gin.H{"new_document": d})
}

// Update replaces a document's mutable fields, keyed by document_id in the
// body. An unknown (or missing) document_id is 404, a bad field set is 400.
func (h *DocumentHandler) Update(c *gin.Context) {
	var req struct {
		DocumentID  string `json:"document_id"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, KindBadRequest)
		return
	}
	if req.DocumentID == "" {
		Fail(c, KindNotFound)
		return
	}

	d := &document.Document{
		DocumentID:  req.DocumentID,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
	}
	if err := h.svc.Update(c.Request.Context(), d); err != nil {
		if errors.Is(err, docservice.ErrNotFound) {
			Fail(c, KindNotFound)
			return
		}
		Fail(c, KindBadRequest)
		return
	}
	OK(c, gin.H{"updated_document": d, "message": "Document updated"})
}

// Delete removes a document keyed by document_id in the body.
func (h *DocumentHandler) Delete(c *gin.Context) {
	var req struct {
		DocumentID string `json:"document_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, KindBadRequest)
		return
	}
	if req.DocumentID == "" {
		Fail(c, KindNotFound)
		return
	}
	if err := h.svc.Delete(c.Request.Context(), req.DocumentID); err != nil {
		if errors.Is(err, docservice.ErrNotFound) {
			Fail(c, KindNotFound)
			return
		}
		Fail(c, KindBadRequest)
		return
	}
	// the confirmation string (typo included) is matched verbatim by existing
	// clients; do not correct it
	OK(c, gin.H{"deleted_document": "Document was deleted fromt the database!"})
}
