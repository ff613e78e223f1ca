package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterSwagger registers minimal Swagger/OpenAPI endpoints.
// - GET /swagger/index.html  -> a small HTML page that loads the OpenAPI JSON
// - GET /swagger/doc.json    -> machine-readable OpenAPI JSON
func RegisterSwagger(rg *gin.Engine) {
	rg.GET("/swagger/index.html", func(c *gin.Context) {
		c.Header("Content-Type", "text/html; charset=utf-8")
		c.String(http.StatusOK, swaggerHTML)
	})

	rg.GET("/swagger/doc.json", func(c *gin.Context) {
		c.Header("Content-Type", "application/json")
		c.String(http.StatusOK, swaggerJSON)
	})
}

const swaggerHTML = `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>geomark — Swagger</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@4/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@4/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/swagger/doc.json',
        dom_id: '#swagger-ui',
      })
    </script>
  </body>
</html>`

// Minimal OpenAPI document for the document/project API. All routes require
// a Bearer token with the listed scope.
const swaggerJSON = `{
  "openapi": "3.0.0",
  "info": { "title": "geomark", "version": "v1.0.0" },
  "components": { "securitySchemes": { "bearerAuth": { "type": "http", "scheme": "bearer", "bearerFormat": "JWT" } } },
  "security": [ { "bearerAuth": [] } ],
  "paths": {
    "/documents": {
      "get": { "summary": "List lat/lon and document_id of all documents (scope get:documents)", "responses": { "200": { "description": "all_documents" } } },
      "post": { "summary": "Create a document; generates document_id and QR image (scope post:documents)", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"lat":{"type":"number"},"lon":{"type":"number"},"category":{"type":"string"},"name":{"type":"string"},"description":{"type":"string"}}}}}}, "responses": { "200": { "description": "new_document" }, "400": { "description": "bad_request" } } },
      "patch": { "summary": "Update a document by document_id (scope patch:document)", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"document_id":{"type":"string"},"name":{"type":"string"},"description":{"type":"string"},"category":{"type":"string"}}}}}}, "responses": { "200": { "description": "updated_document" }, "404": { "description": "not_found" } } },
      "delete": { "summary": "Delete a document by document_id (scope delete:documents)", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"document_id":{"type":"string"}}}}}}, "responses": { "200": { "description": "deleted_document" }, "404": { "description": "not_found" } } }
    },
    "/documents/search": {
      "get": { "summary": "Search document descriptions (scope get:documents)", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"search_term":{"type":"string"}}}}}}, "responses": { "200": { "description": "matched_documents" }, "404": { "description": "not_found" } } }
    },
    "/documents/{category}": {
      "get": { "summary": "List documents by category (scope get:documents)", "parameters": [ { "name": "category", "in": "path", "required": true, "schema": { "type": "string" } } ], "responses": { "200": { "description": "documents_from_category" }, "404": { "description": "not_found" } } }
    },
    "/projects": {
      "get": { "summary": "List all projects with count (scope get:documents)", "responses": { "200": { "description": "projects" } } },
      "post": { "summary": "Create a project (scope post:projects)", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"project_name":{"type":"string"},"description":{"type":"string"},"project_manager":{"type":"string"}}}}}}, "responses": { "200": { "description": "new_project" }, "400": { "description": "bad_request" } } },
      "patch": { "summary": "Update a project by project_id (scope patch:projects)", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"project_id":{"type":"integer"},"project_name":{"type":"string"},"description":{"type":"string"},"project_manager":{"type":"string"}}}}}}, "responses": { "200": { "description": "updated_project" }, "404": { "description": "not_found" } } },
      "delete": { "summary": "Delete a project by project_id (scope delete:projects)", "requestBody": { "content": { "application/json": { "schema": {"type":"object","properties":{"project_id":{"type":"integer"}}}}}}, "responses": { "200": { "description": "deleted_project" }, "404": { "description": "not_found" } } }
    },
    "/projects/{project_manager}": {
      "get": { "summary": "List projects by manager (scope get:projects)", "parameters": [ { "name": "project_manager", "in": "path", "required": true, "schema": { "type": "string" } } ], "responses": { "200": { "description": "projects" }, "404": { "description": "not_found" } } }
    },
    "/health": { "get": { "summary": "Liveness check", "security": [], "responses": { "200": { "description": "healthy" } } } },
    "/ready": { "get": { "summary": "Readiness check", "security": [], "responses": { "200": { "description": "ready" }, "503": { "description": "not ready" } } } }
  }
}`
