package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	docrepo "github.com/geomark/geomark/internal/document/repository"
	docservice "github.com/geomark/geomark/internal/document/service"
	"github.com/geomark/geomark/internal/qr"
	"github.com/geomark/geomark/pkg/middleware"
)

// scopedToken carries a fixed scope grant.
type scopedToken struct {
	scope string
}

func (t *scopedToken) Claims(v interface{}) error {
	mm, ok := v.(*map[string]interface{})
	if !ok {
		return fmt.Errorf("unsupported claims type")
	}
	*mm = map[string]interface{}{"sub": "tester", "scope": t.scope}
	return nil
}

// scopedVerifier treats the raw token string as the granted scope list, so
// tests mint tokens like "get:documents+post:documents" directly. Scopes are
// joined with "+" because a bearer token must not contain spaces; the verifier
// expands them back into the space-separated "scope" claim.
type scopedVerifier struct{}

func (scopedVerifier) Verify(ctx context.Context, raw string) (middleware.Token, error) {
	if raw == "invalid" {
		return nil, fmt.Errorf("invalid token")
	}
	return &scopedToken{scope: strings.ReplaceAll(raw, "+", " ")}, nil
}

const allDocScopes = "get:documents+post:documents+patch:document+delete:documents"

type docFixture struct {
	router *gin.Engine
	svc    *docservice.Service
	repo   *docrepo.MemoryRepo
	qrDir  string
}

func newDocFixture(t *testing.T) *docFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	qrDir := t.TempDir()
	dirStore, err := qr.NewDirStore(qrDir)
	require.NoError(t, err)

	repo := docrepo.NewMemoryRepo()
	svc := docservice.New(repo, qr.NewEncoder(dirStore))

	r := gin.New()
	NewDocumentHandler(svc).Register(r, scopedVerifier{})
	return &docFixture{router: r, svc: svc, repo: repo, qrDir: qrDir}
}

func (f *docFixture) do(t *testing.T, method, path, scopes, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if scopes != "" {
		req.Header.Set("Authorization", "Bearer "+scopes)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func (f *docFixture) create(t *testing.T, body string) map[string]interface{} {
	t.Helper()
	w, parsed := f.do(t, http.MethodPost, "/documents", allDocScopes, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return parsed["new_document"].(map[string]interface{})
}

const sampleDocBody = `{"lat":51.5007,"lon":-0.1246,"category":"bridge","name":"Clock tower","description":"Masonry check at the north face"}`

func TestCreateDocument_GeneratesIDAndQRImage(t *testing.T) {
	f := newDocFixture(t)

	doc := f.create(t, sampleDocBody)
	docID := doc["document_id"].(string)
	require.Len(t, docID, 10)
	for _, r := range docID {
		require.True(t, (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'))
	}

	info, err := os.Stat(filepath.Join(f.qrDir, docID+".png"))
	require.NoError(t, err)
	require.Greater(t, info.Size(), int64(0))
}

func TestCreateDocument_MissingCoordinates(t *testing.T) {
	f := newDocFixture(t)
	w, parsed := f.do(t, http.MethodPost, "/documents", allDocScopes,
		`{"category":"bridge","name":"x","description":"y"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "bad_request", parsed["message"])
	require.Equal(t, false, parsed["success"])
	require.Equal(t, float64(400), parsed["error"])
}

func TestCreateDocument_FieldTooLong(t *testing.T) {
	f := newDocFixture(t)
	long := strings.Repeat("x", 31)
	w, _ := f.do(t, http.MethodPost, "/documents", allDocScopes,
		`{"lat":1,"lon":2,"category":"`+long+`","name":"n","description":"d"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListDocuments_PointProjection(t *testing.T) {
	f := newDocFixture(t)
	f.create(t, sampleDocBody)

	w, parsed := f.do(t, http.MethodGet, "/documents", "get:documents", "")
	require.Equal(t, http.StatusOK, w.Code)
	all := parsed["all_documents"].([]interface{})
	require.Len(t, all, 1)

	point := all[0].(map[string]interface{})
	require.Equal(t, 51.5007, point["lat"])
	require.Equal(t, -0.1246, point["lon"])
	require.Len(t, point["document_id"].(string), 10)
	// the projection must not leak the full record
	require.NotContains(t, point, "name")
	require.NotContains(t, point, "description")
}

func TestListByCategory_EmptyIsNotFound(t *testing.T) {
	f := newDocFixture(t)
	f.create(t, sampleDocBody)

	w, parsed := f.do(t, http.MethodGet, "/documents/tunnel", "get:documents", "")
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "not_found", parsed["message"])

	w, parsed = f.do(t, http.MethodGet, "/documents/bridge", "get:documents", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "bridge", parsed["category"])
	require.Len(t, parsed["documents_from_category"].([]interface{}), 1)
}

func TestSearchDocuments(t *testing.T) {
	f := newDocFixture(t)
	f.create(t, sampleDocBody)

	w, parsed := f.do(t, http.MethodGet, "/documents/search", "get:documents", `{"search_term":"MASONRY"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "MASONRY", parsed["search_term"])
	require.Len(t, parsed["matched_documents"].([]interface{}), 1)

	w, _ = f.do(t, http.MethodGet, "/documents/search", "get:documents", `{"search_term":"no such text"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	w, _ = f.do(t, http.MethodGet, "/documents/search", "get:documents", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateDocument_RoundTrip(t *testing.T) {
	f := newDocFixture(t)
	doc := f.create(t, sampleDocBody)
	docID := doc["document_id"].(string)

	w, parsed := f.do(t, http.MethodPatch, "/documents", allDocScopes,
		`{"document_id":"`+docID+`","name":"Renamed tower","description":"Masonry check at the north face","category":"bridge"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Document updated", parsed["message"])
	updated := parsed["updated_document"].(map[string]interface{})
	require.Equal(t, "Renamed tower", updated["name"])

	// fetching by category returns the new name, not the original
	w, parsed = f.do(t, http.MethodGet, "/documents/bridge", "get:documents", "")
	require.Equal(t, http.StatusOK, w.Code)
	fromCat := parsed["documents_from_category"].([]interface{})[0].(map[string]interface{})
	require.Equal(t, "Renamed tower", fromCat["name"])
}

func TestUpdateDocument_UnknownID(t *testing.T) {
	f := newDocFixture(t)
	w, parsed := f.do(t, http.MethodPatch, "/documents", allDocScopes,
		`{"document_id":"zzzzzzzzzz","name":"n","description":"d","category":"c"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "not_found", parsed["message"])
}

func TestDeleteDocument_SecondDeleteIsNotFound(t *testing.T) {
	f := newDocFixture(t)
	doc := f.create(t, sampleDocBody)
	docID := doc["document_id"].(string)

	w, parsed := f.do(t, http.MethodDelete, "/documents", allDocScopes, `{"document_id":"`+docID+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	// the confirmation string is a compatibility contract, misspelling and all
	require.Equal(t, "Document was deleted fromt the database!", parsed["deleted_document"])

	w, _ = f.do(t, http.MethodGet, "/documents/bridge", "get:documents", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w, _ = f.do(t, http.MethodDelete, "/documents", allDocScopes, `{"document_id":"`+docID+`"}`)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDocuments_AuthShortCircuits(t *testing.T) {
	f := newDocFixture(t)

	// no token
	w, parsed := f.do(t, http.MethodPost, "/documents", "", sampleDocBody)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "authorization_header_missing", parsed["message"])

	// token without the write scope
	w, parsed = f.do(t, http.MethodPost, "/documents", "get:documents", sampleDocBody)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "insufficient_scope", parsed["message"])

	// invalid token
	w, parsed = f.do(t, http.MethodPost, "/documents", "invalid", sampleDocBody)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "invalid_token", parsed["message"])

	// nothing reached the data layer
	docs, err := f.svc.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, docs)
}

func TestRegister_PostAuthMiddlewareSeesClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dirStore, err := qr.NewDirStore(t.TempDir())
	require.NoError(t, err)
	svc := docservice.New(docrepo.NewMemoryRepo(), qr.NewEncoder(dirStore))

	// stands in for the rate limiter, which keys on the verified subject
	var subs []string
	seen := func(c *gin.Context) {
		if v, ok := c.Get("claims"); ok {
			if cm, ok := v.(map[string]interface{}); ok {
				if s, _ := cm["sub"].(string); s != "" {
					subs = append(subs, s)
				}
			}
		}
		c.Next()
	}

	r := gin.New()
	NewDocumentHandler(svc).Register(r, scopedVerifier{}, seen)

	req := httptest.NewRequest(http.MethodGet, "/documents", strings.NewReader(""))
	req.Header.Set("Authorization", "Bearer get:documents")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"tester"}, subs)

	// rejected requests never reach it
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/documents", strings.NewReader("")))
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Len(t, subs, 1)
}

func TestMultiScopeToken_ClearsAuth(t *testing.T) {
	f := newDocFixture(t)

	// a single token granting several scopes must authorize both reads and
	// writes; its raw form stays a single header field
	require.NotContains(t, allDocScopes, " ")

	w, _ := f.do(t, http.MethodPost, "/documents", allDocScopes, sampleDocBody)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w, _ = f.do(t, http.MethodGet, "/documents", allDocScopes, "")
	require.Equal(t, http.StatusOK, w.Code)
}
