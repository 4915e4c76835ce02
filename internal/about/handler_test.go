package about

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cajj-backend/internal/httpx"
	"cajj-backend/internal/logging"
	"cajj-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	svc, _ := newSeededService(t)
	h := NewHandler(svc, validation.New(), logging.Discard(), httpx.ErrorWriter{})

	r := chi.NewRouter()
	r.Get("/about", h.PublicPage)
	r.Get("/admin/about", h.AdminList)
	r.Put("/admin/about/sections/{slug}", h.AdminUpdate)
	return r
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAdminUpdateSection(t *testing.T) {
	h := newTestRouter(t)

	rec := do(h, http.MethodPut, "/admin/about/sections/mission", `{"title":"Notre mission","content":"Protéger les droits."}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Message string  `json:"message"`
		Section Section `json:"section"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Section mise à jour", body.Message)
	assert.Equal(t, "Protéger les droits.", body.Section.Content)

	rec = do(h, http.MethodGet, "/about", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Protéger les droits.")
}

func TestAdminUpdateErrors(t *testing.T) {
	h := newTestRouter(t)

	rec := do(h, http.MethodPut, "/admin/about/sections/inconnue", `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Section introuvable")

	rec = do(h, http.MethodPut, "/admin/about/sections/vision", `{"title":"   "}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"notblank"`)
}

func TestAdminListReturnsAllSections(t *testing.T) {
	h := newTestRouter(t)

	rec := do(h, http.MethodGet, "/admin/about", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Sections []Section `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Sections, 5)
}
