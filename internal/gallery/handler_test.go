package gallery

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cajj-backend/internal/content/contenttest"
	"cajj-backend/internal/httpx"
	"cajj-backend/internal/logging"
	"cajj-backend/internal/upload"
	"cajj-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, maxBody int64) (http.Handler, *fixture) {
	t.Helper()
	f := newFixture(t)
	h := NewHandler(f.svc, validation.New(), logging.Discard(), httpx.ErrorWriter{}, maxBody)

	r := chi.NewRouter()
	r.Get("/gallery", h.PublicGallery)
	r.Route("/admin/gallery", func(r chi.Router) {
		r.Get("/", h.AdminGallery)
		r.Get("/photos", h.AdminListPhotos)
		r.Post("/photos", h.AdminCreatePhoto)
		r.Put("/photos/{id}", h.AdminUpdatePhoto)
		r.Patch("/photos/{id}/visibility", h.AdminPhotoVisibility)
		r.Delete("/photos/{id}", h.AdminDeletePhoto)
		r.Get("/videos", h.AdminListVideos)
		r.Post("/videos", h.AdminCreateVideo)
		r.Put("/videos/{id}", h.AdminUpdateVideo)
		r.Patch("/videos/{id}/visibility", h.AdminVideoVisibility)
		r.Delete("/videos/{id}", h.AdminDeleteVideo)
	})
	return r, f
}

func multipartFile(t *testing.T, field, name string, data []byte, values map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range values {
		require.NoError(t, mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile(field, name)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadPhotoThenPublicGallery(t *testing.T) {
	h, f := newTestRouter(t, 1<<20)

	body, ct := multipartFile(t, "file", "atelier.png", contenttest.PNG, map[string]string{"description": "Atelier juridique"})
	req := httptest.NewRequest(http.MethodPost, "/admin/gallery/photos", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		Message string `json:"message"`
		Photo   Photo  `json:"photo"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, "Photo ajoutée", created.Message)
	assert.Equal(t, "atelier.png", created.Photo.Title)
	assert.True(t, f.env.Exists(created.Photo.URL))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/gallery", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var g Gallery
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &g))
	require.Len(t, g.Photos, 1)
	assert.Equal(t, created.Photo.ID, g.Photos[0].ID)
	assert.NotNil(t, g.Videos)
}

func TestUploadPhotoOverBodyLimit(t *testing.T) {
	h, f := newTestRouter(t, 512)

	body, ct := multipartFile(t, "file", "huge.png", bytes.Repeat([]byte{0x89}, 2048), nil)
	req := httptest.NewRequest(http.MethodPost, "/admin/gallery/photos", body)
	req.Header.Set("Content-Type", ct)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"file":"max"`)
	assert.Equal(t, 0, f.env.Count(upload.SubdirPhotos))
}

func TestCreateVideoJSONWithInvalidURL(t *testing.T) {
	h, _ := newTestRouter(t, 1<<20)

	req := httptest.NewRequest(http.MethodPost, "/admin/gallery/videos", strings.NewReader(`{"url":"pas une url"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"url":"weburl"`)
}

func TestVideoLifecycle(t *testing.T) {
	h, _ := newTestRouter(t, 1<<20)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	rec := do(http.MethodPost, "/admin/gallery/videos", `{"url":"https://youtu.be/x","title":"Plaidoyer"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	var created struct {
		Video Video `json:"video"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = do(http.MethodPatch, "/admin/gallery/videos/"+created.Video.ID+"/visibility", `{"visible":false}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Vidéo masquée")

	rec = do(http.MethodPut, "/admin/gallery/videos/"+created.Video.ID, `{"title":""}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = do(http.MethodDelete, "/admin/gallery/videos/"+created.Video.ID, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Vidéo supprimée")

	rec = do(http.MethodDelete, "/admin/gallery/videos/"+created.Video.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Vidéo introuvable")
}
