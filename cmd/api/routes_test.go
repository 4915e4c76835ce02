package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cajj-backend/internal/auth"
	"cajj-backend/internal/config"
	"cajj-backend/internal/handlers"
	"cajj-backend/internal/logging"
	"cajj-backend/internal/metrics"
	"cajj-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp() *app {
	log := logging.Discard()
	manager := &auth.Manager{Secret: []byte("secret"), TTL: time.Hour, Issuer: "cajj-backend"}
	return &app{
		cfg: &config.Config{
			FrontendOrigins:    []string{"http://localhost:5173"},
			RequestTimeout:     time.Second,
			UploadTimeout:      time.Second,
			RateLimitContact:   5,
			RateLimitLogin:     5,
			RateLimitWindowSec: 60,
		},
		log:     log,
		metrics: metrics.New(),
		auth:    manager,
		server:  &handlers.Server{Val: validation.New(), Log: log, Auth: manager},
	}
}

func TestRoutesAreRegistered(t *testing.T) {
	router, ok := testApp().routes().(chi.Routes)
	require.True(t, ok)

	registered := map[string]bool{}
	require.NoError(t, chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[method+" "+route] = true
		return nil
	}))

	for _, want := range []string{
		"GET /api/",
		"GET /api/about",
		"GET /api/actions",
		"GET /api/publications",
		"GET /api/news",
		"GET /api/gallery",
		"GET /api/documentations",
		"POST /api/contact",
		"POST /api/auth/login",
		"GET /api/auth/login",
		"GET /api/admin/me",
		"GET /api/admin/data",
		"POST /api/admin/news/",
		"POST /api/admin/news/{id}",
		"PATCH /api/admin/gallery/photos/{id}/visibility",
		"POST /api/admin/gallery/videos",
		"DELETE /api/admin/publications/{type}/{id}",
		"PUT /api/admin/about/sections/{slug}",
		"PUT /api/admin/actions/order",
		"PUT /api/admin/actions/{slug}",
		"POST /api/admin/documentations/",
		"GET /storage/*",
		"GET /uploads/*",
		"GET /api/storage/*",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	h := testApp().routes()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/admin/news/abc", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestFileRoutesHaveNoRequestTimeout(t *testing.T) {
	router, ok := testApp().routes().(chi.Routes)
	require.True(t, ok)

	chains := map[string]int{}
	require.NoError(t, chi.Walk(router, func(method, route string, _ http.Handler, mws ...func(http.Handler) http.Handler) error {
		chains[method+" "+route] = len(mws)
		return nil
	}))

	root := chains["GET /storage/*"]
	assert.Equal(t, root, chains["GET /uploads/*"])
	assert.Equal(t, root, chains["GET /api/storage/*"])
	assert.Greater(t, chains["GET /api/news"], chains["GET /api/storage/*"])
}
