package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerExposesObservations(t *testing.T) {
	m := New()
	m.ObserveRequest(http.MethodGet, "/api/news", http.StatusOK, 20*time.Millisecond)
	m.ObserveUpload("photos", "ok", 1024)
	m.ObserveUpload("", "rejected", 0)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `cajj_http_requests_total{method="GET",route="/api/news",status="200"} 1`)
	assert.Contains(t, body, `cajj_uploads_total{result="ok",subdir="photos"} 1`)
	assert.Contains(t, body, `cajj_uploads_total{result="rejected",subdir="unknown"} 1`)
	assert.Contains(t, body, `cajj_upload_bytes_total{subdir="photos"} 1024`)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.ObserveRequest(http.MethodGet, "/", http.StatusOK, time.Millisecond)
	m.ObserveUpload("pdfs", "failed", 0)
}
