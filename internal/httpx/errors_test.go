package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"cajj-backend/internal/logging"
	"cajj-backend/internal/transport"
	"cajj-backend/internal/upload"
	"cajj-backend/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissing = errors.New("news not found")

func serviceError(t *testing.T, ew ErrorWriter, err error) (int, transport.ErrorResponse) {
	t.Helper()
	rec := httptest.NewRecorder()
	ew.Service(rec, logging.Discard(), "admin news update", err, NotFound{Err: errMissing, Message: "Actualité introuvable"})
	var body transport.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestServiceErrorMapping(t *testing.T) {
	ew := ErrorWriter{}

	code, body := serviceError(t, ew, validation.Field("title", "notblank"))
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, MsgValidation, body.Error)
	assert.Equal(t, map[string]string{"title": "notblank"}, body.Details)

	code, body = serviceError(t, ew, fmt.Errorf("update: %w", errMissing))
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Actualité introuvable", body.Error)

	code, body = serviceError(t, ew, &upload.Error{Subdir: "photos", Cause: errors.New("disk full")})
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, MsgUploadFailed, body.Error)
	assert.NotContains(t, body.Message, "disk full")

	code, body = serviceError(t, ew, errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Empty(t, body.Message)
}

func TestServiceErrorDebugExposesCause(t *testing.T) {
	code, body := serviceError(t, ErrorWriter{Debug: true}, errors.New("connection reset"))
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "connection reset", body.Message)
}

func TestFormErrorTooLarge(t *testing.T) {
	rec := httptest.NewRecorder()
	ErrorWriter{}.Form(rec, logging.Discard(), "admin photos create", ErrBodyTooLarge, "image")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), `"image":"max"`)

	rec = httptest.NewRecorder()
	ErrorWriter{}.Form(rec, logging.Discard(), "admin photos create", errors.New("unexpected EOF"), "image")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
