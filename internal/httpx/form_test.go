package httpx

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cajj-backend/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFormJSON(t *testing.T) {
	body := `{"title":"Atelier","visible":false,"order":3,"author":null}`
	r := httptest.NewRequest(http.MethodPut, "/", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")

	f, err := ReadForm(httptest.NewRecorder(), r, 0)
	require.NoError(t, err)
	defer f.Close()

	require.NotNil(t, f.String("title"))
	assert.Equal(t, "Atelier", *f.String("title"))
	assert.Nil(t, f.String("author"))

	visible, err := f.Bool("visible")
	require.NoError(t, err)
	require.NotNil(t, visible)
	assert.False(t, *visible)

	order, err := f.Int("order")
	require.NoError(t, err)
	assert.Equal(t, 3, *order)
}

func TestReadFormEmptyBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPut, "/", http.NoBody)
	f, err := ReadForm(httptest.NewRecorder(), r, 0)
	require.NoError(t, err)
	assert.False(t, f.Has("title"))
}

func TestReadFormRejectsNestedJSON(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":{"fr":"x"}}`))
	_, err := ReadForm(httptest.NewRecorder(), r, 0)
	require.Error(t, err)
}

func TestReadFormMultipart(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "Rapport"))
	require.NoError(t, mw.WriteField("remove_media", "1"))
	part, err := mw.CreateFormFile("pdf", "rapport.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4\n"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	f, err := ReadForm(httptest.NewRecorder(), r, 1<<20)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, "Rapport", *f.String("title"))
	remove, err := f.Bool("remove_media")
	require.NoError(t, err)
	assert.True(t, *remove)

	file, err := f.File("pdf")
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.Equal(t, "rapport.pdf", file.Name)
	assert.Equal(t, int64(9), file.Size)
	data, err := io.ReadAll(file.Reader)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4\n", string(data))

	missing, err := f.File("media")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestReadFormBodyTooLarge(t *testing.T) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "big.png")
	require.NoError(t, err)
	_, err = part.Write(bytes.Repeat([]byte("x"), 4096))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	_, err = ReadForm(httptest.NewRecorder(), r, 1024)
	require.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestFormBoolAndIntErrors(t *testing.T) {
	f := &Form{values: map[string]string{"visible": "maybe", "order": "x"}}
	_, err := f.Bool("visible")
	require.Error(t, err)
	_, err = f.Int("order")
	require.Error(t, err)
}

func TestFormTypedReadersRecordErrors(t *testing.T) {
	f := &Form{values: map[string]string{"visible": "peut-être", "order": "2", "author": "  "}}
	errs := validation.Errors{}

	assert.Nil(t, f.Flag("visible", errs))
	require.NotNil(t, f.Integer("order", errs))
	assert.Nil(t, f.Optional("author"))
	assert.Nil(t, f.Upload("media", errs))

	assert.Equal(t, validation.Errors{"visible": "boolean"}, errs)
}
