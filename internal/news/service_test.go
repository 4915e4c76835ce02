package news

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"cajj-backend/internal/content/contenttest"
	"cajj-backend/internal/upload"
	"cajj-backend/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepo() *contenttest.MemRepo[News] {
	return contenttest.NewMemRepo[News](
		func(n News) string { return n.ID },
		func(n News) bool { return n.Visible },
		func(a, b News) bool { return a.Date.After(b.Date) },
	)
}

func newTestService(t *testing.T) (*Service, *contenttest.MemRepo[News], *contenttest.Env) {
	t.Helper()
	env := contenttest.NewEnv(t)
	repo := newRepo()
	return NewService(repo, env.Deps), repo, env
}

func str(s string) *string { return &s }

func TestCreateAppliesDefaults(t *testing.T) {
	svc, _, _ := newTestService(t)
	before := time.Now()

	item, err := svc.Create(context.Background(), CreateRequest{
		Title:   str("  Journée portes ouvertes "),
		Content: str("Venez nombreux"),
	})
	require.NoError(t, err)

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Journée portes ouvertes", item.Title)
	assert.Equal(t, DefaultAuthor, item.Author)
	assert.True(t, item.Visible)
	assert.False(t, item.Date.Before(before.Add(-time.Second)))
	assert.Empty(t, item.MediaURL)
	assert.Empty(t, item.PDFURL)
}

func TestCreateParsesDateAndRejectsGarbage(t *testing.T) {
	svc, _, _ := newTestService(t)

	item, err := svc.Create(context.Background(), CreateRequest{Title: str("a"), Content: str("b"), Date: str("2024-03-08")})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 8, 0, 0, 0, 0, time.UTC), item.Date)

	_, err = svc.Create(context.Background(), CreateRequest{Title: str("a"), Content: str("b"), Date: str("demain")})
	fields, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "date", fields["date"])
}

func TestCreateStoresAttachments(t *testing.T) {
	svc, _, env := newTestService(t)

	item, err := svc.Create(context.Background(), CreateRequest{
		Title:   str("Clip"),
		Content: str("Sensibilisation"),
		Media:   contenttest.File("clip.mp4", contenttest.MP4),
		PDF:     contenttest.File("note.pdf", contenttest.PDF),
	})
	require.NoError(t, err)

	assert.Equal(t, upload.MediaVideo, item.MediaType)
	assert.Contains(t, item.MediaURL, "/storage/videos/")
	assert.Contains(t, item.PDFURL, "/storage/pdfs/")
	assert.True(t, env.Exists(item.MediaURL))
	assert.True(t, env.Exists(item.PDFURL))
}

func TestCreateRejectsWrongAttachmentType(t *testing.T) {
	svc, repo, env := newTestService(t)

	_, err := svc.Create(context.Background(), CreateRequest{
		Title:   str("x"),
		Content: str("y"),
		PDF:     contenttest.File("photo.png", contenttest.PNG),
	})
	fields, ok := validation.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "mimes", fields["pdf"])
	assert.Equal(t, 0, repo.Len())
	assert.Equal(t, 0, env.Count(upload.SubdirPDFs))
}

func TestCreatePersistFailureLeavesUpload(t *testing.T) {
	svc, repo, env := newTestService(t)
	repo.FailWrites = true

	_, err := svc.Create(context.Background(), CreateRequest{
		Title:   str("x"),
		Content: str("y"),
		Media:   contenttest.File("a.png", contenttest.PNG),
	})
	require.ErrorIs(t, err, contenttest.ErrInjected)
	assert.Equal(t, 1, env.Count(upload.SubdirPhotos))
}

func TestEmptyUpdateLeavesFieldsUnchanged(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{
		Title:   str("Titre"),
		Content: str("Contenu"),
		Author:  str("Équipe"),
		Date:    str("2024-01-15"),
		Media:   contenttest.File("a.png", contenttest.PNG),
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, UpdateRequest{})
	require.NoError(t, err)

	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Content, updated.Content)
	assert.Equal(t, created.Author, updated.Author)
	assert.Equal(t, created.Date, updated.Date)
	assert.Equal(t, created.MediaURL, updated.MediaURL)
	assert.Equal(t, created.MediaType, updated.MediaType)
	assert.Equal(t, created.Visible, updated.Visible)
}

func TestUpdateReplacesAndRemovesAttachments(t *testing.T) {
	svc, _, env := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{
		Title:   str("Titre"),
		Content: str("Contenu"),
		Media:   contenttest.File("a.png", contenttest.PNG),
		PDF:     contenttest.File("a.pdf", contenttest.PDF),
	})
	require.NoError(t, err)

	replaced, err := svc.Update(ctx, created.ID, UpdateRequest{Media: contenttest.File("b.mp4", contenttest.MP4)})
	require.NoError(t, err)
	assert.Equal(t, upload.MediaVideo, replaced.MediaType)
	assert.NotEqual(t, created.MediaURL, replaced.MediaURL)
	assert.False(t, env.Exists(created.MediaURL))
	assert.True(t, env.Exists(replaced.MediaURL))

	cleared, err := svc.Update(ctx, created.ID, UpdateRequest{RemoveMedia: true, RemovePDF: true})
	require.NoError(t, err)
	assert.Empty(t, cleared.MediaURL)
	assert.Empty(t, cleared.MediaType)
	assert.Empty(t, cleared.PDFURL)
	assert.False(t, env.Exists(replaced.MediaURL))
	assert.False(t, env.Exists(created.PDFURL))
}

func TestUpdateUnknownID(t *testing.T) {
	svc, _, _ := newTestService(t)
	_, err := svc.Update(context.Background(), "missing", UpdateRequest{Title: str("x")})
	require.ErrorIs(t, err, ErrNotFound)
}

func publicTitles(t *testing.T, svc *Service) []string {
	t.Helper()
	raw, err := svc.PublicJSON(context.Background())
	require.NoError(t, err)
	var items []News
	require.NoError(t, json.Unmarshal(raw, &items))
	titles := make([]string, 0, len(items))
	for _, it := range items {
		titles = append(titles, it.Title)
	}
	return titles
}

func TestVisibilityControlsPublicList(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	older, err := svc.Create(ctx, CreateRequest{Title: str("Ancienne"), Content: str("x"), Date: str("2023-01-01")})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateRequest{Title: str("Récente"), Content: str("x"), Date: str("2024-01-01")})
	require.NoError(t, err)

	assert.Equal(t, []string{"Récente", "Ancienne"}, publicTitles(t, svc))

	hidden, err := svc.SetVisibility(ctx, older.ID, false)
	require.NoError(t, err)
	assert.False(t, hidden.Visible)
	assert.Equal(t, []string{"Récente"}, publicTitles(t, svc))

	admin, err := svc.ListAdmin(ctx)
	require.NoError(t, err)
	assert.Len(t, admin, 2)

	for i := 0; i < 2; i++ {
		shown, err := svc.SetVisibility(ctx, older.ID, true)
		require.NoError(t, err)
		assert.True(t, shown.Visible)
	}
	assert.Equal(t, []string{"Récente", "Ancienne"}, publicTitles(t, svc))
}

func TestDeleteRemovesEntityAndFiles(t *testing.T) {
	svc, _, env := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateRequest{
		Title:   str("x"),
		Content: str("y"),
		Media:   contenttest.File("a.png", contenttest.PNG),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
	assert.False(t, env.Exists(created.MediaURL))

	require.ErrorIs(t, svc.Delete(ctx, created.ID), ErrNotFound)
}

func TestHiddenNewsLeavesPublicListDespiteInFlightRead(t *testing.T) {
	env := contenttest.NewEnv(t)
	gated := contenttest.NewGatedCache()
	env.Deps.Cache = gated
	svc := NewService(newRepo(), env.Deps)
	ctx := context.Background()

	item, err := svc.Create(ctx, CreateRequest{Title: str("Atelier"), Content: str("x")})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := svc.PublicJSON(ctx)
		done <- err
	}()

	<-gated.Blocked
	_, err = svc.SetVisibility(ctx, item.ID, false)
	require.NoError(t, err)
	gated.Release()
	require.NoError(t, <-done)

	assert.Empty(t, publicTitles(t, svc))
}
