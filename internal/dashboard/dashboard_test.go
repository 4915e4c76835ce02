package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"cajj-backend/internal/about"
	"cajj-backend/internal/actions"
	"cajj-backend/internal/documentations"
	"cajj-backend/internal/gallery"
	"cajj-backend/internal/httpx"
	"cajj-backend/internal/logging"
	"cajj-backend/internal/news"
	"cajj-backend/internal/publications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeContent struct {
	newsErr error
}

func (f fakeContent) ListAdmin(ctx context.Context) ([]news.News, error) {
	if f.newsErr != nil {
		return nil, f.newsErr
	}
	return []news.News{
		{ID: "n1", Title: "Publiée", Visible: true},
		{ID: "n2", Title: "Brouillon", Visible: false},
	}, nil
}

type fakeGallery struct{}

func (fakeGallery) ListPhotos(ctx context.Context) ([]gallery.Photo, error) {
	return []gallery.Photo{{ID: "p1", Title: "Atelier", Visible: false}}, nil
}

func (fakeGallery) ListVideos(ctx context.Context) ([]gallery.Video, error) {
	return []gallery.Video{}, nil
}

type fakePublications struct{}

func (fakePublications) ListAdmin(ctx context.Context) (publications.Grouped, error) {
	return publications.Grouped{
		CAJJ:     []publications.Publication{{ID: "c1", Title: "Rapport annuel"}},
		Partners: []publications.Publication{},
	}, nil
}

type fakeAbout struct{}

func (fakeAbout) List(ctx context.Context) ([]about.Section, error) {
	return []about.Section{{SectionID: "mission", Title: "Mission"}}, nil
}

type fakeActions struct{}

func (fakeActions) List(ctx context.Context) ([]actions.Action, error) {
	return []actions.Action{{ActionID: "nos-actions", Title: "Nos actions"}}, nil
}

type fakeDocs struct{}

func (fakeDocs) ListAdmin(ctx context.Context) ([]documentations.Documentation, error) {
	return []documentations.Documentation{{ID: "d1", Title: "Guide", Visible: false}}, nil
}

func sources(newsErr error) Sources {
	return Sources{
		News:           fakeContent{newsErr: newsErr},
		Gallery:        fakeGallery{},
		Publications:   fakePublications{},
		About:          fakeAbout{},
		Actions:        fakeActions{},
		Documentations: fakeDocs{},
	}
}

func TestCollectIncludesHiddenItems(t *testing.T) {
	snap, err := Collect(context.Background(), sources(nil))
	require.NoError(t, err)

	assert.Equal(t, SiteInfo, snap.Info)
	assert.Len(t, snap.News, 2)
	require.Len(t, snap.Gallery.Photos, 1)
	assert.False(t, snap.Gallery.Photos[0].Visible)
	assert.Len(t, snap.Documentations, 1)
	assert.Equal(t, "mission", snap.About.Sections[0].SectionID)
	assert.Equal(t, "nos-actions", snap.Actions[0].ActionID)
	assert.Equal(t, "Rapport annuel", snap.Publications.CAJJ[0].Title)
}

func TestCollectNamesFailingGroup(t *testing.T) {
	boom := errors.New("connection refused")
	_, err := Collect(context.Background(), sources(boom))
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "news:")
}

func TestAdminData(t *testing.T) {
	h := NewHandler(sources(nil), logging.Discard(), httpx.ErrorWriter{})

	rec := httptest.NewRecorder()
	h.AdminData(rec, httptest.NewRequest(http.MethodGet, "/admin/data", nil))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	for _, key := range []string{"info", "about", "actions", "publications", "news", "gallery", "documentations"} {
		assert.Contains(t, body, key)
	}

	var g gallery.Gallery
	require.NoError(t, json.Unmarshal(body["gallery"], &g))
	require.Len(t, g.Photos, 1)
	assert.Equal(t, "p1", g.Photos[0].ID)
	assert.NotNil(t, g.Videos)
}

func TestAdminDataFailure(t *testing.T) {
	h := NewHandler(sources(errors.New("timeout")), logging.Discard(), httpx.ErrorWriter{})

	rec := httptest.NewRecorder()
	h.AdminData(rec, httptest.NewRequest(http.MethodGet, "/admin/data", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
