// Package dashboard assembles every content group into one admin snapshot.
package dashboard

import (
	"context"
	"fmt"

	"cajj-backend/internal/about"
	"cajj-backend/internal/actions"
	"cajj-backend/internal/documentations"
	"cajj-backend/internal/gallery"
	"cajj-backend/internal/news"
	"cajj-backend/internal/publications"
)

type NewsSource interface {
	ListAdmin(ctx context.Context) ([]news.News, error)
}

type GallerySource interface {
	ListPhotos(ctx context.Context) ([]gallery.Photo, error)
	ListVideos(ctx context.Context) ([]gallery.Video, error)
}

type PublicationSource interface {
	ListAdmin(ctx context.Context) (publications.Grouped, error)
}

type AboutSource interface {
	List(ctx context.Context) ([]about.Section, error)
}

type ActionSource interface {
	List(ctx context.Context) ([]actions.Action, error)
}

type DocumentationSource interface {
	ListAdmin(ctx context.Context) ([]documentations.Documentation, error)
}

type Sources struct {
	News           NewsSource
	Gallery        GallerySource
	Publications   PublicationSource
	About          AboutSource
	Actions        ActionSource
	Documentations DocumentationSource
}

type Info struct {
	Name       string `json:"name"`
	Tagline    string `json:"tagline"`
	SubTagline string `json:"sub_tagline"`
}

var SiteInfo = Info{
	Name:       "Centre d'Aide Juridico Judiciaire CAJJ ASBL",
	Tagline:    "Nous sommes la voix des sans voix",
	SubTagline: "La promotion et la protection des droits humains est notre priorité absolue",
}

type AboutPage struct {
	Sections []about.Section `json:"sections"`
}

// Snapshot holds every entity, hidden ones included.
type Snapshot struct {
	Info           Info                           `json:"info"`
	About          AboutPage                      `json:"about"`
	Actions        []actions.Action               `json:"actions"`
	Publications   publications.Grouped           `json:"publications"`
	News           []news.News                    `json:"news"`
	Gallery        gallery.Gallery                `json:"gallery"`
	Documentations []documentations.Documentation `json:"documentations"`
}

// Collect reads each group in turn and stops at the first failure.
func Collect(ctx context.Context, src Sources) (Snapshot, error) {
	snap := Snapshot{Info: SiteInfo}
	var err error

	if snap.About.Sections, err = src.About.List(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("about: %w", err)
	}
	if snap.Actions, err = src.Actions.List(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("actions: %w", err)
	}
	if snap.Publications, err = src.Publications.ListAdmin(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("publications: %w", err)
	}
	if snap.News, err = src.News.ListAdmin(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("news: %w", err)
	}
	if snap.Gallery.Photos, err = src.Gallery.ListPhotos(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("photos: %w", err)
	}
	if snap.Gallery.Videos, err = src.Gallery.ListVideos(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("videos: %w", err)
	}
	if snap.Documentations, err = src.Documentations.ListAdmin(ctx); err != nil {
		return Snapshot{}, fmt.Errorf("documentations: %w", err)
	}
	return snap, nil
}
