package main

import (
	"log/slog"
	"net/http"
	"time"

	"cajj-backend/internal/about"
	"cajj-backend/internal/actions"
	"cajj-backend/internal/auth"
	"cajj-backend/internal/config"
	"cajj-backend/internal/dashboard"
	"cajj-backend/internal/documentations"
	"cajj-backend/internal/gallery"
	"cajj-backend/internal/handlers"
	"cajj-backend/internal/metrics"
	"cajj-backend/internal/middleware"
	"cajj-backend/internal/news"
	"cajj-backend/internal/publications"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

type app struct {
	cfg     *config.Config
	log     *slog.Logger
	metrics *metrics.Metrics
	auth    *auth.Manager

	server         *handlers.Server
	news           *news.Handler
	gallery        *gallery.Handler
	publications   *publications.Handler
	about          *about.Handler
	actions        *actions.Handler
	documentations *documentations.Handler
	dashboard      *dashboard.Handler
}

func (a *app) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(a.log))
	r.Use(middleware.CORS(a.cfg.FrontendOrigins))
	r.Use(middleware.Metrics(a.metrics))

	window := time.Duration(a.cfg.RateLimitWindowSec) * time.Second
	contactLimiter := middleware.NewRateLimiter(a.cfg.RateLimitContact, window)
	loginLimiter := middleware.NewRateLimiter(a.cfg.RateLimitLogin, window)

	r.Route("/api", func(api chi.Router) {
		// Large videos stream for longer than the request timeout.
		api.Get("/storage/*", a.server.ServeFile)

		api.Group(func(public chi.Router) {
			public.Use(chiMiddleware.Timeout(a.cfg.RequestTimeout))

			public.Get("/", a.server.Health)
			public.Get("/about", a.about.PublicPage)
			public.Get("/actions", a.actions.PublicList)
			public.Get("/publications", a.publications.PublicList)
			public.Get("/news", a.news.PublicList)
			public.Get("/gallery", a.gallery.PublicGallery)
			public.Get("/documentations", a.documentations.PublicList)
			public.With(contactLimiter.Middleware).Post("/contact", a.server.CreateContact)

			public.With(loginLimiter.Middleware).Post("/auth/login", a.server.Login)
			public.Get("/auth/login", a.server.LoginMethodNotAllowed)
		})

		api.Route("/admin", func(admin chi.Router) {
			admin.Use(middleware.AdminAuth(a.auth, a.log))
			admin.Use(chiMiddleware.Timeout(a.cfg.UploadTimeout))

			admin.Get("/me", a.server.Me)
			admin.Get("/data", a.dashboard.AdminData)
			a.adminNews(admin)
			a.adminGallery(admin)
			a.adminPublications(admin)
			a.adminDocumentations(admin)

			admin.Get("/about", a.about.AdminList)
			admin.Put("/about/sections/{slug}", a.about.AdminUpdate)

			admin.Get("/actions", a.actions.AdminList)
			admin.Put("/actions/order", a.actions.AdminReorder)
			admin.Put("/actions/{slug}", a.actions.AdminUpdate)
		})
	})

	r.Handle("/metrics", a.metrics.Handler())
	r.Get("/storage/*", a.server.ServeFile)
	r.Get("/uploads/*", a.server.ServeFile)
	return r
}

// POST on an item URL is an update for form clients that cannot send PUT.

func (a *app) adminNews(r chi.Router) {
	h := a.news
	r.Route("/news", func(r chi.Router) {
		r.Get("/", h.AdminList)
		r.Post("/", h.AdminCreate)
		r.Get("/{id}", h.AdminGet)
		r.Put("/{id}", h.AdminUpdate)
		r.Post("/{id}", h.AdminUpdate)
		r.Patch("/{id}/visibility", h.AdminVisibility)
		r.Delete("/{id}", h.AdminDelete)
	})
}

func (a *app) adminGallery(r chi.Router) {
	h := a.gallery
	r.Route("/gallery", func(r chi.Router) {
		r.Get("/", h.AdminGallery)

		r.Get("/photos", h.AdminListPhotos)
		r.Post("/photos", h.AdminCreatePhoto)
		r.Put("/photos/{id}", h.AdminUpdatePhoto)
		r.Post("/photos/{id}", h.AdminUpdatePhoto)
		r.Patch("/photos/{id}/visibility", h.AdminPhotoVisibility)
		r.Delete("/photos/{id}", h.AdminDeletePhoto)

		r.Get("/videos", h.AdminListVideos)
		r.Post("/videos", h.AdminCreateVideo)
		r.Put("/videos/{id}", h.AdminUpdateVideo)
		r.Post("/videos/{id}", h.AdminUpdateVideo)
		r.Patch("/videos/{id}/visibility", h.AdminVideoVisibility)
		r.Delete("/videos/{id}", h.AdminDeleteVideo)
	})
}

func (a *app) adminPublications(r chi.Router) {
	h := a.publications
	r.Route("/publications", func(r chi.Router) {
		r.Get("/", h.AdminList)
		r.Get("/{type}", h.AdminListByType)
		r.Post("/{type}", h.AdminCreate)
		r.Put("/{type}/{id}", h.AdminUpdate)
		r.Post("/{type}/{id}", h.AdminUpdate)
		r.Patch("/{type}/{id}/visibility", h.AdminVisibility)
		r.Delete("/{type}/{id}", h.AdminDelete)
	})
}

func (a *app) adminDocumentations(r chi.Router) {
	h := a.documentations
	r.Route("/documentations", func(r chi.Router) {
		r.Get("/", h.AdminList)
		r.Post("/", h.AdminCreate)
		r.Put("/{id}", h.AdminUpdate)
		r.Post("/{id}", h.AdminUpdate)
		r.Patch("/{id}/visibility", h.AdminVisibility)
		r.Delete("/{id}", h.AdminDelete)
	})
}
