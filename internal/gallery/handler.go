package gallery

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cajj-backend/internal/content"
	"cajj-backend/internal/httpx"
	"cajj-backend/internal/middleware"
	"cajj-backend/internal/transport"
	"cajj-backend/internal/validation"

	"github.com/go-chi/chi/v5"
)

var (
	photoNotFound = httpx.NotFound{Err: ErrPhotoNotFound, Message: "Photo introuvable"}
	videoNotFound = httpx.NotFound{Err: ErrVideoNotFound, Message: "Vidéo introuvable"}
)

type Handler struct {
	service *Service
	val     *validation.Validator
	log     *slog.Logger
	errs    httpx.ErrorWriter
	maxBody int64
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger, errs httpx.ErrorWriter, maxBody int64) *Handler {
	return &Handler{
		service: service,
		val:     val,
		log:     log,
		errs:    errs,
		maxBody: maxBody,
	}
}

func (h *Handler) PublicGallery(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	payload, err := h.service.PublicJSON(ctx)
	if err != nil {
		log.Error("gallery public list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "Erreur lors de la récupération de la galerie", nil)
		return
	}
	transport.WriteRawJSON(w, http.StatusOK, payload)
}

// AdminGallery lists every photo and video, hidden ones included.
func (h *Handler) AdminGallery(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	photos, err := h.service.ListPhotos(ctx)
	if err != nil {
		h.errs.Internal(w, log, "admin gallery list", err)
		return
	}
	videos, err := h.service.ListVideos(ctx)
	if err != nil {
		h.errs.Internal(w, log, "admin gallery list", err)
		return
	}

	log.Info("admin gallery list: ok", slog.Int("photos", len(photos)), slog.Int("videos", len(videos)))
	transport.WriteJSON(w, http.StatusOK, Gallery{Photos: photos, Videos: videos})
}

func (h *Handler) AdminListPhotos(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, err := h.service.ListPhotos(ctx)
	if err != nil {
		h.errs.Internal(w, log, "admin photos list", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) AdminCreatePhoto(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	form, err := httpx.ReadForm(w, r, h.maxBody)
	if err != nil {
		h.errs.Form(w, log, "admin photos create", err, "file")
		return
	}
	defer form.Close()

	errs := validation.Errors{}
	req := PhotoCreateRequest{
		Title:       form.Optional("title"),
		Description: form.String("description"),
		Visible:     form.Flag("visible", errs),
		File:        form.Upload("file", errs),
	}
	if err := h.val.CheckWith(req, errs); err != nil {
		h.errs.Service(w, log, "admin photos create", err, photoNotFound)
		return
	}

	item, err := h.service.CreatePhoto(r.Context(), req)
	if err != nil {
		h.errs.Service(w, log, "admin photos create", err, photoNotFound)
		return
	}

	log.Info("admin photos create: ok", slog.String("photo_id", item.ID), slog.String("filename", item.Filename))
	transport.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Photo ajoutée",
		"photo":   item,
	})
}

func (h *Handler) AdminUpdatePhoto(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	log := h.logWithRequest(r).With(slog.String("photo_id", id))

	req, ok := h.readUpdate(w, r, log, "admin photos update", false)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.UpdatePhoto(ctx, id, req)
	if err != nil {
		h.errs.Service(w, log, "admin photos update", err, photoNotFound)
		return
	}

	log.Info("admin photos update: ok")
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Photo mise à jour",
		"photo":   item,
	})
}

func (h *Handler) AdminPhotoVisibility(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	log := h.logWithRequest(r).With(slog.String("photo_id", id))

	visible, ok := h.readVisibility(w, r, log, "admin photos visibility")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.SetPhotoVisibility(ctx, id, visible)
	if err != nil {
		h.errs.Service(w, log, "admin photos visibility", err, photoNotFound)
		return
	}

	message := "Photo masquée"
	if item.Visible {
		message = "Photo publiée"
	}
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"photo":   item,
	})
}

func (h *Handler) AdminDeletePhoto(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	log := h.logWithRequest(r).With(slog.String("photo_id", id))

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if err := h.service.DeletePhoto(ctx, id); err != nil {
		h.errs.Service(w, log, "admin photos delete", err, photoNotFound)
		return
	}

	log.Info("admin photos delete: ok")
	transport.WriteMessage(w, http.StatusOK, "Photo supprimée")
}

func (h *Handler) AdminListVideos(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, err := h.service.ListVideos(ctx)
	if err != nil {
		h.errs.Internal(w, log, "admin videos list", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) AdminCreateVideo(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	form, err := httpx.ReadForm(w, r, h.maxBody)
	if err != nil {
		h.errs.Form(w, log, "admin videos create", err, "file")
		return
	}
	defer form.Close()

	errs := validation.Errors{}
	req := VideoCreateRequest{
		Title:       form.Optional("title"),
		Description: form.String("description"),
		URL:         form.Optional("url"),
		Visible:     form.Flag("visible", errs),
		File:        form.Upload("file", errs),
	}
	if err := h.val.CheckWith(req, errs); err != nil {
		h.errs.Service(w, log, "admin videos create", err, videoNotFound)
		return
	}

	item, err := h.service.CreateVideo(r.Context(), req)
	if err != nil {
		h.errs.Service(w, log, "admin videos create", err, videoNotFound)
		return
	}

	log.Info("admin videos create: ok", slog.String("video_id", item.ID), slog.Bool("external", item.External()))
	transport.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Vidéo ajoutée",
		"video":   item,
	})
}

func (h *Handler) AdminUpdateVideo(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	log := h.logWithRequest(r).With(slog.String("video_id", id))

	req, ok := h.readUpdate(w, r, log, "admin videos update", true)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	item, err := h.service.UpdateVideo(ctx, id, req)
	if err != nil {
		h.errs.Service(w, log, "admin videos update", err, videoNotFound)
		return
	}

	log.Info("admin videos update: ok")
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Vidéo mise à jour",
		"video":   item,
	})
}

func (h *Handler) AdminVideoVisibility(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	log := h.logWithRequest(r).With(slog.String("video_id", id))

	visible, ok := h.readVisibility(w, r, log, "admin videos visibility")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.SetVideoVisibility(ctx, id, visible)
	if err != nil {
		h.errs.Service(w, log, "admin videos visibility", err, videoNotFound)
		return
	}

	message := "Vidéo masquée"
	if item.Visible {
		message = "Vidéo publiée"
	}
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"video":   item,
	})
}

func (h *Handler) AdminDeleteVideo(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	log := h.logWithRequest(r).With(slog.String("video_id", id))

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if err := h.service.DeleteVideo(ctx, id); err != nil {
		h.errs.Service(w, log, "admin videos delete", err, videoNotFound)
		return
	}

	log.Info("admin videos delete: ok")
	transport.WriteMessage(w, http.StatusOK, "Vidéo supprimée")
}

func (h *Handler) readUpdate(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, withURL bool) (UpdateRequest, bool) {
	form, err := httpx.ReadForm(w, r, h.maxBody)
	if err != nil {
		h.errs.Form(w, log, op, err, "file")
		return UpdateRequest{}, false
	}
	defer form.Close()

	errs := validation.Errors{}
	req := UpdateRequest{
		Title:       form.String("title"),
		Description: form.String("description"),
		Visible:     form.Flag("visible", errs),
	}
	if withURL {
		req.URL = form.Optional("url")
	}
	if err := h.val.CheckWith(req, errs); err != nil {
		h.errs.Service(w, log, op, err, httpx.NotFound{})
		return UpdateRequest{}, false
	}
	return req, true
}

func (h *Handler) readVisibility(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string) (bool, bool) {
	form, err := httpx.ReadForm(w, r, 0)
	if err != nil {
		h.errs.Form(w, log, op, err, "visible")
		return false, false
	}
	errs := validation.Errors{}
	visible := content.Visible(form.Flag("visible", errs))
	if len(errs) > 0 {
		h.errs.Validation(w, errs)
		return false, false
	}
	return visible, true
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return h.log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
