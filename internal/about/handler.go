package about

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"cajj-backend/internal/httpx"
	"cajj-backend/internal/middleware"
	"cajj-backend/internal/transport"
	"cajj-backend/internal/validation"

	"github.com/go-chi/chi/v5"
)

var notFound = httpx.NotFound{Err: ErrNotFound, Message: "Section introuvable"}

type Handler struct {
	service *Service
	val     *validation.Validator
	log     *slog.Logger
	errs    httpx.ErrorWriter
}

func NewHandler(service *Service, val *validation.Validator, log *slog.Logger, errs httpx.ErrorWriter) *Handler {
	return &Handler{
		service: service,
		val:     val,
		log:     log,
		errs:    errs,
	}
}

func (h *Handler) PublicPage(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	payload, err := h.service.PublicJSON(ctx)
	if err != nil {
		log.Error("about public: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "Erreur lors de la récupération des sections", nil)
		return
	}
	transport.WriteRawJSON(w, http.StatusOK, payload)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	sections, err := h.service.List(ctx)
	if err != nil {
		h.errs.Internal(w, log, "admin about list", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"sections": sections,
	})
}

func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	log := h.logWithRequest(r).With(slog.String("section", slug))

	form, err := httpx.ReadForm(w, r, 0)
	if err != nil {
		h.errs.Form(w, log, "admin about update", err, "content")
		return
	}
	defer form.Close()

	req := UpdateRequest{
		Title:   form.String("title"),
		Content: form.String("content"),
	}
	if err := h.val.Check(req); err != nil {
		h.errs.Service(w, log, "admin about update", err, notFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	section, err := h.service.Update(ctx, slug, req)
	if err != nil {
		h.errs.Service(w, log, "admin about update", err, notFound)
		return
	}

	log.Info("admin about update: ok")
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Section mise à jour",
		"section": section,
	})
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
