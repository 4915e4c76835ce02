package actions

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

var notFound = httpx.NotFound{Err: ErrNotFound, Message: "Action introuvable"}

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

func (h *Handler) PublicList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	payload, err := h.service.PublicJSON(ctx)
	if err != nil {
		log.Error("actions public list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "Erreur lors de la récupération des actions", nil)
		return
	}
	transport.WriteRawJSON(w, http.StatusOK, payload)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := h.service.List(ctx)
	if err != nil {
		h.errs.Internal(w, log, "admin actions list", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	log := h.logWithRequest(r).With(slog.String("action", slug))

	form, err := httpx.ReadForm(w, r, 0)
	if err != nil {
		h.errs.Form(w, log, "admin actions update", err, "description")
		return
	}
	defer form.Close()

	errs := validation.Errors{}
	req := UpdateRequest{
		Title:       form.String("title"),
		Description: form.String("description"),
		Order:       form.Integer("order", errs),
	}
	if err := h.val.CheckWith(req, errs); err != nil {
		h.errs.Service(w, log, "admin actions update", err, notFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.Update(ctx, slug, req)
	if err != nil {
		h.errs.Service(w, log, "admin actions update", err, notFound)
		return
	}

	log.Info("admin actions update: ok")
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Action mise à jour",
		"action":  item,
	})
}

func (h *Handler) AdminReorder(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	var req ReorderRequest
	if err := httpx.DecodeJSON(r.Body, &req); err != nil {
		log.Warn("admin actions reorder: invalid body", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, httpx.MsgInvalidBody, nil)
		return
	}
	if err := h.val.Check(req); err != nil {
		h.errs.Service(w, log, "admin actions reorder", err, notFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, err := h.service.Reorder(ctx, req.IDs)
	if err != nil {
		h.errs.Service(w, log, "admin actions reorder", err, notFound)
		return
	}

	log.Info("admin actions reorder: ok", slog.Int("count", len(req.IDs)))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Ordre des actions mis à jour",
		"actions": items,
	})
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
