package documentations

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

var notFound = httpx.NotFound{Err: ErrNotFound, Message: "Documentation introuvable"}

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

func (h *Handler) PublicList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	payload, err := h.service.PublicJSON(ctx)
	if err != nil {
		log.Error("documentations public list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "Erreur lors de la récupération des documentations", nil)
		return
	}
	transport.WriteRawJSON(w, http.StatusOK, payload)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, err := h.service.ListAdmin(ctx)
	if err != nil {
		h.errs.Internal(w, log, "admin documentations list", err)
		return
	}
	log.Info("admin documentations list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	form, err := httpx.ReadForm(w, r, h.maxBody)
	if err != nil {
		h.errs.Form(w, log, "admin documentations create", err, "pdf")
		return
	}
	defer form.Close()

	errs := validation.Errors{}
	req := CreateRequest{
		Title:       form.String("title"),
		Description: form.String("description"),
		Visible:     form.Flag("visible", errs),
		PDF:         form.Upload("pdf", errs),
	}
	if req.PDF == nil && errs["pdf"] == "" {
		errs["pdf"] = "required"
	}
	if err := h.val.CheckWith(req, errs); err != nil {
		h.errs.Service(w, log, "admin documentations create", err, notFound)
		return
	}

	item, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.errs.Service(w, log, "admin documentations create", err, notFound)
		return
	}

	log.Info("admin documentations create: ok", slog.String("documentation_id", item.ID))
	transport.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":       "Documentation ajoutée",
		"documentation": item,
	})
}

func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	log := h.logWithRequest(r).With(slog.String("documentation_id", id))

	form, err := httpx.ReadForm(w, r, h.maxBody)
	if err != nil {
		h.errs.Form(w, log, "admin documentations update", err, "pdf")
		return
	}
	defer form.Close()

	errs := validation.Errors{}
	req := UpdateRequest{
		Title:       form.String("title"),
		Description: form.String("description"),
		Visible:     form.Flag("visible", errs),
		PDF:         form.Upload("pdf", errs),
	}
	if err := h.val.CheckWith(req, errs); err != nil {
		h.errs.Service(w, log, "admin documentations update", err, notFound)
		return
	}

	item, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.errs.Service(w, log, "admin documentations update", err, notFound)
		return
	}

	log.Info("admin documentations update: ok")
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":       "Documentation mise à jour",
		"documentation": item,
	})
}

func (h *Handler) AdminVisibility(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	log := h.logWithRequest(r).With(slog.String("documentation_id", id))

	form, err := httpx.ReadForm(w, r, 0)
	if err != nil {
		h.errs.Form(w, log, "admin documentations visibility", err, "visible")
		return
	}
	errs := validation.Errors{}
	visible := content.Visible(form.Flag("visible", errs))
	if len(errs) > 0 {
		h.errs.Validation(w, errs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.SetVisibility(ctx, id, visible)
	if err != nil {
		h.errs.Service(w, log, "admin documentations visibility", err, notFound)
		return
	}

	message := "Documentation masquée"
	if item.Visible {
		message = "Documentation publiée"
	}
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":       message,
		"documentation": item,
	})
}

func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	log := h.logWithRequest(r).With(slog.String("documentation_id", id))

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		h.errs.Service(w, log, "admin documentations delete", err, notFound)
		return
	}

	log.Info("admin documentations delete: ok")
	transport.WriteMessage(w, http.StatusOK, "Documentation supprimée")
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
