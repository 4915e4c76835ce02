package publications

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

const msgInvalidType = "Type invalide. Utilisez 'cajj' ou 'partners'"

var notFound = httpx.NotFound{Err: ErrNotFound, Message: "Publication introuvable"}

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
		log.Error("publications public list: database error", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusInternalServerError, "Erreur lors de la récupération des publications", nil)
		return
	}
	transport.WriteRawJSON(w, http.StatusOK, payload)
}

func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	grouped, err := h.service.ListAdmin(ctx)
	if err != nil {
		h.errs.Internal(w, log, "admin publications list", err)
		return
	}

	log.Info("admin publications list: ok", slog.Int("cajj", len(grouped.CAJJ)), slog.Int("partners", len(grouped.Partners)))
	transport.WriteJSON(w, http.StatusOK, grouped)
}

func (h *Handler) AdminListByType(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	pubType, ok := h.pubType(w, r, log, "admin publications list")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	items, err := h.service.ListByType(ctx, pubType)
	if err != nil {
		h.errs.Internal(w, log, "admin publications list", err)
		return
	}
	transport.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	pubType, ok := h.pubType(w, r, log, "admin publications create")
	if !ok {
		return
	}

	form, err := httpx.ReadForm(w, r, h.maxBody)
	if err != nil {
		h.errs.Form(w, log, "admin publications create", err, "media")
		return
	}
	defer form.Close()

	errs := validation.Errors{}
	req := CreateRequest{
		Title:       form.String("title"),
		Name:        form.String("name"),
		Description: form.String("description"),
		URL:         form.Optional("url"),
		Visible:     form.Flag("visible", errs),
		Media:       form.Upload("media", errs),
		PDF:         form.Upload("pdf", errs),
	}
	if err := h.val.CheckWith(req, errs); err != nil {
		h.errs.Service(w, log, "admin publications create", err, notFound)
		return
	}

	item, err := h.service.Create(r.Context(), pubType, req)
	if err != nil {
		h.errs.Service(w, log, "admin publications create", err, notFound)
		return
	}

	log.Info("admin publications create: ok", slog.String("publication_id", item.ID), slog.String("type", pubType))
	transport.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message":     "Publication ajoutée",
		"publication": item,
	})
}

func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	log := h.logWithRequest(r).With(slog.String("publication_id", id))
	pubType, ok := h.pubType(w, r, log, "admin publications update")
	if !ok {
		return
	}

	form, err := httpx.ReadForm(w, r, h.maxBody)
	if err != nil {
		h.errs.Form(w, log, "admin publications update", err, "media")
		return
	}
	defer form.Close()

	errs := validation.Errors{}
	req := UpdateRequest{
		Title:       form.String("title"),
		Name:        form.String("name"),
		Description: form.String("description"),
		URL:         form.String("url"),
		Visible:     form.Flag("visible", errs),
		Media:       form.Upload("media", errs),
		PDF:         form.Upload("pdf", errs),
	}
	// An empty url clears the link; only non-empty values are checked.
	clearURL := req.URL != nil && strings.TrimSpace(*req.URL) == ""
	if clearURL {
		req.URL = nil
	}
	if remove := form.Flag("remove_media", errs); remove != nil {
		req.RemoveMedia = *remove
	}
	if remove := form.Flag("remove_pdf", errs); remove != nil {
		req.RemovePDF = *remove
	}
	if err := h.val.CheckWith(req, errs); err != nil {
		h.errs.Service(w, log, "admin publications update", err, notFound)
		return
	}
	if clearURL {
		empty := ""
		req.URL = &empty
	}

	item, err := h.service.Update(r.Context(), pubType, id, req)
	if err != nil {
		h.errs.Service(w, log, "admin publications update", err, notFound)
		return
	}

	log.Info("admin publications update: ok")
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":     "Publication mise à jour",
		"publication": item,
	})
}

func (h *Handler) AdminVisibility(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	log := h.logWithRequest(r).With(slog.String("publication_id", id))
	pubType, ok := h.pubType(w, r, log, "admin publications visibility")
	if !ok {
		return
	}

	form, err := httpx.ReadForm(w, r, 0)
	if err != nil {
		h.errs.Form(w, log, "admin publications visibility", err, "visible")
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

	item, err := h.service.SetVisibility(ctx, pubType, id, visible)
	if err != nil {
		h.errs.Service(w, log, "admin publications visibility", err, notFound)
		return
	}

	message := "Publication masquée"
	if item.Visible {
		message = "Publication publiée"
	}
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message":     message,
		"publication": item,
	})
}

func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	log := h.logWithRequest(r).With(slog.String("publication_id", id))
	pubType, ok := h.pubType(w, r, log, "admin publications delete")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, pubType, id); err != nil {
		h.errs.Service(w, log, "admin publications delete", err, notFound)
		return
	}

	log.Info("admin publications delete: ok")
	transport.WriteMessage(w, http.StatusOK, "Publication supprimée")
}

func (h *Handler) pubType(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string) (string, bool) {
	raw := chi.URLParam(r, "type")
	pubType, err := ParseType(raw)
	if err != nil {
		log.Warn(op+": invalid type", slog.String("type", raw))
		transport.WriteError(w, http.StatusBadRequest, msgInvalidType, nil)
		return "", false
	}
	return pubType, true
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
