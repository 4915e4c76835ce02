package news

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

var notFound = httpx.NotFound{Err: ErrNotFound, Message: "Actualité introuvable"}

type Handler struct {
	service *Service
	val     *validation.Validator
	log     *slog.Logger
	errs    httpx.ErrorWriter
	maxBody int64
}

// NewHandler builds the news handler. maxBody bounds admin request bodies,
// attachments included.
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
		transport.WriteError(w, http.StatusInternalServerError, "Erreur lors de la récupération des actualités", nil)
		log.Error("news public list: database error", slog.String("error", err.Error()))
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
		h.errs.Internal(w, log, "admin news list", err)
		return
	}

	log.Info("admin news list: ok", slog.Int("count", len(items)))
	transport.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) AdminGet(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)
	id := strings.TrimSpace(chi.URLParam(r, "id"))

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	item, err := h.service.Get(ctx, id)
	if err != nil {
		h.errs.Service(w, log.With(slog.String("news_id", id)), "admin news get", err, notFound)
		return
	}
	transport.WriteJSON(w, http.StatusOK, item)
}

func (h *Handler) AdminCreate(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	form, err := httpx.ReadForm(w, r, h.maxBody)
	if err != nil {
		h.errs.Form(w, log, "admin news create", err, "media")
		return
	}
	defer form.Close()

	errs := validation.Errors{}
	req := CreateRequest{
		Title:   form.String("title"),
		Content: form.String("content"),
		Author:  form.Optional("author"),
		Date:    form.Optional("date"),
		Visible: form.Flag("visible", errs),
		Media:   form.Upload("media", errs),
		PDF:     form.Upload("pdf", errs),
	}
	if err := h.val.CheckWith(req, errs); err != nil {
		h.errs.Service(w, log, "admin news create", err, notFound)
		return
	}

	item, err := h.service.Create(r.Context(), req)
	if err != nil {
		h.errs.Service(w, log, "admin news create", err, notFound)
		return
	}

	log.Info("admin news create: ok", slog.String("news_id", item.ID))
	transport.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Actualité ajoutée",
		"news":    item,
	})
}

func (h *Handler) AdminUpdate(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	log := h.logWithRequest(r).With(slog.String("news_id", id))

	form, err := httpx.ReadForm(w, r, h.maxBody)
	if err != nil {
		h.errs.Form(w, log, "admin news update", err, "media")
		return
	}
	defer form.Close()

	errs := validation.Errors{}
	req := UpdateRequest{
		Title:   form.String("title"),
		Content: form.String("content"),
		Author:  form.String("author"),
		Date:    form.Optional("date"),
		Visible: form.Flag("visible", errs),
		Media:   form.Upload("media", errs),
		PDF:     form.Upload("pdf", errs),
	}
	if remove := form.Flag("remove_media", errs); remove != nil {
		req.RemoveMedia = *remove
	}
	if remove := form.Flag("remove_pdf", errs); remove != nil {
		req.RemovePDF = *remove
	}
	if err := h.val.CheckWith(req, errs); err != nil {
		h.errs.Service(w, log, "admin news update", err, notFound)
		return
	}

	item, err := h.service.Update(r.Context(), id, req)
	if err != nil {
		h.errs.Service(w, log, "admin news update", err, notFound)
		return
	}

	log.Info("admin news update: ok")
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Actualité mise à jour",
		"news":    item,
	})
}

func (h *Handler) AdminVisibility(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	log := h.logWithRequest(r).With(slog.String("news_id", id))

	form, err := httpx.ReadForm(w, r, 0)
	if err != nil {
		h.errs.Form(w, log, "admin news visibility", err, "visible")
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
		h.errs.Service(w, log, "admin news visibility", err, notFound)
		return
	}

	message := "Actualité masquée"
	if item.Visible {
		message = "Actualité publiée"
	}
	log.Info("admin news visibility: ok", slog.Bool("visible", item.Visible))
	transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"news":    item,
	})
}

func (h *Handler) AdminDelete(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimSpace(chi.URLParam(r, "id"))
	log := h.logWithRequest(r).With(slog.String("news_id", id))

	ctx, cancel := context.WithTimeout(r.Context(), 8*time.Second)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		h.errs.Service(w, log, "admin news delete", err, notFound)
		return
	}

	log.Info("admin news delete: ok")
	transport.WriteMessage(w, http.StatusOK, "Actualité supprimée")
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
