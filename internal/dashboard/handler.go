package dashboard

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"cajj-backend/internal/httpx"
	"cajj-backend/internal/middleware"
	"cajj-backend/internal/transport"
)

type Handler struct {
	sources Sources
	log     *slog.Logger
	errs    httpx.ErrorWriter
}

func NewHandler(sources Sources, log *slog.Logger, errs httpx.ErrorWriter) *Handler {
	return &Handler{sources: sources, log: log, errs: errs}
}

// AdminData returns the full content set for the admin dashboard.
func (h *Handler) AdminData(w http.ResponseWriter, r *http.Request) {
	log := h.logWithRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	snap, err := Collect(ctx, h.sources)
	if err != nil {
		h.errs.Internal(w, log, "admin data", err)
		return
	}

	log.Info("admin data: ok",
		slog.Int("news", len(snap.News)),
		slog.Int("photos", len(snap.Gallery.Photos)),
		slog.Int("videos", len(snap.Gallery.Videos)),
		slog.Int("documentations", len(snap.Documentations)),
	)
	transport.WriteJSON(w, http.StatusOK, snap)
}

func (h *Handler) logWithRequest(r *http.Request) *slog.Logger {
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return h.log.With(slog.String("request_id", id))
	}
	return h.log
}
