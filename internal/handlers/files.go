package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"path"

	"cajj-backend/internal/storage"
	"cajj-backend/internal/transport"

	"github.com/go-chi/chi/v5"
)

const storageCacheControl = "public, max-age=31536000"

// ServeFile streams a stored upload. Mount it under a wildcard route; the
// wildcard is the object key. Range requests are handled by http.ServeContent.
func (s *Server) ServeFile(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	key := storage.CleanKey(chi.URLParam(r, "*"))
	if key == "" {
		transport.WriteError(w, http.StatusNotFound, "Fichier introuvable", nil)
		return
	}

	obj, err := s.Files.Open(r.Context(), key)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			transport.WriteError(w, http.StatusNotFound, "Fichier introuvable", nil)
		case errors.Is(err, storage.ErrForbidden):
			log.Warn("storage serve: unreadable", slog.String("key", key))
			transport.WriteError(w, http.StatusForbidden, "Accès au fichier refusé", nil)
		default:
			s.Errs.Internal(w, log, "storage serve", err)
		}
		return
	}
	defer obj.Body.Close()

	w.Header().Set("Content-Type", obj.ContentType)
	w.Header().Set("Cache-Control", storageCacheControl)
	http.ServeContent(w, r, path.Base(key), obj.ModTime, obj.Body)
}
