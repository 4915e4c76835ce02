package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"cajj-backend/internal/auth"
	"cajj-backend/internal/httpx"
	"cajj-backend/internal/middleware"
	"cajj-backend/internal/notifications"
	"cajj-backend/internal/storage"
	"cajj-backend/internal/validation"
)

type ContactMailer interface {
	SendContactNotification(ctx context.Context, inbox string, msg notifications.ContactMessage) (string, error)
}

// Server serves the routes that are not tied to a content entity: health,
// contact form, admin login and stored files.
type Server struct {
	Val         *validation.Validator
	Log         *slog.Logger
	Errs        httpx.ErrorWriter
	Auth        *auth.Manager
	Credentials auth.Credentials
	Files       storage.Backend
	// Mailer may be nil; contact messages are then only acknowledged.
	Mailer       ContactMailer
	ContactInbox string
}

func (s *Server) logWithRequest(r *http.Request) *slog.Logger {
	if r == nil {
		return s.Log
	}
	if id := middleware.RequestIDFromContext(r.Context()); id != "" {
		return s.Log.With(slog.String("request_id", id))
	}
	return s.Log
}
