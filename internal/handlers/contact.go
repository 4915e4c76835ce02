package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cajj-backend/internal/content"
	"cajj-backend/internal/httpx"
	"cajj-backend/internal/notifications"
	"cajj-backend/internal/transport"
	"cajj-backend/internal/validation"
)

const (
	contactMaxBody   = 64 << 10
	msgContactFields = "Les champs nom, email et message sont requis."
)

type ContactRequest struct {
	Name    *string `json:"name" validate:"required,notblank,max=255"`
	Email   *string `json:"email" validate:"required,email,max=255"`
	Message *string `json:"message" validate:"required,notblank,max=5000"`
}

type ContactResponse struct {
	Status string                       `json:"status"`
	Data   notifications.ContactMessage `json:"data"`
}

// CreateContact acknowledges a contact form submission. Nothing is stored; the
// message is forwarded by e-mail when a mailer and inbox are configured.
func (s *Server) CreateContact(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	form, err := httpx.ReadForm(w, r, contactMaxBody)
	if err != nil {
		log.Warn("contact create: invalid body", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, httpx.MsgInvalidBody, nil)
		return
	}
	defer form.Close()

	req := ContactRequest{
		Name:    form.String("name"),
		Email:   form.String("email"),
		Message: form.String("message"),
	}
	if req.Email != nil {
		trimmed := strings.TrimSpace(*req.Email)
		req.Email = &trimmed
	}
	if err := s.Val.Check(req); err != nil {
		fields, ok := validation.AsErrors(err)
		if !ok {
			s.Errs.Internal(w, log, "contact create", err)
			return
		}
		log.Warn("contact create: validation error", slog.Any("details", map[string]string(fields)))
		transport.WriteError(w, http.StatusBadRequest, msgContactFields, fields)
		return
	}

	msg := notifications.ContactMessage{
		Name:    content.Text(req.Name),
		Email:   content.Text(req.Email),
		Message: content.Text(req.Message),
	}
	s.forwardContact(r.Context(), log, msg)

	log.Info("contact create: received")
	transport.WriteJSON(w, http.StatusAccepted, ContactResponse{Status: "received", Data: msg})
}

// forwardContact delivers msg to the contact inbox. Failures are logged only.
func (s *Server) forwardContact(ctx context.Context, log *slog.Logger, msg notifications.ContactMessage) {
	if s.Mailer == nil || strings.TrimSpace(s.ContactInbox) == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 8*time.Second)
	defer cancel()

	id, err := s.Mailer.SendContactNotification(ctx, s.ContactInbox, msg)
	if err != nil {
		log.Error("contact create: mail failed", slog.String("error", err.Error()))
		return
	}
	log.Info("contact create: mail sent", slog.String("message_id", id))
}
