package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"cajj-backend/internal/transport"
	"cajj-backend/internal/upload"
	"cajj-backend/internal/validation"
)

const (
	MsgInvalidBody  = "Requête invalide"
	MsgValidation   = "Erreur de validation"
	MsgUploadFailed = "Erreur lors de l'upload du fichier"
	MsgServerError  = "Erreur interne du serveur"
)

// NotFound pairs an entity's sentinel error with its client message.
type NotFound struct {
	Err     error
	Message string
}

// ErrorWriter maps service errors to HTTP responses. Debug exposes the
// underlying error text on 500 responses.
type ErrorWriter struct {
	Debug bool
}

// Validation writes a 422 with per-field details.
func (ew ErrorWriter) Validation(w http.ResponseWriter, details map[string]string) {
	transport.WriteError(w, http.StatusUnprocessableEntity, MsgValidation, details)
}

// Form reports a body that could not be read. An oversized body is reported
// against fileField since only uploads can exceed the limit.
func (ew ErrorWriter) Form(w http.ResponseWriter, log *slog.Logger, op string, err error, fileField string) {
	if errors.Is(err, ErrBodyTooLarge) {
		log.Warn(op+": body too large", slog.String("field", fileField))
		ew.Validation(w, map[string]string{fileField: "max"})
		return
	}
	log.Warn(op+": invalid body", slog.String("error", err.Error()))
	transport.WriteError(w, http.StatusBadRequest, MsgInvalidBody, nil)
}

func (ew ErrorWriter) Service(w http.ResponseWriter, log *slog.Logger, op string, err error, nf NotFound) {
	if fields, ok := validation.AsErrors(err); ok {
		log.Warn(op+": validation error", slog.Any("details", map[string]string(fields)))
		ew.Validation(w, fields)
		return
	}
	if nf.Err != nil && errors.Is(err, nf.Err) {
		log.Warn(op + ": not found")
		transport.WriteError(w, http.StatusNotFound, nf.Message, nil)
		return
	}
	var uploadErr *upload.Error
	if errors.As(err, &uploadErr) {
		log.Error(op+": upload failed", slog.String("subdir", uploadErr.Subdir), slog.String("error", err.Error()))
		transport.WriteErrorMessage(w, http.StatusInternalServerError, MsgUploadFailed, ew.detail(err, "Le fichier n'a pas pu être enregistré"))
		return
	}
	ew.Internal(w, log, op, err)
}

func (ew ErrorWriter) Internal(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	log.Error(op+": internal error", slog.String("error", err.Error()))
	if ew.Debug {
		transport.WriteErrorMessage(w, http.StatusInternalServerError, MsgServerError, err.Error())
		return
	}
	transport.WriteError(w, http.StatusInternalServerError, MsgServerError, nil)
}

func (ew ErrorWriter) detail(err error, fallback string) string {
	if ew.Debug {
		return err.Error()
	}
	return fallback
}
