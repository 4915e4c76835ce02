package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"cajj-backend/internal/auth"
	"cajj-backend/internal/transport"
)

const (
	MsgAuthNotConfigured = "Configuration serveur invalide"
	MsgTokenRequired     = "Token d'accès requis"
	MsgTokenRejected     = "Token invalide ou expiré"
)

type principalKey struct{}

// AdminAuth requires a valid Bearer token. A missing token is a 401; a token
// that fails verification is a 403 whatever the reason, which is only logged.
func AdminAuth(manager *auth.Manager, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if manager == nil || len(manager.Secret) == 0 {
				log.Error("admin auth: not configured")
				transport.WriteError(w, http.StatusServiceUnavailable, MsgAuthNotConfigured, nil)
				return
			}

			token := auth.BearerToken(r.Header.Get("Authorization"))
			if token == "" {
				transport.WriteError(w, http.StatusUnauthorized, MsgTokenRequired, nil)
				return
			}

			claims, err := manager.Parse(token)
			if err != nil {
				reason := "invalid"
				if errors.Is(err, auth.ErrTokenExpired) {
					reason = "expired"
				}
				log.Warn("admin auth: token rejected",
					slog.String("reason", reason),
					slog.String("error", err.Error()),
					slog.String("request_id", RequestIDFromContext(r.Context())),
				)
				transport.WriteError(w, http.StatusForbidden, MsgTokenRejected, nil)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// PrincipalFromContext returns the claims stored by AdminAuth, or nil.
func PrincipalFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(principalKey{}).(*auth.Claims)
	return claims
}
