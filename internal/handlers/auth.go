package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cajj-backend/internal/httpx"
	"cajj-backend/internal/middleware"
	"cajj-backend/internal/transport"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginUser struct {
	Username string `json:"username"`
}

type LoginResponse struct {
	Token string    `json:"token"`
	User  LoginUser `json:"user"`
}

type MeResponse struct {
	Username  string    `json:"username"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	log := s.logWithRequest(r)

	form, err := httpx.ReadForm(w, r, 16<<10)
	if err != nil {
		log.Warn("auth login: invalid body", slog.String("error", err.Error()))
		transport.WriteError(w, http.StatusBadRequest, httpx.MsgInvalidBody, nil)
		return
	}
	defer form.Close()

	var req LoginRequest
	if v := form.String("username"); v != nil {
		req.Username = strings.TrimSpace(*v)
	}
	if v := form.String("password"); v != nil {
		req.Password = *v
	}
	if req.Username == "" || req.Password == "" {
		log.Warn("auth login: missing credentials")
		transport.WriteError(w, http.StatusBadRequest, "Nom d'utilisateur et mot de passe requis", nil)
		return
	}

	if s.Auth == nil || len(s.Auth.Secret) == 0 || !s.Credentials.Configured() {
		log.Error("auth login: not configured")
		transport.WriteError(w, http.StatusServiceUnavailable, middleware.MsgAuthNotConfigured, nil)
		return
	}

	if !s.Credentials.Verify(req.Username, req.Password) {
		log.Warn("auth login: invalid credentials", slog.String("username", req.Username))
		transport.WriteError(w, http.StatusUnauthorized, "Identifiants incorrects", nil)
		return
	}

	token, _, err := s.Auth.NewToken(req.Username)
	if err != nil {
		s.Errs.Internal(w, log, "auth login", err)
		return
	}

	log.Info("auth login: ok", slog.String("username", req.Username))
	transport.WriteJSON(w, http.StatusOK, LoginResponse{
		Token: token,
		User:  LoginUser{Username: req.Username},
	})
}

// LoginMethodNotAllowed answers browsers that open the login URL directly.
func (s *Server) LoginMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Allow", http.MethodPost)
	transport.WriteErrorMessage(w, http.StatusMethodNotAllowed, "Méthode non autorisée",
		"La route /auth/login n'accepte que les requêtes POST. Utilisez POST avec username et password.")
}

// Me returns the principal of the admin token. It must run behind AdminAuth.
func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.PrincipalFromContext(r.Context())
	if claims == nil {
		transport.WriteError(w, http.StatusUnauthorized, middleware.MsgTokenRequired, nil)
		return
	}
	resp := MeResponse{Username: claims.Username}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Time
	}
	transport.WriteJSON(w, http.StatusOK, resp)
}
