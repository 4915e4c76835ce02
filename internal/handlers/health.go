package handlers

import (
	"net/http"

	"cajj-backend/internal/transport"
)

const siteName = "Centre d'Aide Juridico Judiciaire CAJJ ASBL"

type HealthResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	transport.WriteJSON(w, http.StatusOK, HealthResponse{
		Name:    siteName,
		Message: "API CAJJ opérationnelle",
	})
}
