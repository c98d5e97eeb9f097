package handlers

import (
	"net/http"
	"time"

	"github.com/alse-sym/automated-ai-agent-on-jira/internal/models"
)

// HealthCheck handles health check requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, &models.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().Unix(),
	}, http.StatusOK)
}
