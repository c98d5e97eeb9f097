package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/alse-sym/automated-ai-agent-on-jira/internal/errors"
	"github.com/alse-sym/automated-ai-agent-on-jira/internal/models"
)

func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("Failed to encode JSON response", err)
	}
}

func (h *Handler) writeAppError(w http.ResponseWriter, appErr *errors.AppError) {
	response := &models.ErrorResponse{
		Error:    string(appErr.Code),
		Message:  appErr.Message,
		Details:  appErr.Details,
		Required: appErr.Required,
	}

	h.log.With("error_code", appErr.Code).
		With("status_code", appErr.StatusCode).
		Error(appErr.Error(), appErr.Err)

	h.writeJSON(w, response, appErr.StatusCode)
}
