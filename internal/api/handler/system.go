package handler

import (
	"net/http"

	"github.com/taskdeck/taskdeck/internal/api/response"
)

// SystemHandler handles health checks.
type SystemHandler struct{}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler() *SystemHandler {
	return &SystemHandler{}
}

// Health handles GET /v1/health.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
