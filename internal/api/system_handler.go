package api

import (
	"net/http"
	"time"

	"github.com/primetrade/taskboard-api/internal/api/shared"
)

// HealthResponse defines the health check response body.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// APIInfoResponse describes the service for clients hitting the API root.
type APIInfoResponse struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// SystemHandler serves the unauthenticated service endpoints: the health
// check and the API root.
type SystemHandler struct {
	version string
}

// NewSystemHandler creates a SystemHandler reporting the given version.
func NewSystemHandler(version string) *SystemHandler {
	return &SystemHandler{version: version}
}

// Health handles GET /health.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Info handles GET /api/v1.
func (h *SystemHandler) Info(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, APIInfoResponse{
		Name:    "taskboard-api",
		Version: h.version,
		Endpoints: map[string]string{
			"auth":  "/api/v1/auth",
			"tasks": "/api/v1/tasks",
			"admin": "/api/v1/admin",
		},
	})
}
