package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/primetrade/taskboard-api/internal/api/shared"
	"github.com/primetrade/taskboard-api/internal/platform/logger"
	"github.com/primetrade/taskboard-api/internal/service"
	"github.com/primetrade/taskboard-api/internal/store"
)

// AdminHandler handles the admin-only task endpoints. Role enforcement
// happens in the middleware chain; by the time a request lands here the
// caller is a verified admin.
type AdminHandler struct {
	taskService *service.TaskService
	logger      *slog.Logger
}

// NewAdminHandler creates a new AdminHandler with the given dependencies.
func NewAdminHandler(taskService *service.TaskService, logger *slog.Logger) *AdminHandler {
	if taskService == nil {
		panic("taskService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AdminHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "admin_handler")),
	}
}

// ListAllTasks handles GET /admin/tasks. Results span every user and are
// never served from the per-user cache.
func (h *AdminHandler) ListAllTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	page, err := h.taskService.ListAllTasks(r.Context(), getPageRequest(r))
	if err != nil {
		log.Error("failed to list all tasks", "error", err)
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(page))
}

// DeleteAnyTask handles DELETE /admin/tasks/{id}.
func (h *AdminHandler) DeleteAnyTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.taskService.DeleteAnyTask(r.Context(), taskID); err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
			return
		}
		log.Error("failed to delete task", "error", err)
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Task deleted successfully"})
}
