package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/primetrade/taskboard-api/internal/api/shared"
	"github.com/primetrade/taskboard-api/internal/domain"
	"github.com/primetrade/taskboard-api/internal/platform/logger"
	"github.com/primetrade/taskboard-api/internal/service"
	"github.com/primetrade/taskboard-api/internal/store"
)

// TaskHandler handles task-related HTTP requests. Every operation is
// scoped to the authenticated user; ownership of other users' tasks is
// never disclosed.
type TaskHandler struct {
	taskService *service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService *service.TaskService, logger *slog.Logger) *TaskHandler {
	if taskService == nil {
		panic("taskService cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// CreateTask handles POST /tasks.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), userID,
		req.Title, req.Description, domain.TaskStatus(req.Status))
	if err != nil {
		h.handleTaskError(w, r, err, "failed to create task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewTaskResponse(task))
}

// GetTask handles GET /tasks/{id}.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), taskID, userID)
	if err != nil {
		h.handleTaskError(w, r, err, "failed to get task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// ListTasks handles GET /tasks.
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	page, err := h.taskService.ListTasks(r.Context(), userID, getPageRequest(r))
	if err != nil {
		h.handleTaskError(w, r, err, "failed to list tasks")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(page))
}

// UpdateTask handles PUT /tasks/{id}.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	update := service.TaskUpdate{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.TaskStatus(*req.Status)
		update.Status = &status
	}

	task, err := h.taskService.UpdateTask(r.Context(), taskID, userID, update)
	if err != nil {
		h.handleTaskError(w, r, err, "failed to update task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// DeleteTask handles DELETE /tasks/{id}.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserIDAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(r.Context(), taskID, userID); err != nil {
		h.handleTaskError(w, r, err, "failed to delete task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: "Task deleted successfully"})
}

// handleTaskError maps service errors onto responses, logging the
// unexpected ones.
func (h *TaskHandler) handleTaskError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	switch {
	case errors.Is(err, store.ErrTaskNotFound):
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrEmptyTaskTitle),
		errors.Is(err, domain.ErrTaskTitleTooLong),
		errors.Is(err, domain.ErrInvalidTaskStatus):
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
	default:
		log.Error(logMsg, "error", err)
		HandleAPIError(w, r, err, "")
	}
}
