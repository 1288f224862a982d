package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/primetrade/taskboard-api/internal/domain"
	"github.com/primetrade/taskboard-api/internal/platform/logger"
	"github.com/primetrade/taskboard-api/internal/store"
)

// ListCache is the cache surface the task service needs for list results.
// Implemented by redis.TaskListCache; a nil cache disables caching.
type ListCache interface {
	GetPage(ctx context.Context, userID uuid.UUID, page store.PageRequest) ([]byte, bool)
	SetPage(ctx context.Context, userID uuid.UUID, page store.PageRequest, payload []byte)
	Invalidate(ctx context.Context, userID uuid.UUID)
}

// TaskPage is one page of task list results together with its pagination
// metadata.
type TaskPage struct {
	Tasks      []*domain.Task `json:"tasks"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// TaskUpdate carries the optional fields of a partial task update.
// Nil fields are left unchanged.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
}

// TaskService implements the task use cases: ownership-scoped CRUD with
// pagination, the admin variants that bypass the ownership filter, and
// advisory caching of list results.
type TaskService struct {
	taskStore store.TaskStore
	cache     ListCache
	logger    *slog.Logger
}

// NewTaskService creates a TaskService. cache may be nil to disable the
// list cache; logger may be nil to use the default.
func NewTaskService(taskStore store.TaskStore, cache ListCache, logger *slog.Logger) *TaskService {
	if taskStore == nil {
		panic("taskStore cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskService{
		taskStore: taskStore,
		cache:     cache,
		logger:    logger.With(slog.String("component", "task_service")),
	}
}

// CreateTask creates a task owned by the given user. An empty status
// defaults to pending; title and description are sanitized.
func (s *TaskService) CreateTask(
	ctx context.Context,
	userID uuid.UUID,
	title, description string,
	status domain.TaskStatus,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewTask(userID, title, description, status)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.invalidate(ctx, userID)

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.String("user_id", userID.String()))
	return task, nil
}

// GetTask retrieves a task scoped to its owner. Missing and not-owned are
// indistinguishable (store.ErrTaskNotFound).
func (s *TaskService) GetTask(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	return s.taskStore.GetForUser(ctx, id, userID)
}

// ListTasks returns one page of the user's tasks, newest first, serving
// from the cache when a fresh entry exists.
func (s *TaskService) ListTasks(
	ctx context.Context,
	userID uuid.UUID,
	page store.PageRequest,
) (*TaskPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	page = page.Normalize()

	if s.cache != nil {
		if payload, ok := s.cache.GetPage(ctx, userID, page); ok {
			var cached TaskPage
			if err := json.Unmarshal(payload, &cached); err == nil {
				log.Debug("task list served from cache",
					slog.String("user_id", userID.String()),
					slog.Int("page", page.Page))
				return &cached, nil
			}
			// Corrupt entry: fall through to the store read.
			log.Warn("discarding undecodable cache entry",
				slog.String("user_id", userID.String()))
		}
	}

	tasks, total, err := s.taskStore.ListForUser(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	result := &TaskPage{
		Tasks:      tasks,
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages(total),
	}

	if s.cache != nil {
		if payload, err := json.Marshal(result); err == nil {
			s.cache.SetPage(ctx, userID, page, payload)
		}
	}

	return result, nil
}

// UpdateTask applies a partial update to a task scoped to its owner.
// Provided fields are sanitized and validated before the write.
func (s *TaskService) UpdateTask(
	ctx context.Context,
	id, userID uuid.UUID,
	update TaskUpdate,
) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := s.taskStore.GetForUser(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		title := domain.SanitizeText(*update.Title)
		if err := domain.ValidateTaskTitle(title); err != nil {
			return nil, err
		}
		task.Title = title
	}

	if update.Description != nil {
		task.Description = domain.SanitizeText(*update.Description)
	}

	if update.Status != nil {
		if !update.Status.IsValid() {
			return nil, domain.ErrInvalidTaskStatus
		}
		task.Status = *update.Status
	}

	if err := s.taskStore.UpdateForUser(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.invalidate(ctx, userID)

	log.Info("task updated",
		slog.String("task_id", id.String()),
		slog.String("user_id", userID.String()))
	return task, nil
}

// DeleteTask removes a task scoped to its owner.
func (s *TaskService) DeleteTask(ctx context.Context, id, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.taskStore.DeleteForUser(ctx, id, userID); err != nil {
		return err
	}

	s.invalidate(ctx, userID)

	log.Info("task deleted",
		slog.String("task_id", id.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// ListAllTasks returns one page of every user's tasks. Admin use only;
// results are not cached.
func (s *TaskService) ListAllTasks(ctx context.Context, page store.PageRequest) (*TaskPage, error) {
	page = page.Normalize()

	tasks, total, err := s.taskStore.ListAll(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list all tasks: %w", err)
	}

	return &TaskPage{
		Tasks:      tasks,
		Total:      total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages(total),
	}, nil
}

// DeleteAnyTask removes a task regardless of owner. Admin use only.
func (s *TaskService) DeleteAnyTask(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ownerID, err := s.taskStore.DeleteAny(ctx, id)
	if err != nil {
		return err
	}

	s.invalidate(ctx, ownerID)

	log.Info("task deleted by admin", slog.String("task_id", id.String()))
	return nil
}

func (s *TaskService) invalidate(ctx context.Context, userID uuid.UUID) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, userID)
	}
}
