package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/primetrade/taskboard-api/internal/domain"
	"github.com/primetrade/taskboard-api/internal/service"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
// The password policy (length, character classes) is enforced by the domain
// layer; the tags here only catch the cheap structural problems.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// UserResponse defines the public representation of a user. The password
// hash never appears here.
type UserResponse struct {
	ID        uuid.UUID   `json:"id"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// NewUserResponse builds a UserResponse from a domain user.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// MessageResponse is the generic confirmation body for operations that
// return no entity, such as deletes.
type MessageResponse struct {
	Message string `json:"message"`
}

// RegisterResponse defines the successful response for the registration
// endpoint.
type RegisterResponse struct {
	User UserResponse `json:"user"`
}

// AuthResponse defines the successful response for the login endpoint.
type AuthResponse struct {
	// Token is the JWT used for API authorization
	Token string `json:"token"`

	// User is the authenticated user's public representation
	User UserResponse `json:"user"`
}

// CreateTaskRequest defines the payload for the task creation endpoint.
type CreateTaskRequest struct {
	Title       string `json:"title"       validate:"required,max=200"`
	Description string `json:"description" validate:"omitempty"`
	Status      string `json:"status"      validate:"omitempty,oneof=pending in_progress completed"`
}

// UpdateTaskRequest defines the payload for the task update endpoint.
// Omitted fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitempty,max=200"`
	Description *string `json:"description" validate:"omitempty"`
	Status      *string `json:"status"      validate:"omitempty,oneof=pending in_progress completed"`
}

// TaskResponse defines the public representation of a task.
type TaskResponse struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"user_id"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      domain.TaskStatus `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewTaskResponse builds a TaskResponse from a domain task.
func NewTaskResponse(task *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// TaskListResponse defines one page of task list results.
type TaskListResponse struct {
	Tasks      []TaskResponse `json:"tasks"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

// NewTaskListResponse builds a TaskListResponse from a service page.
func NewTaskListResponse(page *service.TaskPage) TaskListResponse {
	tasks := make([]TaskResponse, 0, len(page.Tasks))
	for _, task := range page.Tasks {
		tasks = append(tasks, NewTaskResponse(task))
	}
	return TaskListResponse{
		Tasks:      tasks,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}
}
