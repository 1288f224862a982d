package domain

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// TaskStatus tracks the progress of a task through its lifecycle.
type TaskStatus string

// Valid task statuses. New tasks default to TaskStatusPending.
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// IsValid reports whether the status is one of the known statuses.
func (s TaskStatus) IsValid() bool {
	switch s {
	case TaskStatusPending, TaskStatusInProgress, TaskStatusCompleted:
		return true
	}
	return false
}

// MaxTaskTitleLength is the upper bound on task titles, matching the
// column width in the tasks table.
const MaxTaskTitleLength = 200

// Common task validation errors
var (
	ErrEmptyTaskID       = errors.New("task ID cannot be empty")
	ErrEmptyTaskOwner    = errors.New("task must have an owner")
	ErrEmptyTaskTitle    = errors.New("title is required")
	ErrTaskTitleTooLong  = errors.New("title must be 200 characters or less")
	ErrInvalidTaskStatus = errors.New("status must be one of: pending, in_progress, completed")
)

// Task represents a unit of work owned by exactly one user.
// Non-admin callers may only read or mutate their own tasks.
type Task struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// NewTask creates a new Task owned by the given user. Title and description
// are sanitized before validation; an empty status defaults to pending.
func NewTask(userID uuid.UUID, title, description string, status TaskStatus) (*Task, error) {
	if status == "" {
		status = TaskStatusPending
	}

	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       SanitizeText(title),
		Description: SanitizeText(description),
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
// Returns an error if any field fails validation.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyTaskOwner
	}

	if err := ValidateTaskTitle(t.Title); err != nil {
		return err
	}

	if !t.Status.IsValid() {
		return ErrInvalidTaskStatus
	}

	return nil
}

// ValidateTaskTitle checks that a title is non-blank and length-bounded.
func ValidateTaskTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTaskTitle
	}
	if utf8.RuneCountInString(title) > MaxTaskTitleLength {
		return ErrTaskTitleTooLong
	}
	return nil
}
