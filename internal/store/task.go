package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/primetrade/taskboard-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
//
// The owner-scoped methods fold the ownership check into the lookup: a task
// that exists but belongs to another user behaves exactly like a missing
// task (ErrTaskNotFound), so existence is never disclosed to non-owners.
// The admin variants bypass the ownership filter.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetForUser retrieves a task by ID, scoped to the owning user.
	// Returns ErrTaskNotFound if the task is missing or owned by someone else.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)

	// ListForUser returns one page of the user's tasks ordered by creation
	// time descending, along with the total number of tasks the user owns.
	ListForUser(ctx context.Context, userID uuid.UUID, page PageRequest) ([]*domain.Task, int, error)

	// UpdateForUser persists changes to a task's title, description and
	// status, scoped to the owning user. The updated_at timestamp is set by
	// the store.
	// Returns ErrTaskNotFound if the task is missing or owned by someone else.
	UpdateForUser(ctx context.Context, task *domain.Task) error

	// DeleteForUser removes a task, scoped to the owning user.
	// Returns ErrTaskNotFound if the task is missing or owned by someone else.
	DeleteForUser(ctx context.Context, id, userID uuid.UUID) error

	// ListAll returns one page of every user's tasks ordered by creation time
	// descending, along with the total count. Admin use only.
	ListAll(ctx context.Context, page PageRequest) ([]*domain.Task, int, error)

	// DeleteAny removes a task regardless of owner and returns the owner's
	// ID so callers can invalidate per-user caches. Admin use only.
	// Returns ErrTaskNotFound only when the task truly does not exist.
	DeleteAny(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
}
