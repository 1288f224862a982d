package mocks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/primetrade/taskboard-api/internal/domain"
	"github.com/primetrade/taskboard-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing with an in-memory map.
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn        func(ctx context.Context, task *domain.Task) error
	GetForUserFn    func(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error)
	ListForUserFn   func(ctx context.Context, userID uuid.UUID, page store.PageRequest) ([]*domain.Task, int, error)
	UpdateForUserFn func(ctx context.Context, task *domain.Task) error
	DeleteForUserFn func(ctx context.Context, id, userID uuid.UUID) error
	ListAllFn       func(ctx context.Context, page store.PageRequest) ([]*domain.Task, int, error)
	DeleteAnyFn     func(ctx context.Context, id uuid.UUID) (uuid.UUID, error)

	mu    sync.Mutex
	Tasks map[uuid.UUID]*domain.Task

	// Forced errors for the default implementation
	CreateError error
	ListError   error
}

// Ensure MockTaskStore implements store.TaskStore
var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates a new mock store with initialized defaults.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks: make(map[uuid.UUID]*domain.Task),
	}
}

// Create implements the TaskStore interface.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	if m.CreateError != nil {
		return m.CreateError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *task
	m.Tasks[task.ID] = &copied
	return nil
}

// GetForUser implements the TaskStore interface.
func (m *MockTaskStore) GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Task, error) {
	if m.GetForUserFn != nil {
		return m.GetForUserFn(ctx, id, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.Tasks[id]
	if !ok || task.UserID != userID {
		return nil, store.ErrTaskNotFound
	}
	copied := *task
	return &copied, nil
}

// ListForUser implements the TaskStore interface.
func (m *MockTaskStore) ListForUser(
	ctx context.Context,
	userID uuid.UUID,
	page store.PageRequest,
) ([]*domain.Task, int, error) {
	if m.ListForUserFn != nil {
		return m.ListForUserFn(ctx, userID, page)
	}

	if m.ListError != nil {
		return nil, 0, m.ListError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var owned []*domain.Task
	for _, task := range m.Tasks {
		if task.UserID == userID {
			copied := *task
			owned = append(owned, &copied)
		}
	}

	return paginate(owned, page)
}

// UpdateForUser implements the TaskStore interface.
func (m *MockTaskStore) UpdateForUser(ctx context.Context, task *domain.Task) error {
	if m.UpdateForUserFn != nil {
		return m.UpdateForUserFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.Tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return store.ErrTaskNotFound
	}

	existing.Title = task.Title
	existing.Description = task.Description
	existing.Status = task.Status
	existing.UpdatedAt = time.Now().UTC()
	task.UpdatedAt = existing.UpdatedAt
	return nil
}

// DeleteForUser implements the TaskStore interface.
func (m *MockTaskStore) DeleteForUser(ctx context.Context, id, userID uuid.UUID) error {
	if m.DeleteForUserFn != nil {
		return m.DeleteForUserFn(ctx, id, userID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.Tasks[id]
	if !ok || task.UserID != userID {
		return store.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return nil
}

// ListAll implements the TaskStore interface.
func (m *MockTaskStore) ListAll(
	ctx context.Context,
	page store.PageRequest,
) ([]*domain.Task, int, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx, page)
	}

	if m.ListError != nil {
		return nil, 0, m.ListError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var all []*domain.Task
	for _, task := range m.Tasks {
		copied := *task
		all = append(all, &copied)
	}

	return paginate(all, page)
}

// DeleteAny implements the TaskStore interface.
func (m *MockTaskStore) DeleteAny(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	if m.DeleteAnyFn != nil {
		return m.DeleteAnyFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.Tasks[id]
	if !ok {
		return uuid.Nil, store.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return task.UserID, nil
}

// paginate sorts tasks newest-first and slices out the requested page,
// mirroring the ordering contract of the real store.
func paginate(tasks []*domain.Task, page store.PageRequest) ([]*domain.Task, int, error) {
	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})

	total := len(tasks)
	page = page.Normalize()

	start := page.Offset()
	if start >= total {
		return []*domain.Task{}, total, nil
	}
	end := start + page.Limit
	if end > total {
		end = total
	}
	return tasks[start:end], total, nil
}
