package service_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/primetrade/taskboard-api/internal/domain"
	"github.com/primetrade/taskboard-api/internal/mocks"
	"github.com/primetrade/taskboard-api/internal/service"
	"github.com/primetrade/taskboard-api/internal/store"
)

// spyCache records list cache traffic for assertions. Entries are keyed by
// user, page, and limit the way the real cache keys them.
type spyCache struct {
	mu          sync.Mutex
	entries     map[string][]byte
	gets        int
	hits        int
	sets        int
	invalidates int
}

func newSpyCache() *spyCache {
	return &spyCache{entries: make(map[string][]byte)}
}

func (c *spyCache) key(userID uuid.UUID, page store.PageRequest) string {
	return fmt.Sprintf("%s:%d:%d", userID, page.Page, page.Limit)
}

func (c *spyCache) GetPage(_ context.Context, userID uuid.UUID, page store.PageRequest) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	payload, ok := c.entries[c.key(userID, page)]
	if ok {
		c.hits++
	}
	return payload, ok
}

func (c *spyCache) SetPage(_ context.Context, userID uuid.UUID, page store.PageRequest, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sets++
	c.entries[c.key(userID, page)] = payload
}

func (c *spyCache) Invalidate(_ context.Context, userID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidates++
	for key := range c.entries {
		if key[:len(userID.String())] == userID.String() {
			delete(c.entries, key)
		}
	}
}

func mustCreateTask(t *testing.T, svc *service.TaskService, userID uuid.UUID, title string) *domain.Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), userID, title, "", domain.TaskStatusPending)
	require.NoError(t, err)
	return task
}

func TestTaskService_CreateTask(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("creates a task with sanitized fields and default status", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		svc := service.NewTaskService(taskStore, nil, nil)

		task, err := svc.CreateTask(
			context.Background(),
			userID,
			"  Ship the <b>release</b>  ",
			"<script>alert(1)</script>Cut the tag",
			"",
		)
		require.NoError(t, err)
		assert.Equal(t, "Ship the release", task.Title)
		assert.Equal(t, "Cut the tag", task.Description)
		assert.Equal(t, domain.TaskStatusPending, task.Status)
		assert.Equal(t, userID, task.UserID)
		assert.Len(t, taskStore.Tasks, 1)
	})

	t.Run("rejects an empty title", func(t *testing.T) {
		t.Parallel()

		svc := service.NewTaskService(mocks.NewMockTaskStore(), nil, nil)

		_, err := svc.CreateTask(context.Background(), userID, "   ", "", "")
		assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)
	})

	t.Run("rejects an invalid status", func(t *testing.T) {
		t.Parallel()

		svc := service.NewTaskService(mocks.NewMockTaskStore(), nil, nil)

		_, err := svc.CreateTask(context.Background(), userID, "Valid", "", "archived")
		assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)
	})

	t.Run("invalidates the owner's cache", func(t *testing.T) {
		t.Parallel()

		cache := newSpyCache()
		svc := service.NewTaskService(mocks.NewMockTaskStore(), cache, nil)

		mustCreateTask(t, svc, userID, "First")
		assert.Equal(t, 1, cache.invalidates)
	})

	t.Run("propagates store failures", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		taskStore.CreateError = errors.New("connection reset")
		svc := service.NewTaskService(taskStore, nil, nil)

		_, err := svc.CreateTask(context.Background(), userID, "Doomed", "", "")
		assert.ErrorContains(t, err, "failed to create task")
	})
}

func TestTaskService_GetTask(t *testing.T) {
	t.Parallel()

	owner := uuid.New()
	stranger := uuid.New()

	taskStore := mocks.NewMockTaskStore()
	svc := service.NewTaskService(taskStore, nil, nil)
	created := mustCreateTask(t, svc, owner, "Mine")

	t.Run("owner can read their task", func(t *testing.T) {
		t.Parallel()

		task, err := svc.GetTask(context.Background(), created.ID, owner)
		require.NoError(t, err)
		assert.Equal(t, created.ID, task.ID)
	})

	t.Run("another user's lookup reads as not found", func(t *testing.T) {
		t.Parallel()

		_, err := svc.GetTask(context.Background(), created.ID, stranger)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestTaskService_ListTasks(t *testing.T) {
	t.Parallel()

	t.Run("returns pagination metadata", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		taskStore := mocks.NewMockTaskStore()
		svc := service.NewTaskService(taskStore, nil, nil)
		for i := 0; i < 5; i++ {
			mustCreateTask(t, svc, userID, fmt.Sprintf("Task %d", i))
		}

		page, err := svc.ListTasks(context.Background(), userID, store.PageRequest{Page: 1, Limit: 2})
		require.NoError(t, err)
		assert.Len(t, page.Tasks, 2)
		assert.Equal(t, 5, page.Total)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 2, page.Limit)
		assert.Equal(t, 3, page.TotalPages)
	})

	t.Run("normalizes out-of-range paging parameters", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		svc := service.NewTaskService(mocks.NewMockTaskStore(), nil, nil)

		page, err := svc.ListTasks(context.Background(), userID, store.PageRequest{Page: -3, Limit: 9999})
		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, store.DefaultLimit, page.Limit)
	})

	t.Run("serves the second read from cache", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		cache := newSpyCache()
		taskStore := mocks.NewMockTaskStore()
		svc := service.NewTaskService(taskStore, cache, nil)
		mustCreateTask(t, svc, userID, "Cached")

		storeReads := 0
		taskStore.ListForUserFn = func(ctx context.Context, id uuid.UUID, page store.PageRequest) ([]*domain.Task, int, error) {
			storeReads++
			return nil, 1, nil
		}

		first, err := svc.ListTasks(context.Background(), userID, store.PageRequest{})
		require.NoError(t, err)
		second, err := svc.ListTasks(context.Background(), userID, store.PageRequest{})
		require.NoError(t, err)

		assert.Equal(t, 1, storeReads)
		assert.Equal(t, first.Total, second.Total)
		assert.Equal(t, 1, cache.sets)
		assert.Equal(t, 1, cache.hits)
	})

	t.Run("mutation invalidates cached pages", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		cache := newSpyCache()
		taskStore := mocks.NewMockTaskStore()
		svc := service.NewTaskService(taskStore, cache, nil)
		created := mustCreateTask(t, svc, userID, "Original")

		_, err := svc.ListTasks(context.Background(), userID, store.PageRequest{})
		require.NoError(t, err)

		newTitle := "Renamed"
		_, err = svc.UpdateTask(context.Background(), created.ID, userID, service.TaskUpdate{Title: &newTitle})
		require.NoError(t, err)

		page, err := svc.ListTasks(context.Background(), userID, store.PageRequest{})
		require.NoError(t, err)
		require.Len(t, page.Tasks, 1)
		assert.Equal(t, "Renamed", page.Tasks[0].Title)
	})

	t.Run("falls back to the store on a corrupt cache entry", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		cache := newSpyCache()
		taskStore := mocks.NewMockTaskStore()
		svc := service.NewTaskService(taskStore, cache, nil)
		mustCreateTask(t, svc, userID, "Survivor")

		normalized := store.PageRequest{}.Normalize()
		cache.SetPage(context.Background(), userID, normalized, []byte("{not json"))

		page, err := svc.ListTasks(context.Background(), userID, store.PageRequest{})
		require.NoError(t, err)
		assert.Len(t, page.Tasks, 1)
	})
}

func TestTaskService_UpdateTask(t *testing.T) {
	t.Parallel()

	owner := uuid.New()

	newService := func(t *testing.T) (*service.TaskService, *domain.Task) {
		t.Helper()
		svc := service.NewTaskService(mocks.NewMockTaskStore(), nil, nil)
		task, err := svc.CreateTask(context.Background(), owner, "Before", "old text", domain.TaskStatusPending)
		require.NoError(t, err)
		return svc, task
	}

	t.Run("applies only the provided fields", func(t *testing.T) {
		t.Parallel()

		svc, task := newService(t)

		status := domain.TaskStatusCompleted
		updated, err := svc.UpdateTask(context.Background(), task.ID, owner, service.TaskUpdate{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, "Before", updated.Title)
		assert.Equal(t, "old text", updated.Description)
		assert.Equal(t, domain.TaskStatusCompleted, updated.Status)
	})

	t.Run("sanitizes an updated title", func(t *testing.T) {
		t.Parallel()

		svc, task := newService(t)

		title := "<i>After</i>"
		updated, err := svc.UpdateTask(context.Background(), task.ID, owner, service.TaskUpdate{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "After", updated.Title)
	})

	t.Run("rejects a title that sanitizes to empty", func(t *testing.T) {
		t.Parallel()

		svc, task := newService(t)

		title := "<br/>"
		_, err := svc.UpdateTask(context.Background(), task.ID, owner, service.TaskUpdate{Title: &title})
		assert.ErrorIs(t, err, domain.ErrEmptyTaskTitle)
	})

	t.Run("rejects an invalid status", func(t *testing.T) {
		t.Parallel()

		svc, task := newService(t)

		status := domain.TaskStatus("paused")
		_, err := svc.UpdateTask(context.Background(), task.ID, owner, service.TaskUpdate{Status: &status})
		assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)
	})

	t.Run("another user's update reads as not found", func(t *testing.T) {
		t.Parallel()

		svc, task := newService(t)

		title := "Hijack"
		_, err := svc.UpdateTask(context.Background(), task.ID, uuid.New(), service.TaskUpdate{Title: &title})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestTaskService_DeleteTask(t *testing.T) {
	t.Parallel()

	owner := uuid.New()

	t.Run("owner can delete their task", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		cache := newSpyCache()
		svc := service.NewTaskService(taskStore, cache, nil)
		task := mustCreateTask(t, svc, owner, "Doomed")

		require.NoError(t, svc.DeleteTask(context.Background(), task.ID, owner))
		assert.Empty(t, taskStore.Tasks)
		assert.Equal(t, 2, cache.invalidates)
	})

	t.Run("another user's delete reads as not found", func(t *testing.T) {
		t.Parallel()

		taskStore := mocks.NewMockTaskStore()
		svc := service.NewTaskService(taskStore, nil, nil)
		task := mustCreateTask(t, svc, owner, "Safe")

		err := svc.DeleteTask(context.Background(), task.ID, uuid.New())
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.Len(t, taskStore.Tasks, 1)
	})
}

func TestTaskService_AdminOperations(t *testing.T) {
	t.Parallel()

	t.Run("ListAllTasks spans every owner", func(t *testing.T) {
		t.Parallel()

		svc := service.NewTaskService(mocks.NewMockTaskStore(), nil, nil)
		mustCreateTask(t, svc, uuid.New(), "Alice's")
		mustCreateTask(t, svc, uuid.New(), "Bob's")

		page, err := svc.ListAllTasks(context.Background(), store.PageRequest{})
		require.NoError(t, err)
		assert.Equal(t, 2, page.Total)
		assert.Len(t, page.Tasks, 2)
	})

	t.Run("DeleteAnyTask removes regardless of owner and invalidates them", func(t *testing.T) {
		t.Parallel()

		owner := uuid.New()
		taskStore := mocks.NewMockTaskStore()
		cache := newSpyCache()
		svc := service.NewTaskService(taskStore, cache, nil)
		task := mustCreateTask(t, svc, owner, "Flagged")

		_, err := svc.ListTasks(context.Background(), owner, store.PageRequest{})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteAnyTask(context.Background(), task.ID))
		assert.Empty(t, taskStore.Tasks)

		page, err := svc.ListTasks(context.Background(), owner, store.PageRequest{})
		require.NoError(t, err)
		assert.Equal(t, 0, page.Total)
	})

	t.Run("DeleteAnyTask on a missing id reads as not found", func(t *testing.T) {
		t.Parallel()

		svc := service.NewTaskService(mocks.NewMockTaskStore(), nil, nil)
		err := svc.DeleteAnyTask(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}
