package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/primetrade/taskboard-api/internal/platform/logger"
	"github.com/primetrade/taskboard-api/internal/store"
)

// TaskListCache is a read-through cache for paginated task list results,
// keyed per (user, generation, page, limit) with a fixed TTL.
//
// Invalidation bumps a per-user generation counter instead of deleting page
// keys, so a mutation instantly orphans every cached page for that user
// without scanning the keyspace. Orphaned pages age out via their TTL.
// All failures degrade to a cache miss; entries are advisory and never
// required for correctness.
type TaskListCache struct {
	kv     KV
	ttl    time.Duration
	logger *slog.Logger
}

// NewTaskListCache creates a TaskListCache over the given KV with the given
// entry TTL. If logger is nil, a default logger will be used.
func NewTaskListCache(kv KV, ttl time.Duration, logger *slog.Logger) *TaskListCache {
	if kv == nil {
		panic("kv cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &TaskListCache{
		kv:     kv,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "task_list_cache")),
	}
}

// GetPage returns the cached payload for the user's page, or false on a
// miss. Backend errors are logged and reported as a miss.
func (c *TaskListCache) GetPage(ctx context.Context, userID uuid.UUID, page store.PageRequest) ([]byte, bool) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	key, err := c.pageKey(ctx, userID, page)
	if err != nil {
		log.Debug("cache key lookup failed, treating as miss", "error", err)
		return nil, false
	}

	val, err := c.kv.Get(ctx, key)
	if err == ErrKeyNotFound {
		return nil, false
	}
	if err != nil {
		log.Warn("cache read failed, treating as miss", "error", err)
		return nil, false
	}

	return []byte(val), true
}

// SetPage stores the payload for the user's page with the configured TTL.
// Backend errors are logged and ignored.
func (c *TaskListCache) SetPage(ctx context.Context, userID uuid.UUID, page store.PageRequest, payload []byte) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	key, err := c.pageKey(ctx, userID, page)
	if err != nil {
		log.Debug("cache key lookup failed, skipping store", "error", err)
		return
	}

	if err := c.kv.Set(ctx, key, string(payload), c.ttl); err != nil {
		log.Warn("cache write failed", "error", err)
	}
}

// generationTTL bounds how long an idle user's generation counter lives.
// It only needs to outlast the page entries it guards, so a counter that
// expires simply restarts at zero with no pages referencing it.
const generationTTL = 24 * time.Hour

// Invalidate discards every cached page for the user by bumping the user's
// generation counter. Backend errors are logged and ignored.
func (c *TaskListCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	key := c.generationKey(userID)
	if _, err := c.kv.Incr(ctx, key); err != nil {
		log.Warn("cache invalidation failed", "error", err, "user_id", userID.String())
		return
	}
	if err := c.kv.Expire(ctx, key, generationTTL); err != nil {
		log.Warn("failed to set generation expiry", "error", err, "user_id", userID.String())
	}
}

func (c *TaskListCache) generationKey(userID uuid.UUID) string {
	return "tasks:gen:" + userID.String()
}

func (c *TaskListCache) pageKey(ctx context.Context, userID uuid.UUID, page store.PageRequest) (string, error) {
	gen, err := c.kv.Get(ctx, c.generationKey(userID))
	if err == ErrKeyNotFound {
		gen = "0"
	} else if err != nil {
		return "", err
	}

	return fmt.Sprintf("tasks:%s:g%s:p%d:l%d", userID, gen, page.Page, page.Limit), nil
}
