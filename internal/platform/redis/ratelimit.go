package redis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/primetrade/taskboard-api/internal/config"
	"github.com/primetrade/taskboard-api/internal/platform/logger"
)

// Window is one fixed-window limit: at most Limit requests per Duration.
type Window struct {
	Name     string
	Duration time.Duration
	Limit    int
}

// FixedWindowLimiter counts requests per client in fixed time windows keyed
// in the KV store. A request is allowed only if it fits in every configured
// window. The limiter is independent of task or user state and fails open:
// a KV outage never blocks traffic.
type FixedWindowLimiter struct {
	kv       KV
	windows  []Window
	timeFunc func() time.Time // Injectable for testing
	logger   *slog.Logger
}

// NewFixedWindowLimiter creates a limiter with the configured hourly and
// daily limits. Windows with a zero limit are skipped entirely.
func NewFixedWindowLimiter(kv KV, cfg config.RateLimitConfig, logger *slog.Logger) *FixedWindowLimiter {
	if kv == nil {
		panic("kv cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	var windows []Window
	if cfg.PerHour > 0 {
		windows = append(windows, Window{Name: "hour", Duration: time.Hour, Limit: cfg.PerHour})
	}
	if cfg.PerDay > 0 {
		windows = append(windows, Window{Name: "day", Duration: 24 * time.Hour, Limit: cfg.PerDay})
	}

	return &FixedWindowLimiter{
		kv:       kv,
		windows:  windows,
		timeFunc: time.Now,
		logger:   logger.With(slog.String("component", "rate_limiter")),
	}
}

// Allow records one request for the client and reports whether it fits
// within every configured window.
func (l *FixedWindowLimiter) Allow(ctx context.Context, client string) bool {
	log := logger.FromContextOrDefault(ctx, l.logger)
	now := l.timeFunc()

	for _, w := range l.windows {
		windowStart := now.Truncate(w.Duration).Unix()
		key := fmt.Sprintf("ratelimit:%s:%s:%d", w.Name, client, windowStart)

		count, err := l.kv.Incr(ctx, key)
		if err != nil {
			log.Warn("rate limit counter unavailable, allowing request",
				"error", err,
				"window", w.Name)
			continue
		}

		// First hit in the window sets the expiry so stale counters are
		// reclaimed once the window passes.
		if count == 1 {
			if err := l.kv.Expire(ctx, key, w.Duration); err != nil {
				log.Warn("failed to set rate limit expiry", "error", err, "window", w.Name)
			}
		}

		if count > int64(w.Limit) {
			log.Debug("rate limit exceeded",
				"client", client,
				"window", w.Name,
				"count", count,
				"limit", w.Limit)
			return false
		}
	}

	return true
}
