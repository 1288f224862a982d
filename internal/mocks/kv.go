package mocks

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/primetrade/taskboard-api/internal/platform/redis"
)

// MockKV is an in-memory implementation of the redis.KV interface with TTL
// support. Expiry is evaluated lazily on read against an injectable clock.
type MockKV struct {
	// Forced errors, applied to every call of the corresponding method
	GetErr    error
	SetErr    error
	IncrErr   error
	ExpireErr error

	// TimeFunc is the clock used for expiry checks; defaults to time.Now.
	TimeFunc func() time.Time

	mu      sync.Mutex
	values  map[string]string
	expires map[string]time.Time
}

// Ensure MockKV implements redis.KV
var _ redis.KV = (*MockKV)(nil)

// NewMockKV creates an empty in-memory KV.
func NewMockKV() *MockKV {
	return &MockKV{
		values:  make(map[string]string),
		expires: make(map[string]time.Time),
	}
}

func (m *MockKV) now() time.Time {
	if m.TimeFunc != nil {
		return m.TimeFunc()
	}
	return time.Now()
}

// expired reports and reaps an expired key. Caller must hold the lock.
func (m *MockKV) expired(key string) bool {
	deadline, ok := m.expires[key]
	if !ok || m.now().Before(deadline) {
		return false
	}
	delete(m.values, key)
	delete(m.expires, key)
	return true
}

// Get implements redis.KV.
func (m *MockKV) Get(ctx context.Context, key string) (string, error) {
	if m.GetErr != nil {
		return "", m.GetErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.expired(key) {
		return "", redis.ErrKeyNotFound
	}
	val, ok := m.values[key]
	if !ok {
		return "", redis.ErrKeyNotFound
	}
	return val, nil
}

// Set implements redis.KV.
func (m *MockKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if m.SetErr != nil {
		return m.SetErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.values[key] = value
	if ttl > 0 {
		m.expires[key] = m.now().Add(ttl)
	} else {
		delete(m.expires, key)
	}
	return nil
}

// Incr implements redis.KV.
func (m *MockKV) Incr(ctx context.Context, key string) (int64, error) {
	if m.IncrErr != nil {
		return 0, m.IncrErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.expired(key)

	current, _ := strconv.ParseInt(m.values[key], 10, 64)
	current++
	m.values[key] = strconv.FormatInt(current, 10)
	return current, nil
}

// Expire implements redis.KV.
func (m *MockKV) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if m.ExpireErr != nil {
		return m.ExpireErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.values[key]; ok {
		m.expires[key] = m.now().Add(ttl)
	}
	return nil
}
