package cache

import (
	"context"
	"sync"
	"time"

	"github.com/contractportal/backend/internal/domain/contract"
	"go.uber.org/zap"
)

const defaultStatusTTL = 5 * time.Minute

// StatusCache caches the contract status list with a TTL. The status list
// changes rarely, so a short-lived in-process cache keeps the dropdown
// endpoint off the database on the hot path.
type StatusCache struct {
	source contract.Repository
	ttl    time.Duration
	logger *zap.Logger

	mu        sync.RWMutex
	statuses  []contract.Status
	expiresAt time.Time
}

// StatusCacheOption configures a StatusCache
type StatusCacheOption func(*StatusCache)

// WithTTL sets the cache lifetime
func WithTTL(ttl time.Duration) StatusCacheOption {
	return func(c *StatusCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithLogger sets the cache logger
func WithLogger(logger *zap.Logger) StatusCacheOption {
	return func(c *StatusCache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewStatusCache creates a status cache backed by the given repository
func NewStatusCache(source contract.Repository, opts ...StatusCacheOption) *StatusCache {
	c := &StatusCache{
		source: source,
		ttl:    defaultStatusTTL,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached status list, refreshing from the repository when
// the entry has expired. A refresh failure is returned to the caller, never
// masked with stale or empty data.
func (c *StatusCache) Get(ctx context.Context) ([]contract.Status, error) {
	c.mu.RLock()
	if time.Now().Before(c.expiresAt) {
		statuses := c.statuses
		c.mu.RUnlock()
		return statuses, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have refreshed while we waited for the lock
	if time.Now().Before(c.expiresAt) {
		return c.statuses, nil
	}

	statuses, err := c.source.DistinctStatuses(ctx)
	if err != nil {
		return nil, err
	}

	c.statuses = statuses
	c.expiresAt = time.Now().Add(c.ttl)

	c.logger.Debug("contract status cache refreshed",
		zap.Int("count", len(statuses)),
		zap.Duration("ttl", c.ttl))

	return statuses, nil
}

// Invalidate clears the cached entry
func (c *StatusCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statuses = nil
	c.expiresAt = time.Time{}
}
