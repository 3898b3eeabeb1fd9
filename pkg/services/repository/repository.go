package repository

import (
	"context"
	"sync"
	"time"

	"github.com/quantamisecode-hub/groona-insights/pkg/models/domain"
)

// Source supplies the flat collections every aggregation pass consumes.
// The backend client is the canonical implementation.
type Source interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	ListTasks(ctx context.Context, projectID string) ([]domain.Task, error)
	ListTimeEntries(ctx context.Context, from, to time.Time) ([]domain.TimeEntry, error)
	ListExpenses(ctx context.Context, projectID string) ([]domain.Expense, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

// Cache is a read-through wrapper over a Source. Entries expire after
// the TTL and are refetched on the next read; there is no background
// refresh and no invalidation API, a stale read simply refetches.
type Cache struct {
	source Source
	ttl    time.Duration

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value   any
	fetched time.Time
}

func NewCache(source Source, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &Cache{
		source:  source,
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *Cache) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return readThrough(c, "projects", func() ([]domain.Project, error) {
		return c.source.ListProjects(ctx)
	})
}

func (c *Cache) ListTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	return readThrough(c, "tasks:"+projectID, func() ([]domain.Task, error) {
		return c.source.ListTasks(ctx, projectID)
	})
}

func (c *Cache) ListTimeEntries(ctx context.Context, from, to time.Time) ([]domain.TimeEntry, error) {
	key := "entries:" + from.Format("2006-01-02") + ":" + to.Format("2006-01-02")
	return readThrough(c, key, func() ([]domain.TimeEntry, error) {
		return c.source.ListTimeEntries(ctx, from, to)
	})
}

func (c *Cache) ListExpenses(ctx context.Context, projectID string) ([]domain.Expense, error) {
	return readThrough(c, "expenses:"+projectID, func() ([]domain.Expense, error) {
		return c.source.ListExpenses(ctx, projectID)
	})
}

func (c *Cache) ListUsers(ctx context.Context) ([]domain.User, error) {
	return readThrough(c, "users", func() ([]domain.User, error) {
		return c.source.ListUsers(ctx)
	})
}

func readThrough[T any](c *Cache, key string, fetch func() (T, error)) (T, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	c.mu.Unlock()
	if ok && time.Since(entry.fetched) < c.ttl {
		return entry.value.(T), nil
	}

	value, err := fetch()
	if err != nil {
		var zero T
		return zero, err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{value: value, fetched: time.Now()}
	c.mu.Unlock()
	return value, nil
}
