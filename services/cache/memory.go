package cachesvc

import (
	"context"
	"sync"

	"github.com/trezcool/darasa/core/export"
)

// memoryCache is a process-local SnapshotCache for dev and tests.
type memoryCache struct {
	mu        sync.RWMutex
	snapshots map[string][]string
}

var _ export.SnapshotCache = (*memoryCache)(nil)

func NewMemoryCache() *memoryCache {
	return &memoryCache{snapshots: make(map[string][]string)}
}

func (c *memoryCache) GetSnapshot(_ context.Context, query string) ([]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	emails, ok := c.snapshots[query]
	return emails, ok
}

func (c *memoryCache) SetSnapshot(_ context.Context, query string, emails []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshots[query] = emails
}
