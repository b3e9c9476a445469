package cache

import (
	"context"
	"sync"

	"github.com/opendata-browser/internal/domain"
	"github.com/opendata-browser/internal/domain/repository"
)

// memoryNeighbourhoodCache живёт столько же, сколько процесс; записи не вытесняются
type memoryNeighbourhoodCache struct {
	mu      sync.RWMutex
	entries map[string]domain.NeighbourhoodEntry
}

func NewMemoryNeighbourhoodCache() repository.NeighbourhoodCache {
	return &memoryNeighbourhoodCache{
		entries: make(map[string]domain.NeighbourhoodEntry),
	}
}

func (c *memoryNeighbourhoodCache) Get(_ context.Context, key string) (domain.NeighbourhoodEntry, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok, nil
}

func (c *memoryNeighbourhoodCache) Set(_ context.Context, key string, entry domain.NeighbourhoodEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
	return nil
}

func (c *memoryNeighbourhoodCache) Reset(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]domain.NeighbourhoodEntry)
	return nil
}

func (c *memoryNeighbourhoodCache) Len(_ context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries), nil
}
