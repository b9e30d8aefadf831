package storage

import (
	"context"
	"sync"
)

// Repository is a per-visitor key/value store. ns isolates visitors from one
// another; within a namespace the last write wins.
type Repository interface {
	GetItem(ctx context.Context, ns, key string) (string, bool, error)
	SetItem(ctx context.Context, ns, key, value string) error
	RemoveItem(ctx context.Context, ns string, keys ...string) error
}

// InMemoryRepository is used for tests and single-process setups.
type InMemoryRepository struct {
	mu    sync.RWMutex
	items map[string]map[string]string
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{items: make(map[string]map[string]string)}
}

func (r *InMemoryRepository) GetItem(_ context.Context, ns, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[ns][key]
	return v, ok, nil
}

func (r *InMemoryRepository) SetItem(_ context.Context, ns, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.items[ns] == nil {
		r.items[ns] = make(map[string]string)
	}
	r.items[ns][key] = value
	return nil
}

func (r *InMemoryRepository) RemoveItem(_ context.Context, ns string, keys ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	bucket := r.items[ns]
	for _, k := range keys {
		delete(bucket, k)
	}
	if len(bucket) == 0 {
		delete(r.items, ns)
	}
	return nil
}
