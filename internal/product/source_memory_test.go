package product

import "sync"

// InMemorySource serves a fixed catalog.
type InMemorySource struct {
	mu      sync.RWMutex
	storage []Product
}

func NewInMemorySource(seed []Product) *InMemorySource {
	s := &InMemorySource{storage: make([]Product, 0, len(seed))}
	s.storage = append(s.storage, seed...)
	return s
}

func (s *InMemorySource) ListProducts() ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.storage))
	copy(out, s.storage)
	return out, nil
}

func (s *InMemorySource) ProductBySlug(slug string) (Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.storage {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Product{}, ErrNotFound
}
