package product

import "strings"

// Source is the read side of the product backend.
type Source interface {
	ListProducts() ([]Product, error)
	ProductBySlug(slug string) (Product, error)
}

type Service struct {
	source Source
}

func NewService(source Source) *Service {
	return &Service{source: source}
}

// Catalog fetches the full list once and filters it locally.
func (s *Service) Catalog(f Filter) ([]Product, error) {
	all, err := s.source.ListProducts()
	if err != nil {
		return nil, err
	}
	return f.Apply(all), nil
}

func (s *Service) GetBySlug(slug string) (Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return Product{}, ErrNotFound
	}
	return s.source.ProductBySlug(slug)
}
