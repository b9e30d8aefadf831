package cart

import (
	"context"

	"github.com/wichananm65/artisan-storefront/internal/product"
	"github.com/wichananm65/artisan-storefront/internal/storage"
)

// Service opens per-visitor carts and resolves product snapshots for them.
type Service struct {
	repo        storage.Repository
	products    product.Source
	shippingFee float64
}

func NewService(repo storage.Repository, products product.Source, shippingFee float64) *Service {
	return &Service{repo: repo, products: products, shippingFee: shippingFee}
}

func (s *Service) Open(ctx context.Context, clientID string) (*Store, error) {
	return Open(ctx, s.repo, clientID)
}

func (s *Service) ShippingFee() float64 {
	return s.shippingFee
}

// AddBySlug looks the product up and merges qty units into the cart.
func (s *Service) AddBySlug(ctx context.Context, clientID, slug string, qty int) (*Store, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	p, err := s.products.ProductBySlug(slug)
	if err != nil {
		return nil, err
	}
	return s.Add(ctx, clientID, p, qty)
}

// Add merges qty units of an already fetched product into the cart.
func (s *Service) Add(ctx context.Context, clientID string, p product.Product, qty int) (*Store, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}
	if !p.InStock() {
		return nil, ErrOutOfStock
	}
	store, err := s.Open(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if err := store.Add(ctx, p, qty); err != nil {
		return nil, err
	}
	return store, nil
}

// Count is used for the navigation badge; failures count as an empty cart.
func (s *Service) Count(ctx context.Context, clientID string) int {
	store, err := s.Open(ctx, clientID)
	if err != nil {
		return 0
	}
	return store.ItemCount()
}
