package cart

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2/log"
	"github.com/wichananm65/artisan-storefront/internal/product"
	"github.com/wichananm65/artisan-storefront/internal/storage"
)

// StorageKey is where the cart lives in the visitor's storage namespace.
const StorageKey = "cart"

var (
	ErrInvalidQuantity = errors.New("quantity must be positive")
	ErrOutOfStock      = errors.New("product is out of stock")
)

// Line is a product snapshot plus the quantity the visitor wants. The price
// is the one seen when the line was first added.
type Line struct {
	ProductID string           `json:"id"`
	Slug      string           `json:"slug,omitempty"`
	Name      string           `json:"name"`
	Price     float64          `json:"price"`
	Category  product.Category `json:"category"`
	Images    []string         `json:"images"`
	Quantity  int              `json:"quantity"`
}

// Summary is the derived pricing shown next to the cart.
type Summary struct {
	ItemCount int     `json:"item_count"`
	Subtotal  float64 `json:"subtotal"`
	Shipping  float64 `json:"shipping"`
	Total     float64 `json:"total"`
}

// Store is one visitor's cart. It is not safe for concurrent use; each
// request opens its own Store.
type Store struct {
	repo  storage.Repository
	ns    string
	lines []Line
}

// Open restores the cart persisted for ns. A corrupt payload is treated as an
// empty cart.
func Open(ctx context.Context, repo storage.Repository, ns string) (*Store, error) {
	s := &Store{repo: repo, ns: ns, lines: []Line{}}
	raw, ok, err := repo.GetItem(ctx, ns, StorageKey)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return s, nil
	}
	if err := json.Unmarshal([]byte(raw), &s.lines); err != nil {
		log.Warnf("cart: discarding unreadable cart for %s: %v", ns, err)
		s.lines = []Line{}
	}
	return s, nil
}

// Add merges qty units of p into the cart, appending a new line if p is not
// there yet.
func (s *Store) Add(ctx context.Context, p product.Product, qty int) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	for i := range s.lines {
		if s.lines[i].ProductID == p.ID {
			s.lines[i].Quantity += qty
			return s.persist(ctx)
		}
	}
	s.lines = append(s.lines, Line{
		ProductID: p.ID,
		Slug:      p.Slug,
		Name:      p.Name,
		Price:     p.Price,
		Category:  p.Category,
		Images:    append([]string(nil), p.Images...),
		Quantity:  qty,
	})
	return s.persist(ctx)
}

func (s *Store) Remove(ctx context.Context, productID string) error {
	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	s.lines = kept
	return s.persist(ctx)
}

// SetQuantity overwrites a line's quantity; qty <= 0 removes the line.
func (s *Store) SetQuantity(ctx context.Context, productID string, qty int) error {
	if qty <= 0 {
		return s.Remove(ctx, productID)
	}
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			s.lines[i].Quantity = qty
		}
	}
	return s.persist(ctx)
}

func (s *Store) Clear(ctx context.Context) error {
	s.lines = []Line{}
	return s.repo.RemoveItem(ctx, s.ns, StorageKey)
}

func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

func (s *Store) Empty() bool {
	return len(s.lines) == 0
}

func (s *Store) ItemCount() int {
	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

func (s *Store) Subtotal() float64 {
	var sum float64
	for _, l := range s.lines {
		sum += l.Price * float64(l.Quantity)
	}
	return sum
}

// Summary adds the flat shippingFee once, and only to a non-empty cart.
func (s *Store) Summary(shippingFee float64) Summary {
	sum := Summary{ItemCount: s.ItemCount(), Subtotal: s.Subtotal()}
	if !s.Empty() {
		sum.Shipping = shippingFee
	}
	sum.Total = sum.Subtotal + sum.Shipping
	return sum
}

func (s *Store) persist(ctx context.Context) error {
	b, err := json.Marshal(s.lines)
	if err != nil {
		return err
	}
	return s.repo.SetItem(ctx, s.ns, StorageKey, string(b))
}
