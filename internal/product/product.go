package product

import "errors"

var (
	ErrNotFound = errors.New("product not found")
)

// Category is one of the two catalog sections.
type Category string

const (
	CategoryJewellery Category = "jewellery"
	CategoryWooden    Category = "wooden"
)

// AllowedCategories contains the supported product categories used across the app.
var AllowedCategories = []Category{CategoryJewellery, CategoryWooden}

// Valid reports whether c is one of AllowedCategories.
func (c Category) Valid() bool {
	for _, a := range AllowedCategories {
		if c == a {
			return true
		}
	}
	return false
}

// Product mirrors the backend's product document. Customers only read it.
type Product struct {
	ID          string   `json:"id"`
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    Category `json:"category"`
	Stock       int      `json:"stock"`
	Images      []string `json:"images"`
	CreatedAt   string   `json:"created_at,omitempty"`
}

// InStock reports whether at least one unit can be ordered.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// Input is the normalized create/update payload accepted by the backend.
type Input struct {
	Name        string   `json:"name"`
	Price       float64  `json:"price"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
	Stock       int      `json:"stock"`
}

// Image is an uploaded file destined for a product's gallery.
type Image struct {
	Name    string
	Content []byte
}
