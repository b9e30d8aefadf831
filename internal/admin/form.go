package admin

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/wichananm65/artisan-storefront/internal/product"
)

var (
	ErrNameRequired    = errors.New("product name is required")
	ErrInvalidCategory = errors.New("category must be jewellery or wooden")
	ErrInvalidPrice    = errors.New("price must be a non-negative number")
	ErrInvalidStock    = errors.New("stock must be a non-negative whole number")
)

// Numeric accepts a JSON number or a JSON string holding one, so admin forms
// may post either "19.99" or 19.99.
type Numeric string

func (n *Numeric) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = Numeric(s)
		return nil
	}
	*n = Numeric(b)
	return nil
}

// ProductForm is the raw admin input for create and update.
type ProductForm struct {
	Name        string  `json:"name" form:"name"`
	Price       Numeric `json:"price" form:"price"`
	Description string  `json:"description" form:"description"`
	Category    string  `json:"category" form:"category"`
	Stock       Numeric `json:"stock" form:"stock"`
}

// Normalize converts the form into the typed backend payload: price becomes
// a float and stock an integer.
func (f ProductForm) Normalize() (product.Input, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return product.Input{}, ErrNameRequired
	}
	category := product.Category(strings.ToLower(strings.TrimSpace(f.Category)))
	if !category.Valid() {
		return product.Input{}, ErrInvalidCategory
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(string(f.Price)), 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return product.Input{}, ErrInvalidPrice
	}
	stock, err := strconv.Atoi(strings.TrimSpace(string(f.Stock)))
	if err != nil || stock < 0 {
		return product.Input{}, ErrInvalidStock
	}
	return product.Input{
		Name:        name,
		Price:       price,
		Description: strings.TrimSpace(f.Description),
		Category:    category,
		Stock:       stock,
	}, nil
}
