package product

import "net/url"

// Page is the product detail view state: which gallery image is shown and how
// many units the visitor wants.
type Page struct {
	Product       Product `json:"product"`
	SelectedImage int     `json:"selected_image"`
	Quantity      int     `json:"quantity"`
	InStock       bool    `json:"in_stock"`
	Share         Share   `json:"share"`
}

// Share is handed to the platform share sheet; clients without one copy URL.
type Share struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// NewPage builds the view state with image and quantity clamped to what the
// product allows.
func NewPage(p Product, publicURL string, image, quantity int) Page {
	return Page{
		Product:       p,
		SelectedImage: ClampImage(image, len(p.Images)),
		Quantity:      ClampQuantity(quantity, p.Stock),
		InStock:       p.InStock(),
		Share: Share{
			Title: p.Name,
			Text:  p.Description,
			URL:   ShareURL(publicURL, p.Slug),
		},
	}
}

// ClampImage bounds idx to [0, count-1]; an empty gallery always yields 0.
func ClampImage(idx, count int) int {
	if idx < 0 || count == 0 {
		return 0
	}
	if idx >= count {
		return count - 1
	}
	return idx
}

// ClampQuantity bounds qty to [1, stock]. Out-of-stock products keep 1 so the
// selector still renders; adding them to the cart is refused elsewhere.
func ClampQuantity(qty, stock int) int {
	if qty < 1 {
		qty = 1
	}
	if stock > 0 && qty > stock {
		qty = stock
	}
	return qty
}

func ShareURL(publicURL, slug string) string {
	return publicURL + "/product/" + url.PathEscape(slug)
}
