package backend

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/artisan-storefront/internal/admin"
	"github.com/wichananm65/artisan-storefront/internal/product"
)

var (
	_ product.Source = (*Client)(nil)
	_ admin.Backend  = (*Client)(nil)
)

func (c *Client) ListProducts() ([]product.Product, error) {
	var out []product.Product
	if err := c.do(fiber.Get(c.url("/products")), call{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ProductBySlug(slug string) (product.Product, error) {
	var out product.Product
	err := c.do(fiber.Get(c.url("/products/slug/"+url.PathEscape(slug))), call{notFound: product.ErrNotFound}, &out)
	return out, err
}

func (c *Client) CreateProduct(token string, in product.Input) (product.Product, error) {
	var out product.Product
	err := c.do(fiber.Post(c.url("/products")).JSON(in), call{token: token}, &out)
	return out, err
}

func (c *Client) UpdateProduct(token, id string, in product.Input) (product.Product, error) {
	var out product.Product
	err := c.do(fiber.Put(c.url("/products/"+url.PathEscape(id))).JSON(in), call{token: token, notFound: product.ErrNotFound}, &out)
	return out, err
}

func (c *Client) DeleteProduct(token, id string) error {
	return c.do(fiber.Delete(c.url("/products/"+url.PathEscape(id))), call{token: token, notFound: product.ErrNotFound}, nil)
}

// UploadImages sends every file under the "files" field and returns the URLs
// the backend stored.
func (c *Client) UploadImages(token, id string, files []product.Image) ([]string, error) {
	a := fiber.Post(c.url("/products/" + url.PathEscape(id) + "/upload"))
	for _, f := range files {
		a.FileData(&fiber.FormFile{Fieldname: "files", Name: f.Name, Content: f.Content})
	}
	a.MultipartForm(nil)

	var out struct {
		URLs []string `json:"urls"`
	}
	if err := c.do(a, call{token: token, notFound: product.ErrNotFound}, &out); err != nil {
		return nil, err
	}
	return out.URLs, nil
}
