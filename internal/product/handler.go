package product

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// CartCounter reports how many units sit in the visitor's cart. It lets the
// catalog show the cart badge without this package depending on the cart.
type CartCounter func(c *fiber.Ctx) int

type Handler struct {
	service   *Service
	publicURL string
	cartCount CartCounter
}

func NewHandler(service *Service, publicURL string, cartCount CartCounter) *Handler {
	if cartCount == nil {
		cartCount = func(*fiber.Ctx) int { return 0 }
	}
	return &Handler{service: service, publicURL: publicURL, cartCount: cartCount}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/", h.getCatalog)
	app.Get("/product/:slug", h.getProduct)
}

func (h *Handler) getCatalog(c *fiber.Ctx) error {
	f := Filter{
		Category: c.Query("category", AllCategories),
		Search:   c.Query("q"),
	}

	products, err := h.service.Catalog(f)
	if err != nil {
		log.Errorf("catalog: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message":  "Failed to load products",
			"products": []Product{},
		})
	}

	return c.JSON(fiber.Map{
		"products":   products,
		"category":   f.Category,
		"search":     f.Search,
		"categories": AllowedCategories,
		"cart_count": h.cartCount(c),
		"notice":     c.Query("notice"),
	})
}

// getProduct renders the detail page. Any failure sends the visitor back to
// the catalog with a notice.
func (h *Handler) getProduct(c *fiber.Ctx) error {
	p, err := h.service.GetBySlug(c.Params("slug"))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Warnf("product %q: %v", c.Params("slug"), err)
		}
		return c.Redirect("/?notice="+url.QueryEscape("Product not found"), fiber.StatusSeeOther)
	}

	page := NewPage(p, h.publicURL, c.QueryInt("image", 0), c.QueryInt("quantity", 1))
	return c.JSON(page)
}
