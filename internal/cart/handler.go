package cart

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/wichananm65/artisan-storefront/internal/product"
	"github.com/wichananm65/artisan-storefront/internal/storage"
)

// Handler exposes the visitor's cart. All routes rely on
// storage.ClientMiddleware having run.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/cart", h.getCart)
	app.Post("/cart/items", h.addItem)
	app.Put("/cart/items/:id", h.updateItem)
	app.Delete("/cart/items/:id", h.removeItem)
	app.Delete("/cart", h.clearCart)
	app.Post("/product/:slug/cart", h.addFromProductPage)
}

type addRequest struct {
	Slug     string `json:"slug"`
	Quantity int    `json:"quantity,omitempty"`
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) render(c *fiber.Ctx, store *Store) error {
	return c.JSON(fiber.Map{
		"lines":   store.Lines(),
		"summary": store.Summary(h.service.ShippingFee()),
	})
}

func (h *Handler) getCart(c *fiber.Ctx) error {
	store, err := h.service.Open(c.UserContext(), storage.ClientID(c))
	if err != nil {
		return storageFailure(c, err)
	}
	return h.render(c, store)
}

func (h *Handler) addItem(c *fiber.Ctx) error {
	payload := new(addRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if payload.Slug == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "slug is required"})
	}
	if payload.Quantity == 0 {
		payload.Quantity = 1
	}
	return h.add(c, payload.Slug, payload.Quantity)
}

// addFromProductPage clamps the requested quantity the same way the product
// page does before adding.
func (h *Handler) addFromProductPage(c *fiber.Ctx) error {
	payload := new(quantityRequest)
	if len(c.Body()) > 0 {
		if err := c.BodyParser(payload); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
		}
	}
	p, err := h.service.products.ProductBySlug(c.Params("slug"))
	if err != nil {
		return addFailure(c, err)
	}
	store, err := h.service.Add(c.UserContext(), storage.ClientID(c), p, product.ClampQuantity(payload.Quantity, p.Stock))
	if err != nil {
		return addFailure(c, err)
	}
	return h.render(c, store)
}

func (h *Handler) add(c *fiber.Ctx, slug string, qty int) error {
	store, err := h.service.AddBySlug(c.UserContext(), storage.ClientID(c), slug, qty)
	if err != nil {
		return addFailure(c, err)
	}
	return h.render(c, store)
}

func (h *Handler) updateItem(c *fiber.Ctx) error {
	payload := new(quantityRequest)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	store, err := h.service.Open(c.UserContext(), storage.ClientID(c))
	if err != nil {
		return storageFailure(c, err)
	}
	if err := store.SetQuantity(c.UserContext(), c.Params("id"), payload.Quantity); err != nil {
		return storageFailure(c, err)
	}
	return h.render(c, store)
}

func (h *Handler) removeItem(c *fiber.Ctx) error {
	store, err := h.service.Open(c.UserContext(), storage.ClientID(c))
	if err != nil {
		return storageFailure(c, err)
	}
	if err := store.Remove(c.UserContext(), c.Params("id")); err != nil {
		return storageFailure(c, err)
	}
	return h.render(c, store)
}

func (h *Handler) clearCart(c *fiber.Ctx) error {
	store, err := h.service.Open(c.UserContext(), storage.ClientID(c))
	if err != nil {
		return storageFailure(c, err)
	}
	if err := store.Clear(c.UserContext()); err != nil {
		return storageFailure(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func addFailure(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrInvalidQuantity):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, product.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	case errors.Is(err, ErrOutOfStock):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Product is out of stock"})
	default:
		log.Errorf("cart add: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "Failed to add to cart"})
	}
}

func storageFailure(c *fiber.Ctx, err error) error {
	log.Errorf("cart storage: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to update cart"})
}
