package order

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

// Handler serves the public order views: the confirmation page shown after
// checkout and the tracking lookup.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/order-confirmation/:orderNumber", h.confirmation)
	app.Get("/track-order", h.track)
}

func (h *Handler) confirmation(c *fiber.Ctx) error {
	return h.lookup(c, c.Params("orderNumber"))
}

func (h *Handler) track(c *fiber.Ctx) error {
	return h.lookup(c, c.Query("order_number"))
}

func (h *Handler) lookup(c *fiber.Ctx, number string) error {
	ord, found, err := h.service.Lookup(number)
	if err != nil {
		if errors.Is(err, ErrEmptyOrderNumber) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Please enter an order number"})
		}
		log.Errorf("order lookup %q: %v", number, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "Failed to load order"})
	}
	if !found {
		return c.JSON(fiber.Map{"found": false, "message": "Order not found"})
	}
	return c.JSON(fiber.Map{"found": true, "order": ord})
}
