package checkout

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/wichananm65/artisan-storefront/internal/order"
	"github.com/wichananm65/artisan-storefront/internal/payment"
	"github.com/wichananm65/artisan-storefront/internal/storage"
)

type Handler struct {
	flow *Flow
}

func NewHandler(f *Flow) *Handler {
	return &Handler{flow: f}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/checkout", h.view)
	app.Post("/checkout", h.submit)
	app.Post("/checkout/payment", h.paymentResult)
}

func (h *Handler) view(c *fiber.Ctx) error {
	ctx := c.UserContext()
	clientID := storage.ClientID(c)
	store, err := h.flow.carts.Open(ctx, clientID)
	if err != nil {
		log.Errorf("checkout view: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Failed to load cart"})
	}
	if store.Empty() {
		return c.Redirect("/cart", fiber.StatusSeeOther)
	}
	resp := fiber.Map{
		"state":           StateCollecting,
		"lines":           store.Lines(),
		"summary":         store.Summary(h.flow.carts.ShippingFee()),
		"payment_methods": []order.PaymentMethod{order.PaymentCOD, order.PaymentOnline},
	}
	if p, ok, err := h.flow.Pending(ctx, clientID); err == nil && ok {
		resp["pending"] = p
	}
	return c.JSON(resp)
}

func (h *Handler) submit(c *fiber.Ctx) error {
	form := new(Form)
	if err := c.BodyParser(form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	out, err := h.flow.Submit(c.UserContext(), storage.ClientID(c), *form)
	if err != nil {
		return failure(c, out, err)
	}
	return c.JSON(out)
}

func (h *Handler) paymentResult(c *fiber.Ctx) error {
	res := new(payment.Result)
	if err := c.BodyParser(res); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	out, err := h.flow.CompletePayment(c.UserContext(), storage.ClientID(c), *res)
	if err != nil {
		return failure(c, out, err)
	}
	return c.JSON(out)
}

func failure(c *fiber.Ctx, out Outcome, err error) error {
	switch {
	case errors.Is(err, ErrEmptyCart):
		return c.Redirect("/cart", fiber.StatusSeeOther)
	case errors.Is(err, ErrMissingFields):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Please fill all fields", "state": out.State})
	case errors.Is(err, ErrUnknownPaymentMethod):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Unknown payment method", "state": out.State})
	case errors.Is(err, ErrNoPendingPayment):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "No payment in progress", "state": out.State})
	case errors.Is(err, ErrPaymentFailed):
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"message": "Payment verification failed", "state": out.State, "order_number": out.OrderNumber})
	case errors.Is(err, payment.ErrUnavailable):
		return c.Status(fiber.StatusPaymentRequired).JSON(fiber.Map{"message": "Failed to load payment gateway", "state": out.State, "order_number": out.OrderNumber})
	default:
		log.Errorf("checkout: %v", err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "Failed to place order", "state": out.State})
	}
}
