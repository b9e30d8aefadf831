package admin

import (
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/wichananm65/artisan-storefront/internal/order"
	"github.com/wichananm65/artisan-storefront/internal/product"
	"github.com/wichananm65/artisan-storefront/internal/session"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler serves the admin area. Every route sits behind the auth guard, and
// backend authorization failures are reported as plain failures.
type Handler struct {
	service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{service: s}
}

func (h *Handler) RegisterProtectedRoutes(app *fiber.App, guard fiber.Handler) {
	grp := app.Group("/admin")
	grp.Get("/dashboard", guard, h.dashboard)

	grp.Get("/products", guard, h.listProducts)
	grp.Post("/products", guard, h.createProduct)
	grp.Put("/products/:id", guard, h.updateProduct)
	grp.Delete("/products/:id", guard, h.deleteProduct)
	grp.Post("/products/:id/images", guard, h.uploadImages)

	// export before :id so it is not captured as an id
	grp.Get("/orders/export", guard, h.exportOrders)
	grp.Get("/orders", guard, h.listOrders)
	grp.Put("/orders/:id", guard, h.updateOrder)
}

func (h *Handler) dashboard(c *fiber.Ctx) error {
	d, err := h.service.Dashboard(session.Token(c))
	if err != nil {
		return failure(c, err, "Failed to load dashboard")
	}
	resp := fiber.Map{"stats": d}
	if s, ok := session.FromCtx(c).(session.Authenticated); ok {
		resp["user"] = s.User
	}
	return c.JSON(resp)
}

func (h *Handler) listProducts(c *fiber.Ctx) error {
	products, err := h.service.Products()
	if err != nil {
		return failure(c, err, "Failed to load products")
	}
	return c.JSON(fiber.Map{"products": products})
}

func (h *Handler) createProduct(c *fiber.Ctx) error {
	return h.saveProduct(c, "")
}

func (h *Handler) updateProduct(c *fiber.Ctx) error {
	return h.saveProduct(c, c.Params("id"))
}

func (h *Handler) saveProduct(c *fiber.Ctx, id string) error {
	form := new(ProductForm)
	if err := c.BodyParser(form); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	images, err := uploadedImages(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	saved, err := h.service.SaveProduct(session.Token(c), id, *form, images)
	if err != nil {
		if saved.ID != "" {
			log.Errorf("product %s saved but upload failed: %v", saved.ID, err)
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": "Product saved but failed to upload images", "product": saved})
		}
		return failure(c, err, "Failed to save product")
	}
	status := fiber.StatusOK
	if id == "" {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(saved)
}

func (h *Handler) deleteProduct(c *fiber.Ctx) error {
	err := h.service.DeleteProduct(session.Token(c), c.Params("id"), c.QueryBool("confirm"))
	if err != nil {
		return failure(c, err, "Failed to delete product")
	}
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}

func (h *Handler) uploadImages(c *fiber.Ctx) error {
	images, err := uploadedImages(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	urls, err := h.service.UploadImages(session.Token(c), c.Params("id"), images)
	if err != nil {
		return failure(c, err, "Failed to upload images")
	}
	return c.JSON(fiber.Map{"urls": urls})
}

func filterFrom(c *fiber.Ctx) OrderFilter {
	return OrderFilter{Status: c.Query("status", AllStatuses), Search: c.Query("q")}
}

func (h *Handler) listOrders(c *fiber.Ctx) error {
	f := filterFrom(c)
	orders, err := h.service.Orders(session.Token(c), f)
	if err != nil {
		return failure(c, err, "Failed to load orders")
	}
	return c.JSON(fiber.Map{
		"orders":   orders,
		"status":   f.Status,
		"search":   f.Search,
		"statuses": order.Statuses,
	})
}

func (h *Handler) updateOrder(c *fiber.Ctx) error {
	payload := new(order.StatusUpdate)
	if err := c.BodyParser(payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}
	if err := h.service.UpdateOrder(session.Token(c), c.Params("id"), *payload); err != nil {
		return failure(c, err, "Failed to update order")
	}
	return c.JSON(fiber.Map{"message": "Order updated successfully"})
}

func (h *Handler) exportOrders(c *fiber.Ctx) error {
	b, err := h.service.ExportOrders(session.Token(c), filterFrom(c))
	if err != nil {
		return failure(c, err, "Failed to export orders")
	}
	c.Set(fiber.HeaderContentType, xlsxMIME)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="orders.xlsx"`)
	return c.Send(b)
}

// uploadedImages reads every "files" part of a multipart request. Other
// content types carry no images.
func uploadedImages(c *fiber.Ctx) ([]product.Image, error) {
	if !strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm) {
		return nil, nil
	}
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	headers := form.File["files"]
	images := make([]product.Image, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		b, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		images = append(images, product.Image{Name: fh.Filename, Content: b})
	}
	return images, nil
}

func failure(c *fiber.Ctx, err error, msg string) error {
	switch {
	case errors.Is(err, ErrConfirmationRequired):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": "Are you sure you want to delete this product?", "confirm": "?confirm=true"})
	case errors.Is(err, ErrNameRequired), errors.Is(err, ErrInvalidCategory),
		errors.Is(err, ErrInvalidPrice), errors.Is(err, ErrInvalidStock),
		errors.Is(err, ErrNoFiles), errors.Is(err, ErrInvalidTrackingLink),
		errors.Is(err, order.ErrInvalidStatus), errors.Is(err, order.ErrInvalidTransition):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	case errors.Is(err, product.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	case errors.Is(err, order.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Order not found"})
	default:
		log.Errorf("admin: %s: %v", msg, err)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"message": msg})
	}
}
