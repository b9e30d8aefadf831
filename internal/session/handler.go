package session

import (
	"errors"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type Handler struct {
	gate *Gate
}

func NewHandler(g *Gate) *Handler {
	return &Handler{gate: g}
}

func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/admin/login", h.login)
	app.Get("/admin/auth/callback", h.callback)
	app.Post("/admin/auth/callback", h.callback)
	app.Post("/admin/logout", h.logout)
	app.Get("/api/session", h.status)
}

func (h *Handler) login(c *fiber.Ctx) error {
	if _, ok := h.gate.Resolve(c).(Authenticated); ok {
		return c.Redirect("/admin/dashboard", fiber.StatusSeeOther)
	}
	return c.JSON(fiber.Map{"login_url": h.gate.LoginURL()})
}

// callback accepts the provider's session id as query, form value or
// X-Session-ID header, then redirects to a clean URL.
func (h *Handler) callback(c *fiber.Ctx) error {
	sessionID := c.Query("session_id")
	if sessionID == "" {
		sessionID = c.FormValue("session_id")
	}
	if sessionID == "" {
		sessionID = c.Get("X-Session-ID")
	}
	if _, err := h.gate.Exchange(c, sessionID); err != nil {
		if errors.Is(err, ErrMissingSessionID) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Session ID required"})
		}
		log.Warnf("admin login failed: %v", err)
		return c.Redirect("/admin/login?notice="+url.QueryEscape("Authentication failed"), fiber.StatusSeeOther)
	}
	return c.Redirect("/admin/dashboard", fiber.StatusSeeOther)
}

func (h *Handler) logout(c *fiber.Ctx) error {
	if err := h.gate.Logout(c); err != nil {
		log.Warnf("backend logout: %v", err)
	}
	return c.Redirect("/admin/login", fiber.StatusSeeOther)
}

func (h *Handler) status(c *fiber.Ctx) error {
	switch s := h.gate.Resolve(c).(type) {
	case Authenticated:
		return c.JSON(fiber.Map{"authenticated": true, "user": s.User})
	default:
		return c.JSON(fiber.Map{"authenticated": false, "user": nil})
	}
}
