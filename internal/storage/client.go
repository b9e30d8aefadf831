package storage

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ClientCookie names the cookie carrying the visitor namespace.
const ClientCookie = "storefront_client"

const clientLocal = "storage_client_id"

// ClientMiddleware makes sure every visitor carries a namespace cookie and
// exposes it to later handlers through ClientID.
func ClientMiddleware(secure bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Cookies(ClientCookie)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
			c.Cookie(&fiber.Cookie{
				Name:     ClientCookie,
				Value:    id,
				Path:     "/",
				HTTPOnly: true,
				Secure:   secure,
				SameSite: fiber.CookieSameSiteLaxMode,
				Expires:  time.Now().Add(365 * 24 * time.Hour),
			})
		}
		c.Locals(clientLocal, id)
		return c.Next()
	}
}

// ClientID returns the visitor namespace, or "" when the middleware did not run.
func ClientID(c *fiber.Ctx) string {
	id, _ := c.Locals(clientLocal).(string)
	return id
}
