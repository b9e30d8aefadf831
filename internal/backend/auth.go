package backend

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wichananm65/artisan-storefront/internal/session"
)

var _ session.Identity = (*Client)(nil)

func (c *Client) Me(token string) (session.User, error) {
	var out session.User
	err := c.do(fiber.Get(c.url("/auth/me")), call{token: token}, &out)
	return out, err
}

// ExchangeSession trades the provider session id for a backend session token.
func (c *Client) ExchangeSession(sessionID string) (session.User, string, error) {
	var out struct {
		User         session.User `json:"user"`
		SessionToken string       `json:"session_token"`
	}
	err := c.do(fiber.Post(c.url("/auth/session")), call{headers: map[string]string{"X-Session-ID": sessionID}}, &out)
	if err != nil {
		return session.User{}, "", err
	}
	return out.User, out.SessionToken, nil
}

func (c *Client) Logout(token string) error {
	return c.do(fiber.Post(c.url("/auth/logout")), call{token: token}, nil)
}
